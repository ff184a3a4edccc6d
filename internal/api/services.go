package api

import (
	"github.com/vitalii-holoienko/MediaBase/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth      *service.AuthService
	Watchlist *service.WatchlistService
	Rating    *service.RatingService
	Activity  *service.ActivityService
	History   *service.HistoryService
	Profile   *service.ProfileService
	Catalog   *service.CatalogService
}
