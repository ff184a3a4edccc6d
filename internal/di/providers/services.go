package providers

import (
	"github.com/samber/do/v2"

	"github.com/vitalii-holoienko/MediaBase/internal/auth"
	"github.com/vitalii-holoienko/MediaBase/internal/logger"
	"github.com/vitalii-holoienko/MediaBase/internal/service"
)

// identity resolves the current user from the request context, as placed
// there by the API auth middleware.
var identity = auth.ContextIdentity{}

// ProvideAuthService provides account registration and login.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Badger, tokens, log.Logger), nil
}

// ProvideHistoryService provides the activity feed service.
func ProvideHistoryService(i do.Injector) (*service.HistoryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewHistoryService(storeHandle.Badger, identity, log.Logger), nil
}

// ProvideWatchlistService provides list membership operations.
func ProvideWatchlistService(i do.Injector) (*service.WatchlistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	history := do.MustInvoke[*service.HistoryService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewWatchlistService(storeHandle.Badger, identity, history, log.Logger), nil
}

// ProvideRatingService provides title rating operations.
func ProvideRatingService(i do.Injector) (*service.RatingService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	history := do.MustInvoke[*service.HistoryService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRatingService(storeHandle.Badger, identity, history, log.Logger), nil
}

// ProvideActivityService provides completion stats and watch hour aggregation.
func ProvideActivityService(i do.Injector) (*service.ActivityService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewActivityService(storeHandle.Badger, identity, log.Logger), nil
}

// ProvideProfileService provides user profile operations.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(storeHandle.Badger, identity, log.Logger), nil
}

// ProvideCatalogService provides the searchable title catalog.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Badger, indexHandle.SearchIndex, log.Logger), nil
}
