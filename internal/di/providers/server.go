package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/vitalii-holoienko/MediaBase/internal/api"
	"github.com/vitalii-holoienko/MediaBase/internal/auth"
	"github.com/vitalii-holoienko/MediaBase/internal/config"
	"github.com/vitalii-holoienko/MediaBase/internal/logger"
	"github.com/vitalii-holoienko/MediaBase/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:      do.MustInvoke[*service.AuthService](i),
		Watchlist: do.MustInvoke[*service.WatchlistService](i),
		Rating:    do.MustInvoke[*service.RatingService](i),
		Activity:  do.MustInvoke[*service.ActivityService](i),
		History:   do.MustInvoke[*service.HistoryService](i),
		Profile:   do.MustInvoke[*service.ProfileService](i),
		Catalog:   do.MustInvoke[*service.CatalogService](i),
	}

	handler := api.NewServer(cfg, storeHandle.Badger, indexHandle.SearchIndex, tokens, services, log.Logger)
	srv := handler.HTTPServer(cfg)

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
