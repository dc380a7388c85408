package main

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/nicsoto/ArriendoFacil/internal/config"
	"github.com/nicsoto/ArriendoFacil/internal/indicator"
	"github.com/nicsoto/ArriendoFacil/internal/server"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

// NewApp assembles the store, indicator source and router into the root
// handler.
func NewApp(dbConn *gorm.DB, cfg config.Config) (http.Handler, error) {
	st := store.New(dbConn)
	if cfg.SyncURL != "" {
		st.Mirror = store.NewHTTPMirror(cfg.SyncURL)
	}

	// Indicator values change at most daily, so a cached source in front of
	// the HTTP client keeps the calculator off the network on most requests.
	src := indicator.NewCachedSource(indicator.NewClient(cfg.IndicatorAPI))

	return server.New(st, src)
}
