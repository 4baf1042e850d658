package main

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spencer-p/tidetable/pkg/almanac"
	"github.com/spencer-p/tidetable/pkg/config"
	"github.com/spencer-p/tidetable/pkg/handlers"
)

// newRouter mounts the tide table routes and the metrics endpoint under the
// configured prefix.
func newRouter(cfg *config.Config, profiles []almanac.Profile, docs handlers.DocumentSource, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()
	s := r
	if cfg.Prefix != "/" {
		s = r.PathPrefix(cfg.Prefix).Subrouter()
	}

	s.Handle("/metrics", promhttp.Handler())
	handlers.Register(s, handlers.Options{
		Profiles:      profiles,
		Documents:     docs,
		Logger:        logger,
		BuildID:       cfg.BuildID,
		LowTideThresh: cfg.LowTideThreshold,
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("no route", "method", r.Method, "url", r.URL.String())
		http.NotFound(w, r)
	})
	return r
}
