package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JesterVZ/test-m3u8/internal/config"
)

type ApiManagerCtx struct {
	logger zerolog.Logger
	config *config.Server
}

func New(config *config.Server) *ApiManagerCtx {
	return &ApiManagerCtx{
		logger: log.With().Str("module", "api").Logger(),
		config: config,
	}
}

func (a *ApiManagerCtx) Mount(r *chi.Mux) {
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		//nolint
		w.Write([]byte("pong"))
	})

	r.Get("/api/videos", a.Videos)
	r.Get("/vod/*", a.ServeVod)
	r.Handle("/metrics", promhttp.Handler())
}
