package http

import (
	"net/http"

	"moodflow/internal/app"
	"moodflow/internal/config"
	"moodflow/internal/http/handler"
	mw "moodflow/internal/http/middleware"
	"moodflow/internal/logging"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(cfg config.Config, a *app.App, log *zap.Logger) http.Handler {
	log = logging.OrNop(log)
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(log))
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	moodH := &handler.MoodHandler{App: a}
	r.Route("/moods", func(r chi.Router) {
		r.Get("/", moodH.List)
		r.Post("/", moodH.Create)
		r.Get("/catalog", moodH.Catalog)
	})

	settingsH := &handler.SettingsHandler{App: a}
	r.Get("/settings", settingsH.Get)
	r.Put("/settings/api-key", settingsH.SetAPIKey)

	statsH := &handler.StatsHandler{App: a}
	r.Get("/stats", statsH.Get)

	insightH := &handler.InsightHandler{App: a, RevealInterval: cfg.RevealInterval, Log: log}
	r.Post("/insight", insightH.Generate)
	r.Post("/insight/stream", insightH.Stream)

	return r
}
