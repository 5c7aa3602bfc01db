package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Maxencd/maxence/internal/api/middleware"
	"github.com/Maxencd/maxence/internal/config"
	"github.com/Maxencd/maxence/internal/handlers"
	"github.com/Maxencd/maxence/internal/hub"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(logger zerolog.Logger, cfg *config.Config, room *hub.Hub) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS - the login page may live on a different server than the room
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := handlers.NewHandler(cfg, room)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)

	// Pages
	r.Get("/", h.Index)
	r.Get("/login", h.Login)
	r.Get("/chat", h.Chat)

	// Login API
	r.Get("/api/servers", h.Servers)
	r.Post("/api/validate_nickname", h.ValidateNickname)

	// Chat transport
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		room.ServeWS(w, r)
	})

	return r
}
