package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Auth         *AuthHandler
	Rooms        *RoomHandler
	Reservations *ReservationHandler
	Agenda       *AgendaHandler
	Sessions     SessionValidator
	Logger       *slog.Logger
}

// NewRouter assembles the full route tree. Registration and login are
// public; everything else sits behind the session middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := defaultLogger(cfg.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	if cfg.Auth != nil {
		r.Post("/register", cfg.Auth.Register)
		r.Post("/login", cfg.Auth.Login)
	}

	r.Group(func(r chi.Router) {
		if cfg.Sessions != nil {
			r.Use(RequireSession(cfg.Sessions, logger))
		}

		if cfg.Auth != nil {
			r.Post("/logout", cfg.Auth.Logout)
		}

		if cfg.Rooms != nil {
			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", cfg.Rooms.List)
				r.Post("/", cfg.Rooms.Create)
				r.Put("/{roomID}", cfg.Rooms.Update)
				r.Delete("/{roomID}", cfg.Rooms.Delete)
			})
		}

		if cfg.Reservations != nil {
			r.Route("/reservations", func(r chi.Router) {
				r.Get("/", cfg.Reservations.List)
				r.Post("/", cfg.Reservations.Create)
				r.Get("/conflict", cfg.Reservations.CheckConflict)
				r.Delete("/{reservationID}", cfg.Reservations.Delete)
			})
		}

		if cfg.Agenda != nil {
			r.Get("/agenda", cfg.Agenda.Get)
		}
	})

	return r
}
