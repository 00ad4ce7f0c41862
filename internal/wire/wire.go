package wire

import (
	"net/http"

	"vivelo/internal/adaptor"
	"vivelo/internal/data/entity"
	"vivelo/internal/data/repository"
	"vivelo/pkg/middleware"
	"vivelo/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewRouter assembles the full HTTP surface. Auth-gated routes run behind
// the session middleware; the webhook and catalog routes stay public.
func NewRouter(h *adaptor.Handler, repo *repository.Repository, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recover(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS())

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	authSession := middleware.AuthSession(repo.Session, repo.User, log)
	providerOrAdmin := middleware.RequireRole(log, entity.RoleProvider, entity.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.With(authSession).Post("/logout", h.Auth.Logout)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", h.Catalog.ListServices)
			r.Get("/{id}", h.Catalog.GetService)
			r.Get("/{id}/availability", h.Catalog.CheckAvailability)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(authSession)
			r.Post("/", h.Booking.Create)
			r.Get("/", h.Booking.List)
			r.Get("/{id}", h.Booking.Get)
			r.Post("/{id}/cancel", h.Booking.Cancel)
			r.Post("/{id}/verify-start", h.Booking.VerifyStart)
			r.Post("/{id}/verify-end", h.Booking.VerifyEnd)
			r.With(providerOrAdmin).Put("/{id}/status", h.Booking.UpdateStatus)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(authSession)
			r.Get("/", h.Notification.List)
			r.Put("/{id}/read", h.Notification.MarkRead)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Use(authSession, providerOrAdmin)
			r.Post("/connect", h.Calendar.Connect)
		})

		r.Post("/webhooks/stripe", h.Webhook.Stripe)
	})

	return r
}
