package wire

import (
	"hostal-booking/internal/adaptor"
	"hostal-booking/internal/data/repository"
	"hostal-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGuest(
	r chi.Router,
	guestHandler *adaptor.GuestHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== GUEST SESSION ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Guest(log))

		r.Get("/api/me", guestHandler.Me)
		r.Get("/api/me/reservations", guestHandler.MyReservations)
	})

	// ==================== STAFF ROUTES ====================
	r.Route("/api/admin/guests", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Staff(log))

		r.Get("/", guestHandler.ListGuests)
		r.Post("/", guestHandler.CreateGuest)
		r.Get("/search", guestHandler.SearchGuests)
		r.Get("/{id}", guestHandler.GetGuest)
		r.Put("/{id}", guestHandler.UpdateGuest)
		r.Get("/{id}/reservations", guestHandler.GuestReservations)
	})
}
