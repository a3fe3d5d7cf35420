package wire

import (
	"hostal-booking/internal/adaptor"
	"hostal-booking/internal/data/repository"
	"hostal-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// a guest session, when sent, books for that guest
	r.With(middleware.OptionalSession(repo.Session, repo.User, log)).Post("/api/reservations", reservationHandler.CreateReservation)
	r.Get("/api/reservations/code/{code}", reservationHandler.GetByCode)

	// ==================== STAFF ROUTES ====================
	r.Route("/api/admin/reservations", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Staff(log))

		r.Get("/", reservationHandler.ListReservations)
		r.Get("/{id}", reservationHandler.GetReservation)
		r.Patch("/{id}/status", reservationHandler.UpdateStatus)
		r.Patch("/{id}/dates", reservationHandler.Reschedule)
	})
}
