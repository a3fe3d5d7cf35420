package wire

import (
	"hostal-booking/internal/adaptor"
	"hostal-booking/internal/data/repository"
	"hostal-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRoom(
	r chi.Router,
	roomHandler *adaptor.RoomHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/rooms", func(r chi.Router) {
		r.Get("/", roomHandler.ListRooms)
		r.Get("/available", roomHandler.AvailableRooms)
		r.Get("/{id}", roomHandler.GetRoom)
		r.Get("/{id}/availability", roomHandler.Availability)
		r.Get("/{id}/calendar", roomHandler.Calendar)
		r.Get("/{id}/quote", roomHandler.Quote)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/rooms", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", roomHandler.CreateRoom)
		r.Put("/{id}", roomHandler.UpdateRoom)
		r.Delete("/{id}", roomHandler.DeleteRoom)

		r.Get("/{id}/rates", roomHandler.ListRates)
		r.Put("/{id}/rates", roomHandler.SetRates)
		r.Delete("/{id}/rates", roomHandler.ClearRates)
	})
}
