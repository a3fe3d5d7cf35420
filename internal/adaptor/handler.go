package adaptor

import (
	"hostal-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Room        *RoomHandler
	Guest       *GuestHandler
	Reservation *ReservationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Room:        NewRoomHandler(service.Room, service.Availability, service.Pricing, log),
		Guest:       NewGuestHandler(service.Guest, service.Reservation, log),
		Reservation: NewReservationHandler(service.Reservation, log),
	}
}
