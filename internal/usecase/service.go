package usecase

import (
	"hostal-booking/internal/data/repository"
	"hostal-booking/internal/events"
	"hostal-booking/internal/notify"
	"hostal-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Room         RoomService
	Guest        GuestService
	Availability AvailabilityService
	Pricing      PricingService
	Reservation  ReservationService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	notifier notify.Notifier,
	publisher events.Publisher,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Room:         NewRoomService(repo, log),
		Guest:        NewGuestService(repo, log),
		Availability: NewAvailabilityService(repo, log),
		Pricing:      NewPricingService(repo, log),
		Reservation:  NewReservationService(repo, notifier, publisher, config.Email.Timeout(), log),
	}
}
