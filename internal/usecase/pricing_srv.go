package usecase

import (
	"context"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/repository"
	"hostal-booking/internal/dto/response"
	"hostal-booking/pkg/daterange"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PricingService interface {
	ComputeTotal(ctx context.Context, roomID uuid.UUID, stay daterange.Range) (entity.Money, error)
	Quote(ctx context.Context, roomID, checkIn, checkOut string) (*response.QuoteResponse, error)
}

type pricingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPricingService(repo *repository.Repository, log *zap.Logger) PricingService {
	return &pricingService{
		repo: repo,
		log:  log.With(zap.String("service", "pricing")),
	}
}

type quote struct {
	nights    int
	total     entity.Money
	breakdown []entity.RoomRate
}

// priceNights charges each night at its override, falling back to the room's base rate.
func priceNights(room *entity.Room, stay daterange.Range, overrides []entity.RoomRate) quote {
	byDate := make(map[string]entity.Money, len(overrides))
	for _, o := range overrides {
		byDate[o.Date.Format(daterange.DateLayout)] = o.Rate
	}

	dates := stay.Dates()
	q := quote{nights: len(dates), breakdown: make([]entity.RoomRate, 0, len(dates))}
	for _, date := range dates {
		rate, ok := byDate[date.Format(daterange.DateLayout)]
		if !ok {
			rate = room.NightlyRate
		}
		q.total += rate
		q.breakdown = append(q.breakdown, entity.RoomRate{RoomID: room.ID, Date: date, Rate: rate})
	}
	return q
}

func priceStay(ctx context.Context, repo *repository.Repository, room *entity.Room, stay daterange.Range) (quote, error) {
	if stay.Nights() <= 0 {
		return quote{}, validationError("a stay needs at least one night")
	}
	overrides, err := repo.RoomRate.FindByRange(ctx, room.ID, stay)
	if err != nil {
		return quote{}, dependency("load nightly rates", err)
	}
	return priceNights(room, stay, overrides), nil
}

func (s *pricingService) ComputeTotal(ctx context.Context, roomID uuid.UUID, stay daterange.Range) (entity.Money, error) {
	room, err := findRoom(ctx, s.repo, roomID)
	if err != nil {
		return 0, err
	}
	q, err := priceStay(ctx, s.repo, room, stay)
	if err != nil {
		return 0, err
	}
	return q.total, nil
}

func (s *pricingService) Quote(ctx context.Context, roomID, checkIn, checkOut string) (*response.QuoteResponse, error) {
	id, err := parseID("room", roomID)
	if err != nil {
		return nil, err
	}
	stay, err := parseStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	room, err := findRoom(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	q, err := priceStay(ctx, s.repo, room, stay)
	if err != nil {
		s.log.Error("Failed to price stay", zap.Error(err), zap.String("room_id", roomID))
		return nil, err
	}

	return &response.QuoteResponse{
		RoomID:      room.ID.String(),
		CheckIn:     stay.CheckIn.Format(daterange.DateLayout),
		CheckOut:    stay.CheckOut.Format(daterange.DateLayout),
		Nights:      q.nights,
		NightlyRate: room.NightlyRate,
		Total:       q.total,
		Breakdown:   response.RatesToResponse(q.breakdown),
	}, nil
}
