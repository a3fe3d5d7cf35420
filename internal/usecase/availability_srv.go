package usecase

import (
	"context"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/repository"
	"hostal-booking/internal/dto/request"
	"hostal-booking/internal/dto/response"
	"hostal-booking/pkg/daterange"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	IsAvailable(ctx context.Context, roomID uuid.UUID, stay daterange.Range, exclude uuid.UUID) (bool, error)
	CheckRoom(ctx context.Context, roomID, checkIn, checkOut, exclude string) (*response.AvailabilityResponse, error)
	AvailableRooms(ctx context.Context, req *request.AvailableRoomsRequest) ([]response.RoomResponse, error)
	OccupiedRanges(ctx context.Context, roomID string, req *request.DateRangeRequest) (*response.CalendarResponse, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

// firstConflict returns the first occupying reservation other than exclude whose
// stay overlaps requested, or nil when the room is free.
func firstConflict(existing []*entity.Reservation, requested daterange.Range, exclude uuid.UUID) *entity.Reservation {
	for _, res := range existing {
		if res.ID == exclude || !res.Status.Occupies() {
			continue
		}
		if res.Stay().Overlaps(requested) {
			return res
		}
	}
	return nil
}

// ensureAvailable runs against whatever repo it is given, so the orchestrator
// can call it with the transaction-scoped repository.
func ensureAvailable(ctx context.Context, repo *repository.Repository, roomID uuid.UUID, stay daterange.Range, exclude uuid.UUID) error {
	existing, err := repo.Reservation.FindOccupyingByRoom(ctx, roomID, stay)
	if err != nil {
		return dependency("check availability", err)
	}
	if c := firstConflict(existing, stay, exclude); c != nil {
		return conflict(ErrRoomUnavailable, "room is not available from %s to %s", stay.CheckIn.Format(daterange.DateLayout), stay.CheckOut.Format(daterange.DateLayout))
	}
	return nil
}

func findRoom(ctx context.Context, repo *repository.Repository, roomID uuid.UUID) (*entity.Room, error) {
	room, err := repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, dependency("find room", err)
	}
	if room == nil {
		return nil, notFound("room", roomID.String())
	}
	return room, nil
}

func (s *availabilityService) IsAvailable(ctx context.Context, roomID uuid.UUID, stay daterange.Range, exclude uuid.UUID) (bool, error) {
	if stay.Nights() <= 0 {
		return false, validationError("check-out must be after check-in")
	}
	if _, err := findRoom(ctx, s.repo, roomID); err != nil {
		return false, err
	}

	err := ensureAvailable(ctx, s.repo, roomID, stay, exclude)
	switch {
	case err == nil:
		return true, nil
	case isReason(err, ErrRoomUnavailable):
		return false, nil
	default:
		s.log.Error("Availability check failed", zap.Error(err), zap.String("room_id", roomID.String()))
		return false, err
	}
}

func (s *availabilityService) CheckRoom(ctx context.Context, roomID, checkIn, checkOut, exclude string) (*response.AvailabilityResponse, error) {
	id, err := parseID("room", roomID)
	if err != nil {
		return nil, err
	}
	stay, err := parseStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	excludeID := uuid.Nil
	if exclude != "" {
		if excludeID, err = parseID("reservation", exclude); err != nil {
			return nil, err
		}
	}

	available, err := s.IsAvailable(ctx, id, stay, excludeID)
	if err != nil {
		return nil, err
	}

	return &response.AvailabilityResponse{
		RoomID:    id.String(),
		CheckIn:   stay.CheckIn.Format(daterange.DateLayout),
		CheckOut:  stay.CheckOut.Format(daterange.DateLayout),
		Available: available,
	}, nil
}

func (s *availabilityService) AvailableRooms(ctx context.Context, req *request.AvailableRoomsRequest) ([]response.RoomResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	stay, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	rooms, err := s.repo.Room.FindAll(ctx, repository.RoomFilter{MinCapacity: req.PartySize})
	if err != nil {
		return nil, dependency("list rooms", err)
	}

	out := make([]response.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		err := ensureAvailable(ctx, s.repo, room.ID, stay, uuid.Nil)
		if isReason(err, ErrRoomUnavailable) {
			continue
		}
		if err != nil {
			s.log.Error("Availability check failed", zap.Error(err), zap.String("room_id", room.ID.String()))
			return nil, err
		}
		out = append(out, response.RoomToResponse(room))
	}

	return out, nil
}

func (s *availabilityService) OccupiedRanges(ctx context.Context, roomID string, req *request.DateRangeRequest) (*response.CalendarResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	id, err := parseID("room", roomID)
	if err != nil {
		return nil, err
	}
	window, err := parseStay(req.From, req.To)
	if err != nil {
		return nil, err
	}
	if _, err := findRoom(ctx, s.repo, id); err != nil {
		return nil, err
	}

	existing, err := s.repo.Reservation.FindOccupyingByRoom(ctx, id, window)
	if err != nil {
		return nil, dependency("list occupied ranges", err)
	}

	occupied := make([]response.OccupiedRange, 0, len(existing))
	for _, res := range existing {
		occupied = append(occupied, response.OccupiedRange{
			CheckIn:  res.CheckIn.Format(daterange.DateLayout),
			CheckOut: res.CheckOut.Format(daterange.DateLayout),
			Status:   res.Status,
		})
	}

	return &response.CalendarResponse{
		RoomID:   id.String(),
		From:     window.CheckIn.Format(daterange.DateLayout),
		To:       window.CheckOut.Format(daterange.DateLayout),
		Occupied: occupied,
	}, nil
}
