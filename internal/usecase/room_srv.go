package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/repository"
	"hostal-booking/internal/dto/request"
	"hostal-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoomService interface {
	CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, roomID string, req *request.RoomRequest) (*response.RoomResponse, error)
	GetRoom(ctx context.Context, roomID string) (*response.RoomResponse, error)
	ListRooms(ctx context.Context, req *request.RoomListRequest) ([]response.RoomResponse, error)
	DeleteRoom(ctx context.Context, roomID string) error

	// Nightly rate overrides
	SetRates(ctx context.Context, roomID string, req *request.SetRatesRequest) ([]response.NightRate, error)
	ClearRates(ctx context.Context, roomID string, req *request.DateRangeRequest) (int64, error)
	ListRates(ctx context.Context, roomID string, req *request.DateRangeRequest) ([]response.NightRate, error)
}

type roomService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRoomService(repo *repository.Repository, log *zap.Logger) RoomService {
	return &roomService{
		repo: repo,
		log:  log.With(zap.String("service", "room")),
	}
}

func normalizeAmenities(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, strings.ToLower(a))
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func applyRoomRequest(room *entity.Room, req *request.RoomRequest) {
	room.Number = strings.TrimSpace(req.Number)
	room.Type = entity.RoomType(req.Type)
	room.Capacity = req.Capacity
	room.NightlyRate = req.NightlyRate
	room.Amenities = normalizeAmenities(req.Amenities)
	room.Description = strings.TrimSpace(req.Description)
}

func (s *roomService) CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create room validation failed", zap.Error(err))
		return nil, err
	}

	ts := now()
	room := &entity.Room{Base: entity.Base{ID: uuid.New(), CreatedAt: ts, UpdatedAt: ts}}
	applyRoomRequest(room, req)

	if err := s.repo.Room.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict(ErrDuplicateRoom, "room number %s already exists", room.Number)
		}
		return nil, dependency("create room", err)
	}

	s.log.Info("Room created", zap.String("room_id", room.ID.String()), zap.String("number", room.Number))
	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, roomID string, req *request.RoomRequest) (*response.RoomResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	id, err := parseID("room", roomID)
	if err != nil {
		return nil, err
	}

	room, err := findRoom(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	applyRoomRequest(room, req)
	room.UpdatedAt = now()

	if err := s.repo.Room.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict(ErrDuplicateRoom, "room number %s already exists", room.Number)
		}
		return nil, dependency("update room", err)
	}

	s.log.Info("Room updated", zap.String("room_id", room.ID.String()))
	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) GetRoom(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	id, err := parseID("room", roomID)
	if err != nil {
		return nil, err
	}
	room, err := findRoom(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) ListRooms(ctx context.Context, req *request.RoomListRequest) ([]response.RoomResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	filter := repository.RoomFilter{MinCapacity: req.MinCapacity}
	if req.Type != "" {
		t := entity.RoomType(req.Type)
		filter.Type = &t
	}

	rooms, err := s.repo.Room.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list rooms", zap.Error(err))
		return nil, dependency("list rooms", err)
	}

	out := make([]response.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, response.RoomToResponse(room))
	}
	return out, nil
}

// DeleteRoom refuses while any reservation, in any status, references the room.
func (s *roomService) DeleteRoom(ctx context.Context, roomID string) error {
	id, err := parseID("room", roomID)
	if err != nil {
		return err
	}

	err = s.repo.Tx.WithinRoomLock(ctx, id, func(ctx context.Context, tx *repository.Repository) error {
		room, err := findRoom(ctx, tx, id)
		if err != nil {
			return err
		}
		count, err := tx.Reservation.CountByRoom(ctx, id)
		if err != nil {
			return dependency("count room reservations", err)
		}
		if count > 0 {
			return conflict(ErrRoomInUse, "room %s has %d reservation(s) and cannot be deleted", room.Number, count)
		}
		if err := tx.RoomRate.DeleteByRoom(ctx, id); err != nil {
			return dependency("delete room rates", err)
		}
		if err := tx.Room.Delete(ctx, id); err != nil {
			return dependency("delete room", err)
		}
		return nil
	})
	if err != nil {
		return serviceError("delete room", err)
	}

	s.log.Info("Room deleted", zap.String("room_id", roomID))
	return nil
}

func (s *roomService) SetRates(ctx context.Context, roomID string, req *request.SetRatesRequest) ([]response.NightRate, error) {
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

	rates := make([]entity.RoomRate, 0, window.Nights())
	for _, date := range window.Dates() {
		rates = append(rates, entity.RoomRate{RoomID: id, Date: date, Rate: req.Rate})
	}
	if err := s.repo.RoomRate.Upsert(ctx, rates); err != nil {
		return nil, dependency("set room rates", err)
	}

	s.log.Info("Room rates set",
		zap.String("room_id", roomID),
		zap.Stringer("range", window),
		zap.Stringer("rate", req.Rate),
	)
	return response.RatesToResponse(rates), nil
}

func (s *roomService) ClearRates(ctx context.Context, roomID string, req *request.DateRangeRequest) (int64, error) {
	if err := validateRequest(req); err != nil {
		return 0, err
	}
	id, err := parseID("room", roomID)
	if err != nil {
		return 0, err
	}
	window, err := parseStay(req.From, req.To)
	if err != nil {
		return 0, err
	}
	if _, err := findRoom(ctx, s.repo, id); err != nil {
		return 0, err
	}

	deleted, err := s.repo.RoomRate.DeleteRange(ctx, id, window)
	if err != nil {
		return 0, dependency("clear room rates", err)
	}
	return deleted, nil
}

func (s *roomService) ListRates(ctx context.Context, roomID string, req *request.DateRangeRequest) ([]response.NightRate, error) {
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

	rates, err := s.repo.RoomRate.FindByRange(ctx, id, window)
	if err != nil {
		return nil, dependency("list room rates", err)
	}
	return response.RatesToResponse(rates), nil
}
