package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/repository"
	"hostal-booking/internal/dto/request"
	"hostal-booking/internal/dto/response"
	"hostal-booking/internal/events"
	"hostal-booking/internal/notify"
	"hostal-booking/pkg/daterange"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const codePrefix = "HDT"

type ReservationService interface {
	CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	TransitionStatus(ctx context.Context, reservationID string, req *request.UpdateStatusRequest) (*response.ReservationResponse, error)
	Reschedule(ctx context.Context, reservationID string, req *request.RescheduleRequest) (*response.ReservationResponse, error)

	GetReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
	GetByCode(ctx context.Context, code string) (*response.ReservationResponse, error)
	ListReservations(ctx context.Context, req *request.ReservationListRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	ListGuestReservations(ctx context.Context, guestID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)

	// CompleteElapsed moves confirmed stays whose check-out is on or before today to completed.
	CompleteElapsed(ctx context.Context, today time.Time) (int, error)
}

type reservationService struct {
	repo          *repository.Repository
	notifier      notify.Notifier
	publisher     events.Publisher
	notifyTimeout time.Duration
	log           *zap.Logger
}

func NewReservationService(
	repo *repository.Repository,
	notifier notify.Notifier,
	publisher events.Publisher,
	notifyTimeout time.Duration,
	log *zap.Logger,
) ReservationService {
	if notifyTimeout <= 0 {
		notifyTimeout = 30 * time.Second
	}
	return &reservationService{
		repo:          repo,
		notifier:      notifier,
		publisher:     publisher,
		notifyTimeout: notifyTimeout,
		log:           log.With(zap.String("service", "reservation")),
	}
}

// FormatCode renders a reservation code. The sequence is zero-padded to four
// digits and simply grows wider past 9999.
func FormatCode(period string, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", codePrefix, period, seq)
}

// allocateCode draws the next sequence for the creation month inside the caller's transaction.
func allocateCode(ctx context.Context, tx *repository.Repository, createdAt time.Time) (string, error) {
	period := createdAt.UTC().Format("200601")
	seq, err := tx.Code.Next(ctx, period)
	if err != nil {
		return "", dependency("allocate reservation code", err)
	}
	return FormatCode(period, seq), nil
}

// resolveGuest returns the guest named by guestID, or else the oldest guest
// sharing the supplied email, or else a newly created guest with no visits.
func resolveGuest(ctx context.Context, tx *repository.Repository, guestID uuid.UUID, data *request.GuestRequest) (*entity.Guest, error) {
	if guestID != uuid.Nil {
		return findGuest(ctx, tx, guestID)
	}

	if email := strings.TrimSpace(data.Email); email != "" {
		matches, err := tx.Guest.FindByEmail(ctx, email)
		if err != nil {
			return nil, dependency("find guest by email", err)
		}
		if len(matches) > 0 {
			guest := matches[0]
			if guest.Phone == "" && data.Phone != "" {
				guest.Phone = strings.TrimSpace(data.Phone)
				guest.PhoneDigits = entity.NormalizePhone(data.Phone)
				guest.UpdatedAt = now()
				if err := tx.Guest.Update(ctx, guest); err != nil {
					return nil, dependency("update guest", err)
				}
			}
			return guest, nil
		}
	}

	guest := newGuest(data)
	if err := tx.Guest.Create(ctx, guest); err != nil {
		return nil, dependency("create guest", err)
	}
	return guest, nil
}

func (s *reservationService) CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create reservation validation failed", zap.Error(err))
		return nil, err
	}

	roomID, err := parseID("room", req.RoomID)
	if err != nil {
		return nil, err
	}
	stay, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	guestID := uuid.Nil
	switch {
	case req.GuestID != "":
		if guestID, err = parseID("guest", req.GuestID); err != nil {
			return nil, err
		}
	case req.Guest != nil:
		if err := validateGuest(req.Guest); err != nil {
			return nil, err
		}
	default:
		return nil, validationError("guest_id or guest details are required")
	}

	var (
		created *entity.Reservation
		guest   *entity.Guest
		room    *entity.Room
	)

	// Everything from the availability check to the insert happens under the room lock.
	err = s.repo.Tx.WithinRoomLock(ctx, roomID, func(ctx context.Context, tx *repository.Repository) error {
		var err error
		if room, err = findRoom(ctx, tx, roomID); err != nil {
			return err
		}
		if req.PartySize > room.Capacity {
			return validationError("party size %d exceeds room %s capacity of %d", req.PartySize, room.Number, room.Capacity)
		}
		if err := ensureAvailable(ctx, tx, roomID, stay, uuid.Nil); err != nil {
			return err
		}
		if guest, err = resolveGuest(ctx, tx, guestID, req.Guest); err != nil {
			return err
		}

		q, err := priceStay(ctx, tx, room, stay)
		if err != nil {
			return err
		}

		ts := now()
		code, err := allocateCode(ctx, tx, ts)
		if err != nil {
			return err
		}

		res := &entity.Reservation{
			Base:       entity.Base{ID: uuid.New(), CreatedAt: ts, UpdatedAt: ts},
			Code:       code,
			GuestID:    guest.ID,
			RoomID:     room.ID,
			CheckIn:    stay.CheckIn,
			CheckOut:   stay.CheckOut,
			PartySize:  req.PartySize,
			TotalPrice: q.total,
			Status:     entity.ReservationStatusPending,
			Version:    1,
		}
		if notes := strings.TrimSpace(req.Notes); notes != "" {
			res.Notes = &notes
		}

		if err := tx.Reservation.Create(ctx, res); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return conflict(ErrCodeExhausted, "reservation code %s is already taken, retry", code)
			}
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		err = serviceError("create reservation", err)
		s.log.Warn("Reservation not created",
			zap.Error(err),
			zap.String("room_id", req.RoomID),
			zap.Stringer("stay", stay),
		)
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", created.ID.String()),
		zap.String("code", created.Code),
		zap.String("room_id", created.RoomID.String()),
		zap.String("guest_id", created.GuestID.String()),
		zap.Stringer("total", created.TotalPrice),
	)
	s.publish(events.TypeReservationCreated, created, "")

	return s.detailed(created, guest, room), nil
}

// TransitionStatus applies one edge of the status table. A repeated confirm
// returns the reservation untouched.
func (s *reservationService) TransitionStatus(ctx context.Context, reservationID string, req *request.UpdateStatusRequest) (*response.ReservationResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	id, err := parseID("reservation", reservationID)
	if err != nil {
		return nil, err
	}
	target, ok := entity.ParseReservationStatus(req.Status)
	if !ok {
		return nil, validationError("unknown status %q", req.Status)
	}

	var (
		res      *entity.Reservation
		previous entity.ReservationStatus
		changed  bool
	)

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		current, err := tx.Reservation.FindByID(ctx, id)
		if err != nil {
			return dependency("find reservation", err)
		}
		if current == nil {
			return notFound("reservation", reservationID)
		}
		res = current
		previous = current.Status

		if current.Status == entity.ReservationStatusConfirmed && target == entity.ReservationStatusConfirmed {
			return nil
		}
		if !current.Status.CanTransitionTo(target) {
			return conflict(ErrInvalidTransition, "reservation %s cannot move from %s to %s", current.Code, current.Status, target)
		}

		expected := current.Version
		current.Status = target
		current.UpdatedAt = now()
		if req.PaymentMethod != "" {
			pm := entity.PaymentMethod(req.PaymentMethod)
			current.PaymentMethod = &pm
		}

		// the flag is stored with the reservation, so retries cannot credit twice
		if target == entity.ReservationStatusConfirmed && !current.VisitCredited {
			if err := tx.Guest.IncrementVisitCount(ctx, current.GuestID); err != nil {
				return dependency("credit guest visit", err)
			}
			current.VisitCredited = true
		}

		if err := tx.Reservation.UpdateStatus(ctx, current, expected); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		err = serviceError("transition reservation", err)
		s.log.Warn("Status transition rejected",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
			zap.String("target", req.Status),
		)
		return nil, err
	}

	if changed {
		s.log.Info("Reservation status changed",
			zap.String("code", res.Code),
			zap.String("from", string(previous)),
			zap.String("to", string(res.Status)),
		)
		s.publish(events.TypeReservationStatusChanged, res, previous)
		if res.Status == entity.ReservationStatusConfirmed {
			go s.sendConfirmation(*res)
		}
	}

	resp := response.ReservationToResponse(res)
	return &resp, nil
}

func (s *reservationService) Reschedule(ctx context.Context, reservationID string, req *request.RescheduleRequest) (*response.ReservationResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	id, err := parseID("reservation", reservationID)
	if err != nil {
		return nil, err
	}
	stay, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, dependency("find reservation", err)
	}
	if existing == nil {
		return nil, notFound("reservation", reservationID)
	}

	var (
		res     *entity.Reservation
		changed bool
	)
	err = s.repo.Tx.WithinRoomLock(ctx, existing.RoomID, func(ctx context.Context, tx *repository.Repository) error {
		current, err := tx.Reservation.FindByID(ctx, id)
		if err != nil {
			return dependency("find reservation", err)
		}
		if current == nil {
			return notFound("reservation", reservationID)
		}
		res = current

		if !current.Status.Occupies() {
			return conflict(ErrReservationInState, "reservation %s is %s and cannot be rescheduled", current.Code, current.Status)
		}
		if current.CheckIn.Equal(stay.CheckIn) && current.CheckOut.Equal(stay.CheckOut) {
			return nil
		}

		room, err := findRoom(ctx, tx, current.RoomID)
		if err != nil {
			return err
		}
		if err := ensureAvailable(ctx, tx, current.RoomID, stay, current.ID); err != nil {
			return err
		}
		q, err := priceStay(ctx, tx, room, stay)
		if err != nil {
			return err
		}

		expected := current.Version
		current.CheckIn = stay.CheckIn
		current.CheckOut = stay.CheckOut
		current.TotalPrice = q.total
		current.UpdatedAt = now()
		if err := tx.Reservation.UpdateStay(ctx, current, expected); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, serviceError("reschedule reservation", err)
	}

	if changed {
		s.log.Info("Reservation rescheduled",
			zap.String("code", res.Code),
			zap.Stringer("stay", res.Stay()),
			zap.Stringer("total", res.TotalPrice),
		)
		s.publish(events.TypeReservationRescheduled, res, res.Status)
	}

	resp := response.ReservationToResponse(res)
	return &resp, nil
}

func (s *reservationService) GetReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	id, err := parseID("reservation", reservationID)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, dependency("find reservation", err)
	}
	if res == nil {
		return nil, notFound("reservation", reservationID)
	}
	return s.withDetails(ctx, res), nil
}

// GetByCode matches the code case-insensitively.
func (s *reservationService) GetByCode(ctx context.Context, code string) (*response.ReservationResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, validationError("reservation code is required")
	}
	res, err := s.repo.Reservation.FindByCode(ctx, code)
	if err != nil {
		return nil, dependency("find reservation by code", err)
	}
	if res == nil {
		return nil, notFound("reservation", code)
	}
	return s.withDetails(ctx, res), nil
}

func (s *reservationService) ListReservations(ctx context.Context, req *request.ReservationListRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	normalizePage(&req.PaginatedRequest)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var filter repository.ReservationFilter
	if req.Status != "" {
		status := entity.ReservationStatus(req.Status)
		filter.Status = &status
	}
	if req.GuestID != "" {
		id, err := parseID("guest", req.GuestID)
		if err != nil {
			return nil, err
		}
		filter.GuestID = &id
	}
	if req.RoomID != "" {
		id, err := parseID("room", req.RoomID)
		if err != nil {
			return nil, err
		}
		filter.RoomID = &id
	}
	if req.From != "" {
		from, err := daterange.ParseDate(req.From)
		if err != nil {
			return nil, validationError("%v", err)
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := daterange.ParseDate(req.To)
		if err != nil {
			return nil, validationError("%v", err)
		}
		filter.To = &to
	}

	return s.list(ctx, filter, &req.PaginatedRequest)
}

func (s *reservationService) ListGuestReservations(ctx context.Context, guestID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	normalizePage(req)
	id, err := parseID("guest", guestID)
	if err != nil {
		return nil, err
	}
	if _, err := findGuest(ctx, s.repo, id); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ReservationFilter{GuestID: &id}, req)
}

func (s *reservationService) list(ctx context.Context, filter repository.ReservationFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	reservations, err := s.repo.Reservation.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list reservations", zap.Error(err))
		return nil, dependency("list reservations", err)
	}
	total, err := s.repo.Reservation.Count(ctx, filter)
	if err != nil {
		return nil, dependency("count reservations", err)
	}

	data := make([]response.ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		data = append(data, response.ReservationToResponse(res))
	}
	return response.NewPaginatedResponse(data, page.Page, page.PerPage, total), nil
}

func (s *reservationService) CompleteElapsed(ctx context.Context, today time.Time) (int, error) {
	elapsed, err := s.repo.Reservation.FindConfirmedEndingBy(ctx, daterange.Truncate(today))
	if err != nil {
		return 0, dependency("find elapsed reservations", err)
	}

	completed := 0
	var errs []error
	for _, candidate := range elapsed {
		var done *entity.Reservation
		err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
			res, err := tx.Reservation.FindByID(ctx, candidate.ID)
			if err != nil {
				return err
			}
			if res == nil || res.Status != entity.ReservationStatusConfirmed {
				return nil
			}
			expected := res.Version
			res.Status = entity.ReservationStatusCompleted
			res.UpdatedAt = now()
			if err := tx.Reservation.UpdateStatus(ctx, res, expected); err != nil {
				return err
			}
			done = res
			return nil
		})
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			s.log.Debug("Reservation changed while completing, skipped", zap.String("code", candidate.Code))
		case err != nil:
			errs = append(errs, fmt.Errorf("complete %s: %w", candidate.Code, err))
		case done != nil:
			completed++
			s.publish(events.TypeReservationStatusChanged, done, entity.ReservationStatusConfirmed)
		}
	}

	if completed > 0 {
		s.log.Info("Elapsed reservations completed", zap.Int("count", completed))
	}
	if len(errs) > 0 {
		return completed, dependency("complete elapsed reservations", errors.Join(errs...))
	}
	return completed, nil
}

func (s *reservationService) detailed(res *entity.Reservation, guest *entity.Guest, room *entity.Room) *response.ReservationResponse {
	resp := response.ReservationToResponse(res)
	if guest != nil {
		g := response.GuestToResponse(guest)
		resp.Guest = &g
	}
	if room != nil {
		r := response.RoomToResponse(room)
		resp.Room = &r
	}
	return &resp
}

// withDetails attaches guest and room when they can be loaded; a lookup
// failure only drops the embedded object.
func (s *reservationService) withDetails(ctx context.Context, res *entity.Reservation) *response.ReservationResponse {
	guest, err := s.repo.Guest.FindByID(ctx, res.GuestID)
	if err != nil {
		s.log.Warn("Failed to load reservation guest", zap.Error(err), zap.String("code", res.Code))
	}
	room, err := s.repo.Room.FindByID(ctx, res.RoomID)
	if err != nil {
		s.log.Warn("Failed to load reservation room", zap.Error(err), zap.String("code", res.Code))
	}
	return s.detailed(res, guest, room)
}

func (s *reservationService) publish(eventType string, res *entity.Reservation, previous entity.ReservationStatus) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.publisher.Publish(ctx, events.NewReservationEvent(eventType, res, previous, now())); err != nil {
		s.log.Warn("Failed to publish reservation event",
			zap.Error(err),
			zap.String("type", eventType),
			zap.String("code", res.Code),
		)
	}
}

// sendConfirmation runs detached from the request; its failure is only logged.
func (s *reservationService) sendConfirmation(res entity.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()

	guest, err := s.repo.Guest.FindByID(ctx, res.GuestID)
	if err != nil || guest == nil {
		s.log.Error("Confirmation skipped, guest not loaded", zap.Error(err), zap.String("code", res.Code))
		return
	}
	if guest.Email == "" {
		s.log.Info("Confirmation skipped, guest has no email", zap.String("code", res.Code))
		return
	}
	room, err := s.repo.Room.FindByID(ctx, res.RoomID)
	if err != nil || room == nil {
		s.log.Error("Confirmation skipped, room not loaded", zap.Error(err), zap.String("code", res.Code))
		return
	}

	err = s.notifier.SendConfirmation(ctx, notify.Confirmation{
		GuestEmail:      guest.Email,
		GuestName:       guest.FullName,
		Code:            res.Code,
		RoomDescription: room.Label(),
		CheckIn:         res.CheckIn,
		CheckOut:        res.CheckOut,
		Total:           res.TotalPrice,
	})
	if err != nil {
		s.log.Error("Failed to send confirmation email",
			zap.Error(err),
			zap.String("code", res.Code),
			zap.String("guest_id", guest.ID.String()),
		)
	}
}
