package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/repository"
	"hostal-booking/pkg/daterange"

	"github.com/google/uuid"
)

type reservationRepo struct {
	v *view
}

// checkExclusion mirrors the reservations_no_overlap constraint. Caller holds mu.
func (r *reservationRepo) checkExclusion(res entity.Reservation) error {
	if !res.Status.Occupies() {
		return nil
	}
	stay := res.Stay()
	for id, other := range r.v.s.reservations {
		if id == res.ID || other.RoomID != res.RoomID || !other.Status.Occupies() {
			continue
		}
		if other.Stay().Overlaps(stay) {
			return fmt.Errorf("reservation %s conflicts with %s: %w", res.Code, other.Code, repository.ErrOverlap)
		}
	}
	return nil
}

func (r *reservationRepo) Create(_ context.Context, res *entity.Reservation) error {
	return r.v.write(func() error {
		for _, other := range r.v.s.reservations {
			if strings.EqualFold(other.Code, res.Code) {
				return fmt.Errorf("create reservation %s: %w", res.Code, repository.ErrDuplicate)
			}
		}
		if err := r.checkExclusion(*res); err != nil {
			return err
		}
		r.v.s.reservations[res.ID] = *res
		return nil
	})
}

func (r *reservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	var out *entity.Reservation
	r.v.read(func() {
		if res, ok := r.v.s.reservations[id]; ok {
			out = &res
		}
	})
	return out, nil
}

func (r *reservationRepo) FindByCode(_ context.Context, code string) (*entity.Reservation, error) {
	var out *entity.Reservation
	r.v.read(func() {
		for _, res := range r.v.s.reservations {
			if strings.EqualFold(res.Code, code) {
				found := res
				out = &found
				return
			}
		}
	})
	return out, nil
}

func matches(res entity.Reservation, f repository.ReservationFilter) bool {
	if f.Status != nil && res.Status != *f.Status {
		return false
	}
	if f.GuestID != nil && res.GuestID != *f.GuestID {
		return false
	}
	if f.RoomID != nil && res.RoomID != *f.RoomID {
		return false
	}
	if f.From != nil && !res.CheckOut.After(*f.From) {
		return false
	}
	if f.To != nil && !res.CheckIn.Before(*f.To) {
		return false
	}
	return true
}

func (r *reservationRepo) collect(match func(entity.Reservation) bool) []*entity.Reservation {
	var out []*entity.Reservation
	r.v.read(func() {
		for _, res := range r.v.s.reservations {
			if match(res) {
				found := res
				out = append(out, &found)
			}
		}
	})
	return out
}

func (r *reservationRepo) FindAll(_ context.Context, filter repository.ReservationFilter, limit, offset int) ([]*entity.Reservation, error) {
	out := r.collect(func(res entity.Reservation) bool { return matches(res, filter) })
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Code > out[j].Code
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return page(out, limit, offset), nil
}

func (r *reservationRepo) Count(_ context.Context, filter repository.ReservationFilter) (int64, error) {
	return int64(len(r.collect(func(res entity.Reservation) bool { return matches(res, filter) }))), nil
}

func (r *reservationRepo) CountByRoom(_ context.Context, roomID uuid.UUID) (int64, error) {
	return int64(len(r.collect(func(res entity.Reservation) bool { return res.RoomID == roomID }))), nil
}

func (r *reservationRepo) FindOccupyingByRoom(_ context.Context, roomID uuid.UUID, window daterange.Range) ([]*entity.Reservation, error) {
	out := r.collect(func(res entity.Reservation) bool {
		return res.RoomID == roomID && res.Status.Occupies() && res.Stay().Overlaps(window)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

func (r *reservationRepo) FindConfirmedEndingBy(_ context.Context, date time.Time) ([]*entity.Reservation, error) {
	out := r.collect(func(res entity.Reservation) bool {
		return res.Status == entity.ReservationStatusConfirmed && !res.CheckOut.After(date)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CheckOut.Before(out[j].CheckOut) })
	return out, nil
}

func (r *reservationRepo) update(res *entity.Reservation, expectedVersion int64, apply func(stored *entity.Reservation)) error {
	return r.v.write(func() error {
		stored, ok := r.v.s.reservations[res.ID]
		if !ok || stored.Version != expectedVersion {
			return fmt.Errorf("update reservation %s: %w", res.ID, repository.ErrVersionConflict)
		}
		apply(&stored)
		stored.UpdatedAt = res.UpdatedAt
		stored.Version++
		if err := r.checkExclusion(stored); err != nil {
			return err
		}
		r.v.s.reservations[res.ID] = stored
		res.Version = stored.Version
		return nil
	})
}

func (r *reservationRepo) UpdateStatus(_ context.Context, res *entity.Reservation, expectedVersion int64) error {
	return r.update(res, expectedVersion, func(stored *entity.Reservation) {
		stored.Status = res.Status
		stored.PaymentMethod = res.PaymentMethod
		stored.VisitCredited = res.VisitCredited
	})
}

func (r *reservationRepo) UpdateStay(_ context.Context, res *entity.Reservation, expectedVersion int64) error {
	return r.update(res, expectedVersion, func(stored *entity.Reservation) {
		stored.CheckIn = res.CheckIn
		stored.CheckOut = res.CheckOut
		stored.TotalPrice = res.TotalPrice
	})
}

type codeRepo struct {
	v *view
}

func (r *codeRepo) Next(_ context.Context, period string) (int, error) {
	var seq int
	err := r.v.write(func() error {
		r.v.s.counters[period]++
		seq = r.v.s.counters[period]
		return nil
	})
	return seq, err
}
