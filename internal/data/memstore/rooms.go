package memstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/repository"
	"hostal-booking/pkg/daterange"

	"github.com/google/uuid"
)

type roomRepo struct {
	v *view
}

func cloneRoom(room entity.Room) *entity.Room {
	room.Amenities = slices.Clone(room.Amenities)
	return &room
}

func (r *roomRepo) Create(_ context.Context, room *entity.Room) error {
	return r.v.write(func() error {
		for _, existing := range r.v.s.rooms {
			if existing.Number == room.Number {
				return fmt.Errorf("create room %s: %w", room.Number, repository.ErrDuplicate)
			}
		}
		r.v.s.rooms[room.ID] = *cloneRoom(*room)
		return nil
	})
}

func (r *roomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	var out *entity.Room
	r.v.read(func() {
		if room, ok := r.v.s.rooms[id]; ok {
			out = cloneRoom(room)
		}
	})
	return out, nil
}

func (r *roomRepo) FindByNumber(_ context.Context, number string) (*entity.Room, error) {
	var out *entity.Room
	r.v.read(func() {
		for _, room := range r.v.s.rooms {
			if room.Number == number {
				out = cloneRoom(room)
				return
			}
		}
	})
	return out, nil
}

func (r *roomRepo) FindAll(_ context.Context, filter repository.RoomFilter) ([]*entity.Room, error) {
	var out []*entity.Room
	r.v.read(func() {
		for _, room := range r.v.s.rooms {
			if filter.Type != nil && room.Type != *filter.Type {
				continue
			}
			if room.Capacity < filter.MinCapacity {
				continue
			}
			out = append(out, cloneRoom(room))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *roomRepo) Update(_ context.Context, room *entity.Room) error {
	return r.v.write(func() error {
		if _, ok := r.v.s.rooms[room.ID]; !ok {
			return fmt.Errorf("room %s not found", room.ID)
		}
		for id, existing := range r.v.s.rooms {
			if id != room.ID && existing.Number == room.Number {
				return fmt.Errorf("update room %s: %w", room.ID, repository.ErrDuplicate)
			}
		}
		r.v.s.rooms[room.ID] = *cloneRoom(*room)
		return nil
	})
}

func (r *roomRepo) Delete(_ context.Context, id uuid.UUID) error {
	return r.v.write(func() error {
		if _, ok := r.v.s.rooms[id]; !ok {
			return fmt.Errorf("room %s not found", id)
		}
		delete(r.v.s.rooms, id)
		return nil
	})
}

type rateRepo struct {
	v *view
}

func keyFor(roomID uuid.UUID, date time.Time) rateKey {
	return rateKey{roomID: roomID, date: date.Format(daterange.DateLayout)}
}

func (r *rateRepo) Upsert(_ context.Context, rates []entity.RoomRate) error {
	return r.v.write(func() error {
		for _, rate := range rates {
			rate.Date = daterange.Truncate(rate.Date)
			r.v.s.rates[keyFor(rate.RoomID, rate.Date)] = rate
		}
		return nil
	})
}

func (r *rateRepo) FindByRange(_ context.Context, roomID uuid.UUID, stay daterange.Range) ([]entity.RoomRate, error) {
	var out []entity.RoomRate
	r.v.read(func() {
		for _, date := range stay.Dates() {
			if rate, ok := r.v.s.rates[keyFor(roomID, date)]; ok {
				out = append(out, rate)
			}
		}
	})
	return out, nil
}

func (r *rateRepo) DeleteRange(_ context.Context, roomID uuid.UUID, stay daterange.Range) (int64, error) {
	var deleted int64
	err := r.v.write(func() error {
		for _, date := range stay.Dates() {
			key := keyFor(roomID, date)
			if _, ok := r.v.s.rates[key]; ok {
				delete(r.v.s.rates, key)
				deleted++
			}
		}
		return nil
	})
	return deleted, err
}

func (r *rateRepo) DeleteByRoom(_ context.Context, roomID uuid.UUID) error {
	return r.v.write(func() error {
		for key := range r.v.s.rates {
			if key.roomID == roomID {
				delete(r.v.s.rates, key)
			}
		}
		return nil
	})
}
