package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hostal-booking/internal/data/entity"

	"github.com/google/uuid"
)

type guestRepo struct {
	v *view
}

func (r *guestRepo) Create(_ context.Context, guest *entity.Guest) error {
	return r.v.write(func() error {
		if _, ok := r.v.s.guests[guest.ID]; ok {
			return fmt.Errorf("create guest %s: duplicate id", guest.ID)
		}
		r.v.s.guests[guest.ID] = *guest
		return nil
	})
}

func (r *guestRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Guest, error) {
	var out *entity.Guest
	r.v.read(func() {
		if guest, ok := r.v.s.guests[id]; ok {
			out = &guest
		}
	})
	return out, nil
}

func (r *guestRepo) filter(match func(entity.Guest) bool) []*entity.Guest {
	var out []*entity.Guest
	r.v.read(func() {
		for _, guest := range r.v.s.guests {
			if match(guest) {
				g := guest
				out = append(out, &g)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *guestRepo) FindByEmail(_ context.Context, email string) ([]*entity.Guest, error) {
	return r.filter(func(g entity.Guest) bool {
		return g.Email != "" && strings.EqualFold(g.Email, email)
	}), nil
}

func (r *guestRepo) FindByPhoneDigits(_ context.Context, digits string) ([]*entity.Guest, error) {
	return r.filter(func(g entity.Guest) bool {
		return g.PhoneDigits != "" && strings.HasSuffix(g.PhoneDigits, digits)
	}), nil
}

func (r *guestRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Guest, error) {
	all := r.filter(func(entity.Guest) bool { return true })
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *guestRepo) CountAll(_ context.Context) (int64, error) {
	var n int64
	r.v.read(func() { n = int64(len(r.v.s.guests)) })
	return n, nil
}

func (r *guestRepo) Update(_ context.Context, guest *entity.Guest) error {
	return r.v.write(func() error {
		stored, ok := r.v.s.guests[guest.ID]
		if !ok {
			return fmt.Errorf("guest %s not found", guest.ID)
		}
		// visit_count is owned by IncrementVisitCount
		updated := *guest
		updated.VisitCount = stored.VisitCount
		r.v.s.guests[guest.ID] = updated
		return nil
	})
}

func (r *guestRepo) IncrementVisitCount(_ context.Context, id uuid.UUID) error {
	return r.v.write(func() error {
		guest, ok := r.v.s.guests[id]
		if !ok {
			return fmt.Errorf("guest %s not found", id)
		}
		guest.VisitCount++
		guest.UpdatedAt = r.v.s.now()
		r.v.s.guests[id] = guest
		return nil
	})
}
