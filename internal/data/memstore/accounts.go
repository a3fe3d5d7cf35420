package memstore

import (
	"context"
	"fmt"
	"strings"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/repository"

	"github.com/google/uuid"
)

type userRepo struct {
	v *view
}

func (r *userRepo) Create(_ context.Context, user *entity.StaffUser) error {
	return r.v.write(func() error {
		for _, existing := range r.v.s.staff {
			if strings.EqualFold(existing.Email, user.Email) {
				return fmt.Errorf("create staff user %s: %w", user.Email, repository.ErrDuplicate)
			}
		}
		r.v.s.staff[user.ID] = *user
		return nil
	})
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.StaffUser, error) {
	var out *entity.StaffUser
	r.v.read(func() {
		if user, ok := r.v.s.staff[id]; ok {
			out = &user
		}
	})
	return out, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.StaffUser, error) {
	var out *entity.StaffUser
	r.v.read(func() {
		for _, user := range r.v.s.staff {
			if strings.EqualFold(user.Email, email) {
				found := user
				out = &found
				return
			}
		}
	})
	return out, nil
}

func (r *userRepo) CountAll(_ context.Context) (int64, error) {
	var n int64
	r.v.read(func() { n = int64(len(r.v.s.staff)) })
	return n, nil
}

type sessionRepo struct {
	v *view
}

func (r *sessionRepo) Create(_ context.Context, session *entity.Session) error {
	return r.v.write(func() error {
		if _, ok := r.v.s.sessions[session.Token]; ok {
			return fmt.Errorf("failed to create session: %w", repository.ErrDuplicate)
		}
		r.v.s.sessions[session.Token] = *session
		return nil
	})
}

func (r *sessionRepo) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	var out *entity.Session
	r.v.read(func() {
		session, ok := r.v.s.sessions[token]
		if !ok || session.RevokedAt != nil || !session.ExpiresAt.After(r.v.s.now()) {
			return
		}
		out = &session
	})
	return out, nil
}

func (r *sessionRepo) Revoke(_ context.Context, token uuid.UUID) error {
	return r.v.write(func() error {
		session, ok := r.v.s.sessions[token]
		if !ok || session.RevokedAt != nil {
			return fmt.Errorf("session not found or already revoked")
		}
		now := r.v.s.now()
		session.RevokedAt = &now
		r.v.s.sessions[token] = session
		return nil
	})
}

func (r *sessionRepo) CleanExpiredSessions(_ context.Context) error {
	return r.v.write(func() error {
		cutoff := r.v.s.now().AddDate(0, 0, -7)
		for token, session := range r.v.s.sessions {
			if session.ExpiresAt.Before(cutoff) {
				delete(r.v.s.sessions, token)
			}
		}
		return nil
	})
}
