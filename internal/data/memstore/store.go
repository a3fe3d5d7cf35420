// Package memstore keeps every repository in process memory. It backs the
// DB_DRIVER=memory mode and the service tests.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/repository"

	"github.com/google/uuid"
)

type rateKey struct {
	roomID uuid.UUID
	date   string
}

// Store serializes transactions with txMu and guards the maps with mu.
// A failed transaction restores the snapshot taken when it began. Reads
// outside a transaction wait for the running one, so they never see rows
// that a rollback later removes.
type Store struct {
	txMu sync.RWMutex
	mu   sync.RWMutex
	now  func() time.Time

	rooms        map[uuid.UUID]entity.Room
	rates        map[rateKey]entity.RoomRate
	guests       map[uuid.UUID]entity.Guest
	reservations map[uuid.UUID]entity.Reservation
	counters     map[string]int
	staff        map[uuid.UUID]entity.StaffUser
	sessions     map[uuid.UUID]entity.Session
}

func New() *Store {
	return &Store{
		now:          time.Now,
		rooms:        make(map[uuid.UUID]entity.Room),
		rates:        make(map[rateKey]entity.RoomRate),
		guests:       make(map[uuid.UUID]entity.Guest),
		reservations: make(map[uuid.UUID]entity.Reservation),
		counters:     make(map[string]int),
		staff:        make(map[uuid.UUID]entity.StaffUser),
		sessions:     make(map[uuid.UUID]entity.Session),
	}
}

// Repository returns the store wired into the repository ports.
func (s *Store) Repository() *repository.Repository {
	return s.repo(false)
}

func (s *Store) repo(inTx bool) *repository.Repository {
	v := &view{s: s, inTx: inTx}
	return &repository.Repository{
		Room:        &roomRepo{v},
		RoomRate:    &rateRepo{v},
		Guest:       &guestRepo{v},
		Reservation: &reservationRepo{v},
		Code:        &codeRepo{v},
		User:        &userRepo{v},
		Session:     &sessionRepo{v},
		Tx:          &transactor{v},
	}
}

type snapshot struct {
	rooms        map[uuid.UUID]entity.Room
	rates        map[rateKey]entity.RoomRate
	guests       map[uuid.UUID]entity.Guest
	reservations map[uuid.UUID]entity.Reservation
	counters     map[string]int
	staff        map[uuid.UUID]entity.StaffUser
	sessions     map[uuid.UUID]entity.Session
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		rooms:        maps.Clone(s.rooms),
		rates:        maps.Clone(s.rates),
		guests:       maps.Clone(s.guests),
		reservations: maps.Clone(s.reservations),
		counters:     maps.Clone(s.counters),
		staff:        maps.Clone(s.staff),
		sessions:     maps.Clone(s.sessions),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = snap.rooms
	s.rates = snap.rates
	s.guests = snap.guests
	s.reservations = snap.reservations
	s.counters = snap.counters
	s.staff = snap.staff
	s.sessions = snap.sessions
}

// view is the Store as seen from inside or outside a transaction.
type view struct {
	s    *Store
	inTx bool
}

func (v *view) write(fn func() error) error {
	if !v.inTx {
		v.s.txMu.Lock()
		defer v.s.txMu.Unlock()
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn()
}

func (v *view) read(fn func()) {
	if !v.inTx {
		v.s.txMu.RLock()
		defer v.s.txMu.RUnlock()
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	fn()
}

type transactor struct {
	v *view
}

func (t *transactor) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.v.inTx {
		return fn(ctx, t.v.s.repo(true))
	}

	s := t.v.s
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx, s.repo(true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// WithinRoomLock needs nothing beyond WithinTx: transactions already run one at a time.
func (t *transactor) WithinRoomLock(ctx context.Context, _ uuid.UUID, fn repository.TxFunc) error {
	return t.WithinTx(ctx, fn)
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
