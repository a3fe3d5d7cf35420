package repository

import (
	"context"
	"errors"
	"fmt"

	"hostal-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrVersionConflict is returned when a row changed after it was read.
	ErrVersionConflict = errors.New("repository: version conflict")
	// ErrOverlap is returned when the reservations exclusion constraint rejects a write.
	ErrOverlap = errors.New("repository: overlapping reservation")
	// ErrDuplicate is returned on unique key violations.
	ErrDuplicate = errors.New("repository: duplicate key")
)

type Repository struct {
	Room        RoomRepository
	RoomRate    RoomRateRepository
	Guest       GuestRepository
	Reservation ReservationRepository
	Code        CodeCounterRepository
	User        UserRepository
	Session     SessionRepository
	Tx          Transactor
}

// TxFunc receives a Repository whose members all run inside the same transaction.
type TxFunc func(ctx context.Context, repo *Repository) error

type Transactor interface {
	WithinTx(ctx context.Context, fn TxFunc) error
	// WithinRoomLock is WithinTx plus an exclusive per-room lock held until commit.
	WithinRoomLock(ctx context.Context, roomID uuid.UUID, fn TxFunc) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepositories(db, log)
	repo.Tx = &pgxTransactor{
		db:  db,
		log: log.With(zap.String("repository", "tx")),
		raw: log,
	}
	return repo
}

func newRepositories(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Room:        NewRoomRepository(db, log),
		RoomRate:    NewRoomRateRepository(db, log),
		Guest:       NewGuestRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Code:        NewCodeCounterRepository(db, log),
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
	}
}

// mapPgError turns constraint violations into repository sentinels.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23P01":
		return fmt.Errorf("%w (%s)", ErrOverlap, pgErr.ConstraintName)
	case "23505":
		return fmt.Errorf("%w (%s)", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}
