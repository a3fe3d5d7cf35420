package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/pkg/database"
	"hostal-booking/pkg/daterange"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ReservationFilter narrows admin listings. From/To select stays overlapping [From, To).
type ReservationFilter struct {
	Status  *entity.ReservationStatus
	GuestID *uuid.UUID
	RoomID  *uuid.UUID
	From    *time.Time
	To      *time.Time
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByCode(ctx context.Context, code string) (*entity.Reservation, error)
	FindAll(ctx context.Context, filter ReservationFilter, limit, offset int) ([]*entity.Reservation, error)
	Count(ctx context.Context, filter ReservationFilter) (int64, error)
	CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error)

	// Business queries
	FindOccupyingByRoom(ctx context.Context, roomID uuid.UUID, window daterange.Range) ([]*entity.Reservation, error)
	FindConfirmedEndingBy(ctx context.Context, date time.Time) ([]*entity.Reservation, error)
	UpdateStatus(ctx context.Context, reservation *entity.Reservation, expectedVersion int64) error
	UpdateStay(ctx context.Context, reservation *entity.Reservation, expectedVersion int64) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, code, guest_id, room_id, check_in, check_out, party_size, total_price_cents,
	status, payment_method, notes, visit_credited, version, created_at, updated_at`

func scanReservation(row scanner) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID,
		&res.Code,
		&res.GuestID,
		&res.RoomID,
		&res.CheckIn,
		&res.CheckOut,
		&res.PartySize,
		&res.TotalPrice,
		&res.Status,
		&res.PaymentMethod,
		&res.Notes,
		&res.VisitCredited,
		&res.Version,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.CheckIn = daterange.Truncate(res.CheckIn)
	res.CheckOut = daterange.Truncate(res.CheckOut)
	return &res, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *entity.Reservation) error {
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		res.ID,
		res.Code,
		res.GuestID,
		res.RoomID,
		res.CheckIn,
		res.CheckOut,
		res.PartySize,
		res.TotalPrice,
		res.Status,
		res.PaymentMethod,
		res.Notes,
		res.VisitCredited,
		res.Version,
		res.CreatedAt,
		res.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("code", res.Code),
			zap.String("room_id", res.RoomID.String()),
		)
		return fmt.Errorf("create reservation %s: %w", res.Code, mapPgError(err))
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return res, nil
}

func (r *reservationRepository) FindByCode(ctx context.Context, code string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE upper(code) = upper($1)`

	res, err := scanReservation(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find reservation by code %s: %w", code, err)
	}

	return res, nil
}

func buildReservationWhere(filter ReservationFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.GuestID != nil {
		args = append(args, *filter.GuestID)
		where = append(where, fmt.Sprintf("guest_id = $%d", len(args)))
	}
	if filter.RoomID != nil {
		args = append(args, *filter.RoomID)
		where = append(where, fmt.Sprintf("room_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("check_out > $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("check_in < $%d", len(args)))
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func (r *reservationRepository) FindAll(ctx context.Context, filter ReservationFilter, limit, offset int) ([]*entity.Reservation, error) {
	where, args := buildReservationWhere(filter)
	args = append(args, limit, offset)
	query := `SELECT ` + reservationColumns + ` FROM reservations` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return r.list(ctx, "find all reservations", query, args...)
}

func (r *reservationRepository) Count(ctx context.Context, filter ReservationFilter) (int64, error) {
	where, args := buildReservationWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reservations`+where, args...).Scan(&count); err != nil {
		r.log.Error("Database error counting reservations", zap.Error(err))
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return count, nil
}

func (r *reservationRepository) CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE room_id = $1`, roomID).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting reservations by room",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return 0, fmt.Errorf("count reservations by room %s: %w", roomID.String(), err)
	}
	return count, nil
}

// FindOccupyingByRoom returns pending and confirmed stays overlapping the window.
func (r *reservationRepository) FindOccupyingByRoom(ctx context.Context, roomID uuid.UUID, window daterange.Range) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE room_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND check_in < $3
		  AND check_out > $2
		ORDER BY check_in
	`
	return r.list(ctx, "find occupying reservations", query, roomID, window.CheckIn, window.CheckOut)
}

func (r *reservationRepository) FindConfirmedEndingBy(ctx context.Context, date time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE status = 'confirmed' AND check_out <= $1
		ORDER BY check_out
	`
	return r.list(ctx, "find elapsed reservations", query, date)
}

func (r *reservationRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query reservations", zap.Error(err), zap.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}

	return reservations, nil
}

// UpdateStatus writes status, payment method and the visit credit flag when the
// stored version still equals expectedVersion, then bumps the version.
func (r *reservationRepository) UpdateStatus(ctx context.Context, res *entity.Reservation, expectedVersion int64) error {
	query := `
		UPDATE reservations
		SET status = $3, payment_method = $4, visit_credited = $5, updated_at = $6, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`

	err := r.db.QueryRow(ctx, query,
		res.ID,
		expectedVersion,
		res.Status,
		res.PaymentMethod,
		res.VisitCredited,
		res.UpdatedAt,
	).Scan(&res.Version)

	if err == pgx.ErrNoRows {
		return fmt.Errorf("update reservation %s status: %w", res.ID.String(), ErrVersionConflict)
	}
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", res.ID.String()),
			zap.String("status", string(res.Status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", res.ID.String(), res.Status, mapPgError(err))
	}

	return nil
}

func (r *reservationRepository) UpdateStay(ctx context.Context, res *entity.Reservation, expectedVersion int64) error {
	query := `
		UPDATE reservations
		SET check_in = $3, check_out = $4, total_price_cents = $5, updated_at = $6, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`

	err := r.db.QueryRow(ctx, query,
		res.ID,
		expectedVersion,
		res.CheckIn,
		res.CheckOut,
		res.TotalPrice,
		res.UpdatedAt,
	).Scan(&res.Version)

	if err == pgx.ErrNoRows {
		return fmt.Errorf("update reservation %s stay: %w", res.ID.String(), ErrVersionConflict)
	}
	if err != nil {
		r.log.Error("Failed to update reservation stay",
			zap.Error(err),
			zap.String("reservation_id", res.ID.String()),
		)
		return fmt.Errorf("update reservation %s stay: %w", res.ID.String(), mapPgError(err))
	}

	return nil
}
