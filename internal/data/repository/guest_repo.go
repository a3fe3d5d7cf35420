package repository

import (
	"context"
	"fmt"

	"hostal-booking/internal/data/entity"
	"hostal-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GuestRepository interface {
	Create(ctx context.Context, guest *entity.Guest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Guest, error)
	FindByEmail(ctx context.Context, email string) ([]*entity.Guest, error)
	FindByPhoneDigits(ctx context.Context, digits string) ([]*entity.Guest, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Guest, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, guest *entity.Guest) error
	IncrementVisitCount(ctx context.Context, id uuid.UUID) error
}

type guestRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGuestRepository(db database.PgxIface, log *zap.Logger) GuestRepository {
	return &guestRepository{
		db:  db,
		log: log.With(zap.String("repository", "guest")),
	}
}

const guestColumns = `id, full_name, email, phone, phone_digits, visit_count, password_hash, created_at, updated_at`

func scanGuest(row scanner) (*entity.Guest, error) {
	var guest entity.Guest
	err := row.Scan(
		&guest.ID,
		&guest.FullName,
		&guest.Email,
		&guest.Phone,
		&guest.PhoneDigits,
		&guest.VisitCount,
		&guest.PasswordHash,
		&guest.CreatedAt,
		&guest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *guestRepository) Create(ctx context.Context, guest *entity.Guest) error {
	query := `
		INSERT INTO guests (` + guestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		guest.ID,
		guest.FullName,
		guest.Email,
		guest.Phone,
		guest.PhoneDigits,
		guest.VisitCount,
		guest.PasswordHash,
		guest.CreatedAt,
		guest.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create guest",
			zap.Error(err),
			zap.String("guest_id", guest.ID.String()),
		)
		return fmt.Errorf("create guest %s: %w", guest.ID.String(), mapPgError(err))
	}

	return nil
}

func (r *guestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE id = $1`

	guest, err := scanGuest(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find guest by ID",
			zap.Error(err),
			zap.String("guest_id", id.String()),
		)
		return nil, fmt.Errorf("find guest by ID %s: %w", id.String(), err)
	}

	return guest, nil
}

// FindByEmail matches case-insensitively; duplicates are returned oldest first.
func (r *guestRepository) FindByEmail(ctx context.Context, email string) ([]*entity.Guest, error) {
	query := `
		SELECT ` + guestColumns + `
		FROM guests
		WHERE lower(email) = lower($1) AND email <> ''
		ORDER BY created_at
	`
	return r.list(ctx, "find guests by email", query, email)
}

// FindByPhoneDigits matches guests whose stored digits end with the given digits.
func (r *guestRepository) FindByPhoneDigits(ctx context.Context, digits string) ([]*entity.Guest, error) {
	query := `
		SELECT ` + guestColumns + `
		FROM guests
		WHERE phone_digits <> '' AND right(phone_digits, length($1)) = $1
		ORDER BY created_at
	`
	return r.list(ctx, "find guests by phone", query, digits)
}

func (r *guestRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Guest, error) {
	query := `
		SELECT ` + guestColumns + `
		FROM guests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, "find all guests", query, limit, offset)
}

func (r *guestRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Guest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query guests", zap.Error(err), zap.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var guests []*entity.Guest
	for rows.Next() {
		guest, err := scanGuest(rows)
		if err != nil {
			r.log.Error("Failed to scan guest row", zap.Error(err))
			return nil, fmt.Errorf("scan guest row: %w", err)
		}
		guests = append(guests, guest)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate guest rows: %w", err)
	}

	return guests, nil
}

func (r *guestRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM guests`).Scan(&count); err != nil {
		r.log.Error("Database error counting guests", zap.Error(err))
		return 0, fmt.Errorf("count all guests: %w", err)
	}
	return count, nil
}

func (r *guestRepository) Update(ctx context.Context, guest *entity.Guest) error {
	query := `
		UPDATE guests
		SET full_name = $2, email = $3, phone = $4, phone_digits = $5,
		    password_hash = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		guest.ID,
		guest.FullName,
		guest.Email,
		guest.Phone,
		guest.PhoneDigits,
		guest.PasswordHash,
		guest.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update guest",
			zap.Error(err),
			zap.String("guest_id", guest.ID.String()),
		)
		return fmt.Errorf("update guest %s: %w", guest.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guest %s not found", guest.ID.String())
	}

	return nil
}

func (r *guestRepository) IncrementVisitCount(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE guests SET visit_count = visit_count + 1, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to increment visit count",
			zap.Error(err),
			zap.String("guest_id", id.String()),
		)
		return fmt.Errorf("increment visit count for guest %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guest %s not found", id.String())
	}

	return nil
}
