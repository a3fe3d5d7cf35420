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

// UserRepository stores back-office staff accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entity.StaffUser) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.StaffUser, error)
	FindByEmail(ctx context.Context, email string) (*entity.StaffUser, error)
	CountAll(ctx context.Context) (int64, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "staff_user")),
	}
}

const staffColumns = `id, full_name, email, password, role, is_active, created_at, updated_at`

func scanStaff(row scanner) (*entity.StaffUser, error) {
	var user entity.StaffUser
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) Create(ctx context.Context, user *entity.StaffUser) error {
	query := `
		INSERT INTO staff_users (` + staffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to create staff user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create staff user %s: %w", user.Email, mapPgError(err))
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE id = $1`

	user, err := scanStaff(ur.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find staff user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find staff user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE lower(email) = lower($1)`

	user, err := scanStaff(ur.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find staff user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find staff user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := ur.db.QueryRow(ctx, `SELECT COUNT(*) FROM staff_users`).Scan(&count); err != nil {
		ur.log.Error("Database error counting staff users", zap.Error(err))
		return 0, fmt.Errorf("count staff users: %w", err)
	}
	return count, nil
}
