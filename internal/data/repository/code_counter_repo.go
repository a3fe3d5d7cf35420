package repository

import (
	"context"
	"fmt"

	"hostal-booking/pkg/database"

	"go.uber.org/zap"
)

// CodeCounterRepository hands out reservation code sequence numbers per period.
type CodeCounterRepository interface {
	Next(ctx context.Context, period string) (int, error)
}

type codeCounterRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCodeCounterRepository(db database.PgxIface, log *zap.Logger) CodeCounterRepository {
	return &codeCounterRepository{
		db:  db,
		log: log.With(zap.String("repository", "code_counter")),
	}
}

func (r *codeCounterRepository) Next(ctx context.Context, period string) (int, error) {
	query := `
		INSERT INTO reservation_code_counters (period, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (period) DO UPDATE SET last_seq = reservation_code_counters.last_seq + 1
		RETURNING last_seq
	`

	var seq int
	if err := r.db.QueryRow(ctx, query, period).Scan(&seq); err != nil {
		r.log.Error("Failed to allocate code sequence",
			zap.Error(err),
			zap.String("period", period),
		)
		return 0, fmt.Errorf("next code sequence for %s: %w", period, err)
	}

	return seq, nil
}
