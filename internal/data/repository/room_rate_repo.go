package repository

import (
	"context"
	"fmt"

	"hostal-booking/internal/data/entity"
	"hostal-booking/pkg/database"
	"hostal-booking/pkg/daterange"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoomRateRepository interface {
	Upsert(ctx context.Context, rates []entity.RoomRate) error
	FindByRange(ctx context.Context, roomID uuid.UUID, stay daterange.Range) ([]entity.RoomRate, error)
	DeleteRange(ctx context.Context, roomID uuid.UUID, stay daterange.Range) (int64, error)
	DeleteByRoom(ctx context.Context, roomID uuid.UUID) error
}

type roomRateRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRateRepository(db database.PgxIface, log *zap.Logger) RoomRateRepository {
	return &roomRateRepository{
		db:  db,
		log: log.With(zap.String("repository", "room_rate")),
	}
}

func (r *roomRateRepository) Upsert(ctx context.Context, rates []entity.RoomRate) error {
	if len(rates) == 0 {
		return nil
	}

	query := `INSERT INTO room_rates (room_id, rate_date, rate_cents) VALUES `
	args := make([]any, 0, len(rates)*3)
	for i, rate := range rates {
		if i > 0 {
			query += ", "
		}
		n := i * 3
		query += fmt.Sprintf("($%d, $%d, $%d)", n+1, n+2, n+3)
		args = append(args, rate.RoomID, rate.Date, rate.Rate)
	}
	query += ` ON CONFLICT (room_id, rate_date) DO UPDATE SET rate_cents = EXCLUDED.rate_cents`

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to upsert room rates",
			zap.Error(err),
			zap.String("room_id", rates[0].RoomID.String()),
			zap.Int("count", len(rates)),
		)
		return fmt.Errorf("upsert %d room rates: %w", len(rates), err)
	}

	return nil
}

func (r *roomRateRepository) FindByRange(ctx context.Context, roomID uuid.UUID, stay daterange.Range) ([]entity.RoomRate, error) {
	query := `
		SELECT room_id, rate_date, rate_cents
		FROM room_rates
		WHERE room_id = $1 AND rate_date >= $2 AND rate_date < $3
		ORDER BY rate_date
	`

	rows, err := r.db.Query(ctx, query, roomID, stay.CheckIn, stay.CheckOut)
	if err != nil {
		r.log.Error("Failed to find room rates",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
			zap.Stringer("range", stay),
		)
		return nil, fmt.Errorf("find rates for room %s: %w", roomID.String(), err)
	}
	defer rows.Close()

	var rates []entity.RoomRate
	for rows.Next() {
		var rate entity.RoomRate
		if err := rows.Scan(&rate.RoomID, &rate.Date, &rate.Rate); err != nil {
			r.log.Error("Failed to scan room rate row", zap.Error(err))
			return nil, fmt.Errorf("scan room rate row: %w", err)
		}
		rate.Date = daterange.Truncate(rate.Date)
		rates = append(rates, rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room rate rows: %w", err)
	}

	return rates, nil
}

func (r *roomRateRepository) DeleteRange(ctx context.Context, roomID uuid.UUID, stay daterange.Range) (int64, error) {
	query := `DELETE FROM room_rates WHERE room_id = $1 AND rate_date >= $2 AND rate_date < $3`

	result, err := r.db.Exec(ctx, query, roomID, stay.CheckIn, stay.CheckOut)
	if err != nil {
		r.log.Error("Failed to delete room rates",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return 0, fmt.Errorf("delete rates for room %s: %w", roomID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *roomRateRepository) DeleteByRoom(ctx context.Context, roomID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM room_rates WHERE room_id = $1`, roomID); err != nil {
		r.log.Error("Failed to delete room rates",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return fmt.Errorf("delete rates for room %s: %w", roomID.String(), err)
	}
	return nil
}
