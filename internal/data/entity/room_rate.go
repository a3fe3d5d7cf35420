package entity

import (
	"time"

	"github.com/google/uuid"
)

// RoomRate overrides a room's nightly rate for a single night.
type RoomRate struct {
	RoomID uuid.UUID `db:"room_id"`
	Date   time.Time `db:"rate_date"`
	Rate   Money     `db:"rate_cents"`
}
