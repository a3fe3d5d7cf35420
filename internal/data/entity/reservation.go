package entity

import (
	"time"

	"hostal-booking/pkg/daterange"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

// OccupyingStatuses block a room for the nights of the stay.
var OccupyingStatuses = []ReservationStatus{ReservationStatusPending, ReservationStatusConfirmed}

var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed: {ReservationStatusCancelled, ReservationStatusCompleted},
}

func ParseReservationStatus(value string) (ReservationStatus, bool) {
	s := ReservationStatus(value)
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusCompleted:
		return s, true
	}
	return "", false
}

func (s ReservationStatus) Occupies() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCancelled || s == ReservationStatusCompleted
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

type Reservation struct {
	Base
	Code          string            `db:"code"`
	GuestID       uuid.UUID         `db:"guest_id"`
	RoomID        uuid.UUID         `db:"room_id"`
	CheckIn       time.Time         `db:"check_in"`
	CheckOut      time.Time         `db:"check_out"`
	PartySize     int               `db:"party_size"`
	TotalPrice    Money             `db:"total_price_cents"`
	Status        ReservationStatus `db:"status"`
	PaymentMethod *PaymentMethod    `db:"payment_method"`
	Notes         *string           `db:"notes"`
	VisitCredited bool              `db:"visit_credited"`
	Version       int64             `db:"version"`
}

func (r *Reservation) Stay() daterange.Range {
	return daterange.Range{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}
