// Package events publishes reservation lifecycle events.
package events

import (
	"context"
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/pkg/daterange"
)

const (
	TypeReservationCreated       = "reservation.created"
	TypeReservationStatusChanged = "reservation.status_changed"
	TypeReservationRescheduled   = "reservation.rescheduled"
)

type Event struct {
	Type           string                   `json:"type"`
	ReservationID  string                   `json:"reservation_id"`
	Code           string                   `json:"code"`
	RoomID         string                   `json:"room_id"`
	GuestID        string                   `json:"guest_id"`
	Status         entity.ReservationStatus `json:"status"`
	PreviousStatus entity.ReservationStatus `json:"previous_status,omitempty"`
	CheckIn        string                   `json:"check_in"`
	CheckOut       string                   `json:"check_out"`
	TotalPrice     entity.Money             `json:"total_price"`
	Version        int64                    `json:"version"`
	OccurredAt     time.Time                `json:"occurred_at"`
}

func NewReservationEvent(eventType string, res *entity.Reservation, previous entity.ReservationStatus, at time.Time) Event {
	return Event{
		Type:           eventType,
		ReservationID:  res.ID.String(),
		Code:           res.Code,
		RoomID:         res.RoomID.String(),
		GuestID:        res.GuestID.String(),
		Status:         res.Status,
		PreviousStatus: previous,
		CheckIn:        res.CheckIn.Format(daterange.DateLayout),
		CheckOut:       res.CheckOut.Format(daterange.DateLayout),
		TotalPrice:     res.TotalPrice,
		Version:        res.Version,
		OccurredAt:     at.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
