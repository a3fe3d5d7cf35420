// Package notify delivers reservation confirmations to guests.
package notify

import (
	"context"
	"time"

	"hostal-booking/internal/data/entity"
)

// Confirmation carries what the guest needs to recognise the booking.
type Confirmation struct {
	GuestEmail      string
	GuestName       string
	Code            string
	RoomDescription string
	CheckIn         time.Time
	CheckOut        time.Time
	Total           entity.Money
}

type Notifier interface {
	SendConfirmation(ctx context.Context, c Confirmation) error
}
