package response

import (
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/pkg/daterange"
)

type ReservationResponse struct {
	ID            string                   `json:"id"`
	Code          string                   `json:"code"`
	GuestID       string                   `json:"guest_id"`
	RoomID        string                   `json:"room_id"`
	CheckIn       string                   `json:"check_in"`
	CheckOut      string                   `json:"check_out"`
	Nights        int                      `json:"nights"`
	PartySize     int                      `json:"party_size"`
	TotalPrice    entity.Money             `json:"total_price"`
	Status        entity.ReservationStatus `json:"status"`
	PaymentMethod *entity.PaymentMethod    `json:"payment_method,omitempty"`
	Notes         *string                  `json:"notes,omitempty"`
	Version       int64                    `json:"version"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`

	Guest *GuestResponse `json:"guest,omitempty"`
	Room  *RoomResponse  `json:"room,omitempty"`
}

func ReservationToResponse(res *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            res.ID.String(),
		Code:          res.Code,
		GuestID:       res.GuestID.String(),
		RoomID:        res.RoomID.String(),
		CheckIn:       res.CheckIn.Format(daterange.DateLayout),
		CheckOut:      res.CheckOut.Format(daterange.DateLayout),
		Nights:        res.Stay().Nights(),
		PartySize:     res.PartySize,
		TotalPrice:    res.TotalPrice,
		Status:        res.Status,
		PaymentMethod: res.PaymentMethod,
		Notes:         res.Notes,
		Version:       res.Version,
		CreatedAt:     res.CreatedAt,
		UpdatedAt:     res.UpdatedAt,
	}
}
