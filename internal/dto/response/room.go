package response

import (
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/pkg/daterange"
)

type RoomResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	Type        entity.RoomType `json:"type"`
	Capacity    int             `json:"capacity"`
	NightlyRate entity.Money    `json:"nightly_rate"`
	Amenities   []string        `json:"amenities"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	amenities := room.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return RoomResponse{
		ID:          room.ID.String(),
		Number:      room.Number,
		Type:        room.Type,
		Capacity:    room.Capacity,
		NightlyRate: room.NightlyRate,
		Amenities:   amenities,
		Description: room.Description,
		CreatedAt:   room.CreatedAt,
	}
}

type NightRate struct {
	Date string       `json:"date"`
	Rate entity.Money `json:"rate"`
}

func RatesToResponse(rates []entity.RoomRate) []NightRate {
	out := make([]NightRate, 0, len(rates))
	for _, rate := range rates {
		out = append(out, NightRate{Date: rate.Date.Format(daterange.DateLayout), Rate: rate.Rate})
	}
	return out
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Available bool   `json:"available"`
}

type OccupiedRange struct {
	CheckIn  string                   `json:"check_in"`
	CheckOut string                   `json:"check_out"`
	Status   entity.ReservationStatus `json:"status"`
}

type CalendarResponse struct {
	RoomID   string          `json:"room_id"`
	From     string          `json:"from"`
	To       string          `json:"to"`
	Occupied []OccupiedRange `json:"occupied"`
}

type QuoteResponse struct {
	RoomID      string       `json:"room_id"`
	CheckIn     string       `json:"check_in"`
	CheckOut    string       `json:"check_out"`
	Nights      int          `json:"nights"`
	NightlyRate entity.Money `json:"nightly_rate"`
	Total       entity.Money `json:"total"`
	Breakdown   []NightRate  `json:"breakdown"`
}
