package request

import "hostal-booking/internal/data/entity"

type RoomRequest struct {
	Number      string       `json:"number" validate:"required,max=20"`
	Type        string       `json:"type" validate:"required,oneof=single double triple family"`
	Capacity    int          `json:"capacity" validate:"gte=1,lte=20"`
	NightlyRate entity.Money `json:"nightly_rate" validate:"gt=0"`
	Amenities   []string     `json:"amenities" validate:"omitempty,dive,required,max=50"`
	Description string       `json:"description" validate:"max=500"`
}

type RoomListRequest struct {
	Type        string `validate:"omitempty,oneof=single double triple family"`
	MinCapacity int    `validate:"gte=0"`
}

type AvailableRoomsRequest struct {
	CheckIn   string `validate:"required,datetime=2006-01-02"`
	CheckOut  string `validate:"required,datetime=2006-01-02"`
	PartySize int    `validate:"gte=1"`
}

// SetRatesRequest applies Rate to every night of [From, To).
type SetRatesRequest struct {
	From string       `json:"from" validate:"required,datetime=2006-01-02"`
	To   string       `json:"to" validate:"required,datetime=2006-01-02"`
	Rate entity.Money `json:"rate" validate:"gt=0"`
}

type DateRangeRequest struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}
