package request

type CreateReservationRequest struct {
	GuestID   string        `json:"guest_id" validate:"omitempty,uuid"`
	Guest     *GuestRequest `json:"guest,omitempty" validate:"omitempty"`
	RoomID    string        `json:"room_id" validate:"required,uuid"`
	CheckIn   string        `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut  string        `json:"check_out" validate:"required,datetime=2006-01-02"`
	PartySize int           `json:"party_size" validate:"gte=1"`
	Notes     string        `json:"notes" validate:"max=1000"`
}

type UpdateStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=cash card transfer"`
}

type RescheduleRequest struct {
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

type ReservationListRequest struct {
	PaginatedRequest
	Status  string `validate:"omitempty,oneof=pending confirmed cancelled completed"`
	GuestID string `validate:"omitempty,uuid"`
	RoomID  string `validate:"omitempty,uuid"`
	From    string `validate:"omitempty,datetime=2006-01-02"`
	To      string `validate:"omitempty,datetime=2006-01-02"`
}
