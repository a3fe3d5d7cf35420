package response

import (
	"time"

	"hostal-booking/internal/data/entity"
)

type GuestResponse struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	VisitCount   int       `json:"visit_count"`
	HasAccount   bool      `json:"has_account"`
	RegisteredAt time.Time `json:"registered_at"`
}

func GuestToResponse(guest *entity.Guest) GuestResponse {
	return GuestResponse{
		ID:           guest.ID.String(),
		FullName:     guest.FullName,
		Email:        guest.Email,
		Phone:        guest.Phone,
		VisitCount:   guest.VisitCount,
		HasAccount:   guest.PasswordHash != nil,
		RegisteredAt: guest.CreatedAt,
	}
}
