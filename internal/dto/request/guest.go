package request

// GuestRequest needs an email or a phone; the service enforces the pair.
type GuestRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

type GuestSearchRequest struct {
	Email string `validate:"omitempty,email"`
	Phone string `validate:"omitempty,max=30"`
}
