package response

import (
	"time"

	"hostal-booking/internal/data/entity"
)

type AuthResponse struct {
	SubjectID string             `json:"subject_id"`
	Kind      entity.SubjectKind `json:"kind"`
	Role      entity.StaffRole   `json:"role,omitempty"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	Email     string             `json:"email"`
	FullName  string             `json:"full_name"`
}

type StaffResponse struct {
	ID        string           `json:"id"`
	FullName  string           `json:"full_name"`
	Email     string           `json:"email"`
	Role      entity.StaffRole `json:"role"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
}

func StaffToResponse(user *entity.StaffUser) StaffResponse {
	return StaffResponse{
		ID:        user.ID.String(),
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func SessionToResponse(session *entity.Session, email, fullName string, role entity.StaffRole) AuthResponse {
	return AuthResponse{
		SubjectID: session.SubjectID.String(),
		Kind:      session.SubjectKind,
		Role:      role,
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
		Email:     email,
		FullName:  fullName,
	}
}
