package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubjectKind string

const (
	SubjectGuest SubjectKind = "guest"
	SubjectStaff SubjectKind = "staff"
)

type Session struct {
	BaseSimple
	SubjectID   uuid.UUID   `db:"subject_id"`
	SubjectKind SubjectKind `db:"subject_kind"`
	Token       uuid.UUID   `db:"token"`
	UserAgent   *string     `db:"user_agent"`
	IPAddress   *string     `db:"ip_address"`
	ExpiresAt   time.Time   `db:"expires_at"`
	RevokedAt   *time.Time  `db:"revoked_at"`
}
