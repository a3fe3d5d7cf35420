package entity

type StaffRole string

const (
	RoleStaff StaffRole = "staff"
	RoleAdmin StaffRole = "admin"
)

// StaffUser is a back-office account.
type StaffUser struct {
	Base
	FullName     string    `db:"full_name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	Role         StaffRole `db:"role"`
	IsActive     bool      `db:"is_active"`
}
