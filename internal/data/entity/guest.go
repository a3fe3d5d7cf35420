package entity

type Guest struct {
	Base
	FullName     string  `db:"full_name"`
	Email        string  `db:"email"`
	Phone        string  `db:"phone"`
	PhoneDigits  string  `db:"phone_digits"`
	VisitCount   int     `db:"visit_count"`
	PasswordHash *string `db:"password_hash"`
}

// NormalizePhone keeps only the ASCII digits 0-9.
func NormalizePhone(phone string) string {
	digits := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if c := phone[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	return string(digits)
}
