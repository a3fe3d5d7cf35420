package daterange

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for stay dates.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

var (
	ErrInvalidRange = errors.New("daterange: check-out must be after check-in")
	ErrMissingDate  = errors.New("daterange: check-in and check-out are required")
)

// Range is a half-open interval of whole days [CheckIn, CheckOut).
// Both ends are truncated to midnight UTC.
type Range struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (Range, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Range{}, ErrMissingDate
	}
	r := Range{CheckIn: Truncate(checkIn), CheckOut: Truncate(checkOut)}
	if !r.CheckOut.After(r.CheckIn) {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

// Parse builds a range from two YYYY-MM-DD strings.
func Parse(checkIn, checkOut string) (Range, error) {
	if checkIn == "" || checkOut == "" {
		return Range{}, ErrMissingDate
	}
	in, err := ParseDate(checkIn)
	if err != nil {
		return Range{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return Range{}, err
	}
	return New(in, out)
}

func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("daterange: invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// Truncate drops the time-of-day component, keeping the calendar date of t.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights counts the nights in the stay, rounding a partial day up.
func (r Range) Nights() int {
	d := r.CheckOut.Sub(r.CheckIn)
	if d <= 0 {
		return 0
	}
	n := int(d / day)
	if d%day != 0 {
		n++
	}
	return n
}

// Overlaps reports whether the two half-open ranges share at least one night.
// A check-out on day D does not conflict with a check-in on day D.
func (r Range) Overlaps(other Range) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

func (r Range) Contains(t time.Time) bool {
	t = Truncate(t)
	return !t.Before(r.CheckIn) && t.Before(r.CheckOut)
}

// Dates returns the date of every night in the range.
func (r Range) Dates() []time.Time {
	n := r.Nights()
	dates := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, r.CheckIn.AddDate(0, 0, i))
	}
	return dates
}

func (r Range) String() string {
	return r.CheckIn.Format(DateLayout) + "/" + r.CheckOut.Format(DateLayout)
}
