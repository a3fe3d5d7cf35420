package daterange

import (
	"testing"
	"time"
)

func mustParse(t *testing.T, in, out string) Range {
	t.Helper()
	r, err := Parse(in, out)
	if err != nil {
		t.Fatalf("Parse(%s, %s): %v", in, out, err)
	}
	return r
}

func TestNewRejectsEmptyAndInvertedRanges(t *testing.T) {
	d := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	if _, err := New(d, d); err != ErrInvalidRange {
		t.Fatalf("zero-length range: got %v, want ErrInvalidRange", err)
	}
	if _, err := New(d, d.AddDate(0, 0, -1)); err != ErrInvalidRange {
		t.Fatalf("inverted range: got %v, want ErrInvalidRange", err)
	}
	if _, err := New(time.Time{}, d); err != ErrMissingDate {
		t.Fatalf("missing check-in: got %v, want ErrMissingDate", err)
	}
}

func TestNewTruncatesToDay(t *testing.T) {
	in := time.Date(2024, 12, 1, 15, 30, 0, 0, time.UTC)
	out := time.Date(2024, 12, 3, 9, 0, 0, 0, time.UTC)

	r, err := New(in, out)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.CheckIn.Hour() != 0 || r.CheckOut.Hour() != 0 {
		t.Fatalf("expected midnight bounds, got %s", r)
	}
	if got := r.Nights(); got != 2 {
		t.Fatalf("Nights = %d, want 2", got)
	}
}

func TestSameDayTimesCollapseToInvalid(t *testing.T) {
	in := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)
	out := time.Date(2024, 12, 1, 20, 0, 0, 0, time.UTC)

	if _, err := New(in, out); err != ErrInvalidRange {
		t.Fatalf("same calendar day: got %v, want ErrInvalidRange", err)
	}
}

func TestNightsRoundsPartialDayUp(t *testing.T) {
	r := Range{
		CheckIn:  time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 12, 2, 6, 0, 0, 0, time.UTC),
	}
	if got := r.Nights(); got != 2 {
		t.Fatalf("Nights = %d, want 2", got)
	}
}

func TestOverlaps(t *testing.T) {
	base := mustParse(t, "2024-12-01", "2024-12-03")

	cases := []struct {
		name     string
		in, out  string
		overlaps bool
	}{
		{"inside", "2024-12-01", "2024-12-02", true},
		{"straddles checkout", "2024-12-02", "2024-12-04", true},
		{"straddles checkin", "2024-11-29", "2024-12-02", true},
		{"covers", "2024-11-30", "2024-12-05", true},
		{"back to back after", "2024-12-03", "2024-12-05", false},
		{"back to back before", "2024-11-28", "2024-12-01", false},
		{"disjoint", "2024-12-10", "2024-12-12", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other := mustParse(t, tc.in, tc.out)
			if got := base.Overlaps(other); got != tc.overlaps {
				t.Fatalf("Overlaps = %v, want %v", got, tc.overlaps)
			}
			if got := other.Overlaps(base); got != tc.overlaps {
				t.Fatalf("Overlaps is not symmetric for %s", other)
			}
		})
	}
}

func TestDatesAndContains(t *testing.T) {
	r := mustParse(t, "2024-12-30", "2025-01-02")

	dates := r.Dates()
	if len(dates) != 3 {
		t.Fatalf("len(Dates) = %d, want 3", len(dates))
	}
	if dates[2].Format(DateLayout) != "2025-01-01" {
		t.Fatalf("last night = %s", dates[2].Format(DateLayout))
	}
	if r.Contains(r.CheckOut) {
		t.Fatal("check-out day must not be part of the stay")
	}
	if !r.Contains(r.CheckIn.Add(13 * time.Hour)) {
		t.Fatal("check-in day must be part of the stay")
	}
}

func TestParseRejectsBadFormat(t *testing.T) {
	if _, err := Parse("12/01/2024", "2024-12-03"); err == nil {
		t.Fatal("expected error for non ISO date")
	}
	if _, err := Parse("", "2024-12-03"); err != ErrMissingDate {
		t.Fatalf("got %v, want ErrMissingDate", err)
	}
}
