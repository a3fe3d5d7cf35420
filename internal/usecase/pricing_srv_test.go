package usecase

import (
	"context"
	"testing"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/dto/request"

	"github.com/google/uuid"
)

func TestPriceNightsAppliesOverrides(t *testing.T) {
	room := &entity.Room{Base: entity.Base{ID: uuid.New()}, NightlyRate: 2000}
	r := stay(t, "2024-12-30", "2025-01-02")
	overrides := []entity.RoomRate{{RoomID: room.ID, Date: stay(t, "2024-12-31", "2025-01-01").CheckIn, Rate: 5000}}

	q := priceNights(room, r, overrides)
	if q.nights != 3 || q.total != 9000 {
		t.Fatalf("quote = %d nights, total %s; want 3 nights, 90.00", q.nights, q.total)
	}
	if q.breakdown[1].Rate != 5000 || q.breakdown[2].Rate != 2000 {
		t.Fatalf("breakdown = %+v", q.breakdown)
	}
}

func TestPriceIsAdditiveAcrossSplitStays(t *testing.T) {
	room := &entity.Room{Base: entity.Base{ID: uuid.New()}, NightlyRate: 1750}
	overrides := []entity.RoomRate{{RoomID: room.ID, Date: stay(t, "2024-12-04", "2024-12-05").CheckIn, Rate: 9900}}

	whole := priceNights(room, stay(t, "2024-12-01", "2024-12-08"), overrides).total
	first := priceNights(room, stay(t, "2024-12-01", "2024-12-04"), overrides).total
	second := priceNights(room, stay(t, "2024-12-04", "2024-12-08"), overrides).total
	if whole != first+second {
		t.Fatalf("whole %s != %s + %s", whole, first, second)
	}
}

func TestQuoteUsesStoredRates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", 2, 2000)

	if _, err := f.svc.Room.SetRates(ctx, room, &request.SetRatesRequest{From: "2024-12-24", To: "2024-12-26", Rate: 3500}); err != nil {
		t.Fatalf("SetRates: %v", err)
	}

	q, err := f.svc.Pricing.Quote(ctx, room, "2024-12-23", "2024-12-27")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Nights != 4 || q.Total != 11000 {
		t.Fatalf("quote = %d nights, %s", q.Nights, q.Total)
	}

	total, err := f.svc.Pricing.ComputeTotal(ctx, uuid.MustParse(room), stay(t, "2024-12-01", "2024-12-03"))
	if err != nil || total != 4000 {
		t.Fatalf("ComputeTotal = %s, %v", total, err)
	}

	cleared, err := f.svc.Room.ClearRates(ctx, room, &request.DateRangeRequest{From: "2024-12-01", To: "2024-12-31"})
	if err != nil || cleared != 2 {
		t.Fatalf("ClearRates = %d, %v", cleared, err)
	}
	q, _ = f.svc.Pricing.Quote(ctx, room, "2024-12-23", "2024-12-27")
	if q.Total != 8000 {
		t.Fatalf("quote after clearing = %s", q.Total)
	}

	_, err = f.svc.Pricing.Quote(ctx, uuid.NewString(), "2024-12-23", "2024-12-27")
	wantErr(t, err, ErrNotFound)
}
