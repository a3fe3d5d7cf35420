package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/repository"
	"hostal-booking/pkg/daterange"

	"github.com/google/uuid"
)

func newReservation(roomID uuid.UUID, code, in, out string, status entity.ReservationStatus) *entity.Reservation {
	stay, _ := daterange.Parse(in, out)
	now := time.Now()
	return &entity.Reservation{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Code:      code,
		GuestID:   uuid.New(),
		RoomID:    roomID,
		CheckIn:   stay.CheckIn,
		CheckOut:  stay.CheckOut,
		PartySize: 1,
		Status:    status,
		Version:   1,
	}
}

func TestReservationExclusion(t *testing.T) {
	ctx := context.Background()
	repo := New().Repository()
	room := uuid.New()

	if err := repo.Reservation.Create(ctx, newReservation(room, "HDT-202412-0001", "2024-12-01", "2024-12-03", entity.ReservationStatusPending)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := repo.Reservation.Create(ctx, newReservation(room, "HDT-202412-0002", "2024-12-02", "2024-12-04", entity.ReservationStatusPending))
	if !errors.Is(err, repository.ErrOverlap) {
		t.Fatalf("overlapping create: got %v, want ErrOverlap", err)
	}
	if err := repo.Reservation.Create(ctx, newReservation(room, "HDT-202412-0003", "2024-12-03", "2024-12-05", entity.ReservationStatusPending)); err != nil {
		t.Fatalf("back-to-back create: %v", err)
	}
	if err := repo.Reservation.Create(ctx, newReservation(room, "hdt-202412-0003", "2024-12-20", "2024-12-21", entity.ReservationStatusPending)); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate code: got %v", err)
	}
}

func TestVersionedUpdate(t *testing.T) {
	ctx := context.Background()
	repo := New().Repository()
	res := newReservation(uuid.New(), "HDT-202412-0001", "2024-12-01", "2024-12-03", entity.ReservationStatusPending)
	if err := repo.Reservation.Create(ctx, res); err != nil {
		t.Fatal(err)
	}

	res.Status = entity.ReservationStatusConfirmed
	if err := repo.Reservation.UpdateStatus(ctx, res, 1); err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Version != 2 {
		t.Fatalf("version = %d, want 2", res.Version)
	}

	res.Status = entity.ReservationStatusCancelled
	if err := repo.Reservation.UpdateStatus(ctx, res, 1); !errors.Is(err, repository.ErrVersionConflict) {
		t.Fatalf("stale update: got %v", err)
	}

	stored, _ := repo.Reservation.FindByID(ctx, res.ID)
	if stored.Status != entity.ReservationStatusConfirmed {
		t.Fatalf("stale update leaked, status = %s", stored.Status)
	}
}

func TestFailedTransactionRestoresState(t *testing.T) {
	ctx := context.Background()
	repo := New().Repository()
	boom := errors.New("boom")

	err := repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		guest := &entity.Guest{Base: entity.Base{ID: uuid.New()}, FullName: "Temp"}
		if err := tx.Guest.Create(ctx, guest); err != nil {
			return err
		}
		if _, err := tx.Code.Next(ctx, "202412"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}

	if n, _ := repo.Guest.CountAll(ctx); n != 0 {
		t.Fatalf("guest survived rollback, count = %d", n)
	}
	if seq, _ := repo.Code.Next(ctx, "202412"); seq != 1 {
		t.Fatalf("counter survived rollback, next = %d", seq)
	}
}

func TestReadsWaitForRunningTransaction(t *testing.T) {
	ctx := context.Background()
	repo := New().Repository()
	boom := errors.New("boom")

	started := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
			guest := &entity.Guest{Base: entity.Base{ID: uuid.New()}, FullName: "Temp"}
			if err := tx.Guest.Create(ctx, guest); err != nil {
				return err
			}
			close(started)
			<-release
			return boom
		})
	}()
	<-started

	counted := make(chan int64, 1)
	go func() {
		n, _ := repo.Guest.CountAll(ctx)
		counted <- n
	}()

	select {
	case n := <-counted:
		t.Fatalf("read returned %d while the transaction was open", n)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	if err := <-txDone; !errors.Is(err, boom) {
		t.Fatalf("transaction: %v", err)
	}
	if n := <-counted; n != 0 {
		t.Fatalf("read saw %d rolled back guests", n)
	}
}

func TestPhoneSuffixAndEmailLookup(t *testing.T) {
	ctx := context.Background()
	repo := New().Repository()
	now := time.Now()

	for i, g := range []entity.Guest{
		{FullName: "Jane Doe", Email: "Jane@Example.com", PhoneDigits: "51987654321"},
		{FullName: "Jane Again", Email: "jane@example.com", PhoneDigits: "51911112222"},
	} {
		g.ID = uuid.New()
		g.CreatedAt = now.Add(time.Duration(i) * time.Second)
		if err := repo.Guest.Create(ctx, &g); err != nil {
			t.Fatal(err)
		}
	}

	byEmail, _ := repo.Guest.FindByEmail(ctx, "JANE@example.COM")
	if len(byEmail) != 2 || byEmail[0].FullName != "Jane Doe" {
		t.Fatalf("email lookup = %v", byEmail)
	}
	byPhone, _ := repo.Guest.FindByPhoneDigits(ctx, "654321")
	if len(byPhone) != 1 || byPhone[0].FullName != "Jane Doe" {
		t.Fatalf("phone lookup = %v", byPhone)
	}
}
