package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/dto/request"
	"hostal-booking/internal/events"

	"github.com/google/uuid"
)

func TestRoom101Scenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", 2, 2000)

	res, err := f.svc.Reservation.CreateReservation(ctx, &request.CreateReservationRequest{
		Guest:     jane,
		RoomID:    room,
		CheckIn:   "2024-12-01",
		CheckOut:  "2024-12-03",
		PartySize: 2,
	})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	if res.Nights != 2 || res.TotalPrice != 4000 {
		t.Fatalf("A priced %d nights at %s, want 2 nights at 40.00", res.Nights, res.TotalPrice)
	}
	if res.Status != entity.ReservationStatusPending {
		t.Fatalf("new reservation status = %s", res.Status)
	}
	if res.Guest == nil || res.Room == nil {
		t.Fatal("create should embed guest and room")
	}
	f.transition(t, res.ID, "confirmed")

	other := &request.GuestRequest{FullName: "John Roe", Phone: "555-0101"}
	_, err = f.book(room, other, "2024-12-02", "2024-12-04")
	wantErr(t, err, ErrRoomUnavailable)

	if _, err := f.book(room, other, "2024-12-03", "2024-12-05"); err != nil {
		t.Fatalf("back-to-back stay rejected: %v", err)
	}
}

func TestCreateReservationCodeFormat(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", 2, 2000)

	first, err := f.svc.Reservation.CreateReservation(context.Background(), &request.CreateReservationRequest{
		Guest: jane, RoomID: room, CheckIn: "2024-12-01", CheckOut: "2024-12-02", PartySize: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := f.svc.Reservation.CreateReservation(context.Background(), &request.CreateReservationRequest{
		Guest: jane, RoomID: room, CheckIn: "2024-12-05", CheckOut: "2024-12-06", PartySize: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.Code != "HDT-202411-0001" || second.Code != "HDT-202411-0002" {
		t.Fatalf("codes = %s, %s", first.Code, second.Code)
	}
	if got := FormatCode("202501", 12345); got != "HDT-202501-12345" {
		t.Fatalf("FormatCode overflow = %s", got)
	}
}

func TestConcurrentCreatesOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", 2, 2000)

	const attempts = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.book(room, jane, "2024-12-01", "2024-12-03")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrRoomUnavailable):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || rejected != attempts-1 {
		t.Fatalf("succeeded=%d rejected=%d", succeeded, rejected)
	}
}

func TestCreateReservationValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", 2, 2000)

	cases := []struct {
		name string
		req  request.CreateReservationRequest
		want *Error
	}{
		{"party too large", request.CreateReservationRequest{Guest: jane, RoomID: room, CheckIn: "2024-12-01", CheckOut: "2024-12-02", PartySize: 3}, ErrValidation},
		{"zero nights", request.CreateReservationRequest{Guest: jane, RoomID: room, CheckIn: "2024-12-01", CheckOut: "2024-12-01", PartySize: 1}, ErrValidation},
		{"inverted", request.CreateReservationRequest{Guest: jane, RoomID: room, CheckIn: "2024-12-03", CheckOut: "2024-12-01", PartySize: 1}, ErrValidation},
		{"no guest", request.CreateReservationRequest{RoomID: room, CheckIn: "2024-12-01", CheckOut: "2024-12-02", PartySize: 1}, ErrValidation},
		{"guest without contact", request.CreateReservationRequest{Guest: &request.GuestRequest{FullName: "Nobody"}, RoomID: room, CheckIn: "2024-12-01", CheckOut: "2024-12-02", PartySize: 1}, ErrValidation},
		{"unknown room", request.CreateReservationRequest{Guest: jane, RoomID: uuid.NewString(), CheckIn: "2024-12-01", CheckOut: "2024-12-02", PartySize: 1}, ErrNotFound},
		{"unknown guest", request.CreateReservationRequest{GuestID: uuid.NewString(), RoomID: room, CheckIn: "2024-12-01", CheckOut: "2024-12-02", PartySize: 1}, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Reservation.CreateReservation(ctx, &tc.req)
			wantErr(t, err, tc.want)
		})
	}

	list, err := f.svc.Reservation.ListReservations(ctx, &request.ReservationListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Pagination.Total != 0 {
		t.Fatalf("rejected requests left %d reservations behind", list.Pagination.Total)
	}
}

func TestVisitCountScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room101 := f.room(t, "101", 2, 2000)
	room102 := f.room(t, "102", 2, 2500)

	id := f.mustBook(t, room101, jane, "2024-12-01", "2024-12-03")
	res, _ := f.svc.Reservation.GetReservation(ctx, id)
	if res.Guest.VisitCount != 0 {
		t.Fatalf("visit count after booking = %d", res.Guest.VisitCount)
	}
	guestID := res.GuestID

	f.transition(t, id, "confirmed")
	f.transition(t, id, "confirmed")
	assertVisits(t, f, guestID, 1)

	unrelated := f.mustBook(t, room102, &request.GuestRequest{FullName: "John Roe", Email: "john@example.com"}, "2024-12-01", "2024-12-02")
	f.transition(t, unrelated, "confirmed")
	f.transition(t, unrelated, "cancelled")
	assertVisits(t, f, guestID, 1)

	f.transition(t, id, "cancelled")
	assertVisits(t, f, guestID, 1)
}

func assertVisits(t *testing.T, f *fixture, guestID string, want int) {
	t.Helper()
	guest, err := f.svc.Guest.GetGuest(context.Background(), guestID)
	if err != nil {
		t.Fatalf("get guest: %v", err)
	}
	if guest.VisitCount != want {
		t.Fatalf("visit count = %d, want %d", guest.VisitCount, want)
	}
}

func TestTransitionRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", 2, 2000)
	id := f.mustBook(t, room, jane, "2024-12-01", "2024-12-03")

	_, err := f.svc.Reservation.TransitionStatus(ctx, id, &request.UpdateStatusRequest{Status: "completed"})
	wantErr(t, err, ErrInvalidTransition)

	f.transition(t, id, "cancelled")
	before, _ := f.svc.Reservation.GetReservation(ctx, id)

	_, err = f.svc.Reservation.TransitionStatus(ctx, id, &request.UpdateStatusRequest{Status: "confirmed"})
	wantErr(t, err, ErrInvalidTransition)

	after, _ := f.svc.Reservation.GetReservation(ctx, id)
	if after.Status != entity.ReservationStatusCancelled || after.Version != before.Version {
		t.Fatalf("rejected transition changed the reservation: %s v%d", after.Status, after.Version)
	}
	if after.Guest.VisitCount != 0 {
		t.Fatalf("rejected confirm credited a visit")
	}

	// cancelled stays free the room
	if _, err := f.book(room, jane, "2024-12-01", "2024-12-03"); err != nil {
		t.Fatalf("room still blocked by cancelled reservation: %v", err)
	}

	_, err = f.svc.Reservation.TransitionStatus(ctx, id, &request.UpdateStatusRequest{Status: "cancelled"})
	wantErr(t, err, ErrInvalidTransition)
	again, _ := f.svc.Reservation.GetReservation(ctx, id)
	if again.Version != before.Version {
		t.Fatalf("repeated cancel bumped version %d -> %d", before.Version, again.Version)
	}

	_, err = f.svc.Reservation.TransitionStatus(ctx, uuid.NewString(), &request.UpdateStatusRequest{Status: "confirmed"})
	wantErr(t, err, ErrNotFound)
	_, err = f.svc.Reservation.TransitionStatus(ctx, id, &request.UpdateStatusRequest{Status: "archived"})
	wantErr(t, err, ErrValidation)
}

func TestTerminalStatusesRejectRepeats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", 2, 2000)
	id := f.mustBook(t, room, jane, "2024-12-01", "2024-12-03")

	f.transition(t, id, "confirmed")
	f.transition(t, id, "confirmed")
	f.transition(t, id, "completed")
	before, _ := f.svc.Reservation.GetReservation(ctx, id)

	for _, status := range []string{"completed", "cancelled", "confirmed", "pending"} {
		_, err := f.svc.Reservation.TransitionStatus(ctx, id, &request.UpdateStatusRequest{Status: status})
		wantErr(t, err, ErrInvalidTransition)
	}

	after, _ := f.svc.Reservation.GetReservation(ctx, id)
	if after.Status != entity.ReservationStatusCompleted || after.Version != before.Version {
		t.Fatalf("completed reservation changed: %s v%d -> v%d", after.Status, before.Version, after.Version)
	}
	if after.Guest.VisitCount != 1 {
		t.Fatalf("visit count = %d, want 1", after.Guest.VisitCount)
	}
}

func TestConfirmSendsNotificationAndSurvivesFailure(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("smtp down")
	room := f.room(t, "101", 2, 2000)
	id := f.mustBook(t, room, jane, "2024-12-01", "2024-12-03")

	res, err := f.svc.Reservation.TransitionStatus(context.Background(), id, &request.UpdateStatusRequest{Status: "confirmed", PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if res.Status != entity.ReservationStatusConfirmed || res.PaymentMethod == nil || *res.PaymentMethod != entity.PaymentMethodCard {
		t.Fatalf("confirm response = %+v", res)
	}

	select {
	case c := <-f.notifier.sent:
		if c.GuestEmail != "jane@example.com" || c.Code != res.Code || c.Total != 4000 {
			t.Fatalf("confirmation = %+v", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no confirmation was attempted")
	}

	stored, _ := f.svc.Reservation.GetReservation(context.Background(), id)
	if stored.Status != entity.ReservationStatusConfirmed {
		t.Fatalf("status after failed notification = %s", stored.Status)
	}

	types := f.publisher.types()
	if len(types) != 2 || types[0] != events.TypeReservationCreated || types[1] != events.TypeReservationStatusChanged {
		t.Fatalf("published events = %v", types)
	}
}

func TestGetByCodeIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	pinClock(t, time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC))
	room := f.room(t, "101", 2, 2000)

	var code string
	for i := 0; i < 7; i++ {
		in := time.Date(2025, 1, 1+2*i, 0, 0, 0, 0, time.UTC)
		res, err := f.svc.Reservation.CreateReservation(context.Background(), &request.CreateReservationRequest{
			Guest:     jane,
			RoomID:    room,
			CheckIn:   in.Format("2006-01-02"),
			CheckOut:  in.AddDate(0, 0, 1).Format("2006-01-02"),
			PartySize: 1,
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		code = res.Code
	}
	if code != "HDT-202412-0007" {
		t.Fatalf("seventh code = %s", code)
	}

	got, err := f.svc.Reservation.GetByCode(context.Background(), "hdt-202412-0007")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if got.Code != code {
		t.Fatalf("found %s", got.Code)
	}

	_, err = f.svc.Reservation.GetByCode(context.Background(), "HDT-202412-9999")
	wantErr(t, err, ErrNotFound)
}

func TestReschedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", 2, 2000)
	a := f.mustBook(t, room, jane, "2024-12-01", "2024-12-03")
	f.mustBook(t, room, jane, "2024-12-03", "2024-12-05")

	_, err := f.svc.Reservation.Reschedule(ctx, a, &request.RescheduleRequest{CheckIn: "2024-12-02", CheckOut: "2024-12-04"})
	wantErr(t, err, ErrRoomUnavailable)

	// overlapping only with itself is fine
	res, err := f.svc.Reservation.Reschedule(ctx, a, &request.RescheduleRequest{CheckIn: "2024-11-30", CheckOut: "2024-12-02"})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if res.CheckIn != "2024-11-30" || res.TotalPrice != 4000 || res.Version != 2 {
		t.Fatalf("rescheduled = %+v", res)
	}

	f.transition(t, a, "cancelled")
	_, err = f.svc.Reservation.Reschedule(ctx, a, &request.RescheduleRequest{CheckIn: "2024-12-10", CheckOut: "2024-12-11"})
	wantErr(t, err, ErrReservationInState)
}

func TestCompleteElapsed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", 2, 2000)
	done := f.mustBook(t, room, jane, "2024-12-01", "2024-12-03")
	pending := f.mustBook(t, room, jane, "2024-12-03", "2024-12-04")
	future := f.mustBook(t, room, jane, "2024-12-10", "2024-12-12")
	f.transition(t, done, "confirmed")
	f.transition(t, future, "confirmed")

	n, err := f.svc.Reservation.CompleteElapsed(ctx, time.Date(2024, 12, 3, 23, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CompleteElapsed: %v", err)
	}
	if n != 1 {
		t.Fatalf("completed %d, want 1", n)
	}

	for id, want := range map[string]entity.ReservationStatus{
		done:    entity.ReservationStatusCompleted,
		pending: entity.ReservationStatusPending,
		future:  entity.ReservationStatusConfirmed,
	} {
		res, _ := f.svc.Reservation.GetReservation(ctx, id)
		if res.Status != want {
			t.Errorf("%s status = %s, want %s", res.Code, res.Status, want)
		}
	}
}

func TestListReservationsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room101 := f.room(t, "101", 2, 2000)
	room102 := f.room(t, "102", 2, 2000)
	a := f.mustBook(t, room101, jane, "2024-12-01", "2024-12-03")
	f.mustBook(t, room102, jane, "2024-12-01", "2024-12-03")
	f.transition(t, a, "confirmed")

	confirmed, err := f.svc.Reservation.ListReservations(ctx, &request.ReservationListRequest{Status: "confirmed"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if confirmed.Pagination.Total != 1 || confirmed.Data[0].ID != a {
		t.Fatalf("confirmed filter = %+v", confirmed.Pagination)
	}

	byRoom, err := f.svc.Reservation.ListReservations(ctx, &request.ReservationListRequest{RoomID: room102})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if byRoom.Pagination.Total != 1 || byRoom.Data[0].RoomID != room102 {
		t.Fatalf("room filter = %+v", byRoom.Pagination)
	}

	res, _ := f.svc.Reservation.GetReservation(ctx, a)
	mine, err := f.svc.Reservation.ListGuestReservations(ctx, res.GuestID, &request.PaginatedRequest{})
	if err != nil {
		t.Fatalf("guest list: %v", err)
	}
	if mine.Pagination.Total != 2 {
		t.Fatalf("guest has %d reservations, want 2", mine.Pagination.Total)
	}
}
