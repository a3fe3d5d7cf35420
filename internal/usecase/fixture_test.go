package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/memstore"
	"hostal-booking/internal/dto/request"
	"hostal-booking/internal/events"
	"hostal-booking/internal/notify"
	"hostal-booking/pkg/utils"

	"go.uber.org/zap"
)

type fakeNotifier struct {
	err  error
	sent chan notify.Confirmation
}

func (n *fakeNotifier) SendConfirmation(_ context.Context, c notify.Confirmation) error {
	select {
	case n.sent <- c:
	default:
	}
	return n.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store     *memstore.Store
	svc       *Service
	notifier  *fakeNotifier
	publisher *fakePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pinClock(t, time.Date(2024, 11, 20, 10, 0, 0, 0, time.UTC))

	store := memstore.New()
	notifier := &fakeNotifier{sent: make(chan notify.Confirmation, 16)}
	publisher := &fakePublisher{}
	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}

	return &fixture{
		store:     store,
		svc:       NewService(store.Repository(), config, notifier, publisher, zap.NewNop()),
		notifier:  notifier,
		publisher: publisher,
	}
}

func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func (f *fixture) room(t *testing.T, number string, capacity int, rate entity.Money) string {
	t.Helper()
	room, err := f.svc.Room.CreateRoom(context.Background(), &request.RoomRequest{
		Number:      number,
		Type:        string(entity.RoomTypeDouble),
		Capacity:    capacity,
		NightlyRate: rate,
	})
	if err != nil {
		t.Fatalf("create room %s: %v", number, err)
	}
	return room.ID
}

func (f *fixture) book(roomID string, guest *request.GuestRequest, checkIn, checkOut string) (string, error) {
	res, err := f.svc.Reservation.CreateReservation(context.Background(), &request.CreateReservationRequest{
		Guest:     guest,
		RoomID:    roomID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		PartySize: 1,
	})
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

func (f *fixture) mustBook(t *testing.T, roomID string, guest *request.GuestRequest, checkIn, checkOut string) string {
	t.Helper()
	id, err := f.book(roomID, guest, checkIn, checkOut)
	if err != nil {
		t.Fatalf("book %s %s..%s: %v", roomID, checkIn, checkOut, err)
	}
	return id
}

func (f *fixture) transition(t *testing.T, id, status string) {
	t.Helper()
	if _, err := f.svc.Reservation.TransitionStatus(context.Background(), id, &request.UpdateStatusRequest{Status: status}); err != nil {
		t.Fatalf("transition %s to %s: %v", id, status, err)
	}
}

var jane = &request.GuestRequest{FullName: "Jane Doe", Email: "jane@example.com", Phone: "+51 987 654 321"}

func wantErr(t *testing.T, err error, target *Error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("got error %v, want kind=%s reason=%q", err, target.Kind, target.Reason)
	}
}
