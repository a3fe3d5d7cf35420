package usecase

import (
	"context"
	"testing"
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/dto/request"

	"github.com/google/uuid"
)

func TestRegisterGuestClaimsWalkInRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", 2, 2000)
	id := f.mustBook(t, room, jane, "2024-12-01", "2024-12-03")
	res, _ := f.svc.Reservation.GetReservation(ctx, id)

	auth, err := f.svc.Auth.RegisterGuest(ctx, &request.RegisterGuestRequest{
		FullName: "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "correct-horse",
	}, ClientInfo{UserAgent: "test", IPAddress: "127.0.0.1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if auth.SubjectID != res.GuestID || auth.Kind != entity.SubjectGuest {
		t.Fatalf("register bound to %s (%s), want walk-in guest %s", auth.SubjectID, auth.Kind, res.GuestID)
	}

	guest, _ := f.svc.Guest.GetGuest(ctx, res.GuestID)
	if !guest.HasAccount || guest.Phone == "" {
		t.Fatalf("guest after register = %+v", guest)
	}

	_, err = f.svc.Auth.RegisterGuest(ctx, &request.RegisterGuestRequest{
		FullName: "Someone Else",
		Email:    "jane@example.com",
		Password: "another-pass",
	}, ClientInfo{})
	wantErr(t, err, ErrEmailTaken)
}

func TestGuestLoginAndLogout(t *testing.T) {
	f := newFixture(t)
	// the store checks expiry against the wall clock
	pinClock(t, time.Now())
	ctx := context.Background()
	if _, err := f.svc.Auth.RegisterGuest(ctx, &request.RegisterGuestRequest{
		FullName: "Ana Ruiz",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	}, ClientInfo{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := f.svc.Auth.LoginGuest(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "wrong-pass"}, ClientInfo{})
	wantErr(t, err, ErrUnauthorized)
	_, err = f.svc.Auth.LoginGuest(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"}, ClientInfo{})
	wantErr(t, err, ErrUnauthorized)

	auth, err := f.svc.Auth.LoginGuest(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"}, ClientInfo{})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	token := uuid.MustParse(auth.Token)
	session, err := f.store.Repository().Session.FindValidSession(ctx, token)
	if err != nil || session == nil {
		t.Fatalf("session not stored: %v", err)
	}

	if err := f.svc.Auth.Logout(ctx, auth.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	session, _ = f.store.Repository().Session.FindValidSession(ctx, token)
	if session != nil {
		t.Fatal("session still valid after logout")
	}

	wantErr(t, f.svc.Auth.Logout(ctx, "not-a-token"), ErrValidation)
}

func TestEnsureAdminAndStaff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.svc.Auth.EnsureAdmin(ctx, "admin@hostal.test", "admin-pass"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if err := f.svc.Auth.EnsureAdmin(ctx, "other@hostal.test", "admin-pass"); err != nil {
		t.Fatalf("EnsureAdmin again: %v", err)
	}
	if n, _ := f.store.Repository().User.CountAll(ctx); n != 1 {
		t.Fatalf("staff count = %d, want 1", n)
	}

	admin, err := f.svc.Auth.LoginStaff(ctx, &request.LoginRequest{Email: "admin@hostal.test", Password: "admin-pass"}, ClientInfo{})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if admin.Role != entity.RoleAdmin || admin.Kind != entity.SubjectStaff {
		t.Fatalf("admin session = %+v", admin)
	}

	staff, err := f.svc.Auth.CreateStaff(ctx, &request.CreateStaffRequest{
		FullName: "Front Desk",
		Email:    "desk@hostal.test",
		Password: "desk-pass-1",
		Role:     "staff",
	})
	if err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	got, err := f.svc.Auth.GetStaff(ctx, uuid.MustParse(staff.ID))
	if err != nil || got.Role != entity.RoleStaff || !got.IsActive {
		t.Fatalf("GetStaff = %+v, %v", got, err)
	}

	_, err = f.svc.Auth.CreateStaff(ctx, &request.CreateStaffRequest{
		FullName: "Front Desk 2",
		Email:    "desk@hostal.test",
		Password: "desk-pass-2",
		Role:     "staff",
	})
	wantErr(t, err, ErrEmailTaken)

	_, err = f.svc.Auth.LoginStaff(ctx, &request.LoginRequest{Email: "desk@hostal.test", Password: "nope-nope"}, ClientInfo{})
	wantErr(t, err, ErrUnauthorized)
}
