package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Fatal("expected password to match")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password matched")
	}
}

func TestValidateStructMessages(t *testing.T) {
	type payload struct {
		Email     string `validate:"required,email"`
		PartySize int    `validate:"gte=1"`
	}
	errs := ValidateStruct(payload{Email: "nope", PartySize: 0})
	if errs["Email"] != "Invalid email format" {
		t.Fatalf("Email error = %q", errs["Email"])
	}
	if errs["PartySize"] != "Must be at least 1" {
		t.Fatalf("PartySize error = %q", errs["PartySize"])
	}
	formatted := FormatValidationErrors(errs)
	if !strings.HasPrefix(formatted, "Email:") {
		t.Fatalf("FormatValidationErrors should be sorted, got %q", formatted)
	}
}

func TestParseIntFallsBack(t *testing.T) {
	if got := ParseInt("", 10); got != 10 {
		t.Fatalf("got %d", got)
	}
	if got := ParseInt("-2", 10); got != 10 {
		t.Fatalf("got %d", got)
	}
	if got := ParseInt("3", 10); got != 3 {
		t.Fatalf("got %d", got)
	}
}

func TestPagination(t *testing.T) {
	if got := CalculateTotalPages(21, 10); got != 3 {
		t.Fatalf("total pages = %d", got)
	}
	if got := CalculateOffset(3, 10); got != 20 {
		t.Fatalf("offset = %d", got)
	}
}

func TestResponseEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseConflict(rec, "Room unavailable", map[string]string{"reason": "room_unavailable"})

	if rec.Code != http.StatusConflict || rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	var body struct {
		Status bool              `json:"status"`
		Errors map[string]string `json:"errors"`
		Data   any               `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status || body.Errors["reason"] != "room_unavailable" || body.Data != nil {
		t.Fatalf("body = %+v", body)
	}
}
