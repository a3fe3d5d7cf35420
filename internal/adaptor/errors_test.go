package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hostal-booking/internal/usecase"

	"go.uber.org/zap"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func TestWriteServiceErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{"validation", &usecase.Error{Kind: usecase.KindValidation, Reason: "invalid_dates", Message: "bad dates"}, http.StatusBadRequest, "invalid_dates"},
		{"unavailable", &usecase.Error{Kind: usecase.KindConflict, Reason: "room_unavailable", Message: "taken"}, http.StatusConflict, "room_unavailable"},
		{"transition", &usecase.Error{Kind: usecase.KindConflict, Reason: "invalid_transition", Message: "no"}, http.StatusConflict, "invalid_transition"},
		{"not found", &usecase.Error{Kind: usecase.KindNotFound, Reason: "room_not_found", Message: "missing"}, http.StatusNotFound, ""},
		{"unauthorized", &usecase.Error{Kind: usecase.KindUnauthorized, Message: "who"}, http.StatusUnauthorized, ""},
		{"forbidden", &usecase.Error{Kind: usecase.KindForbidden, Message: "no"}, http.StatusForbidden, ""},
		{"dependency", &usecase.Error{Kind: usecase.KindDependency, Message: "db", Err: errors.New("conn refused")}, http.StatusServiceUnavailable, ""},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, zap.NewNop(), tc.err, "test")

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var body envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status {
				t.Fatal("error response has status true")
			}
			if tc.reason != "" && body.Errors["reason"] != tc.reason {
				t.Fatalf("reason = %q, want %q", body.Errors["reason"], tc.reason)
			}
		})
	}
}

func TestWriteServiceErrorKeepsFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, zap.NewNop(), &usecase.Error{
		Kind:    usecase.KindValidation,
		Reason:  "invalid_request",
		Message: "validation failed",
		Fields:  map[string]string{"PartySize": "PartySize must be greater than or equal to 1"},
	}, "test")

	var body envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Errors["PartySize"] == "" {
		t.Fatalf("field errors dropped: %+v", body.Errors)
	}
}

func TestClientInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	req.Header.Set("User-Agent", "front-desk/1.0")

	info := clientInfo(req)
	if info.IPAddress != "10.0.0.7" || info.UserAgent != "front-desk/1.0" {
		t.Fatalf("clientInfo = %+v", info)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientInfo(req).IPAddress; got != "203.0.113.9" {
		t.Fatalf("forwarded ip = %s", got)
	}
}
