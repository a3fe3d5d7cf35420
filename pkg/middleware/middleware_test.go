package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hostal-booking/internal/data/memstore"
	"hostal-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestAuthSessionRejectsBadTokens(t *testing.T) {
	repo := memstore.New().Repository()
	h := AuthSession(repo.Session, repo.User, zap.NewNop())(http.HandlerFunc(okHandler))

	for name, header := range map[string]string{
		"missing":    "",
		"not bearer": "Basic abc",
		"not a uuid": "Bearer abc",
		"unknown":    "Bearer " + uuid.NewString(),
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d", rec.Code)
			}
		})
	}
}

func TestOptionalSessionLetsAnonymousThrough(t *testing.T) {
	repo := memstore.New().Repository()
	var sawActor bool
	h := OptionalSession(repo.Session, repo.User, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawActor = utils.GetActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reservations", nil))
	if rec.Code != http.StatusOK || sawActor {
		t.Fatalf("status = %d, actor = %v", rec.Code, sawActor)
	}
}

func TestRoleGuards(t *testing.T) {
	guest := utils.Actor{ID: uuid.New(), Kind: "guest"}
	staff := utils.Actor{ID: uuid.New(), Kind: "staff", Role: "staff"}
	admin := utils.Actor{ID: uuid.New(), Kind: "staff", Role: "admin"}

	cases := []struct {
		name  string
		guard func(*zap.Logger) func(http.Handler) http.Handler
		actor *utils.Actor
		want  int
	}{
		{"staff no actor", Staff, nil, http.StatusUnauthorized},
		{"staff guest", Staff, &guest, http.StatusForbidden},
		{"staff staff", Staff, &staff, http.StatusOK},
		{"admin staff", Admin, &staff, http.StatusForbidden},
		{"admin admin", Admin, &admin, http.StatusOK},
		{"guest staff", Guest, &staff, http.StatusForbidden},
		{"guest guest", Guest, &guest, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.actor != nil {
				req = req.WithContext(utils.SetActorContext(req.Context(), *tc.actor))
			}
			rec := httptest.NewRecorder()
			tc.guard(zap.NewNop())(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	CORS()(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/rooms", nil))
	if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight = %d %v", rec.Code, rec.Header())
	}
}

func TestRecoverReturns500(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
