package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/repository"
	"hostal-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errNoToken       = errors.New("missing authorization token")
	errBadToken      = errors.New("invalid token format. Use: Bearer <token>")
	errNoSession     = errors.New("invalid or expired session")
	errInactiveStaff = errors.New("account is deactivated")
)

// resolveActor turns the bearer token of r into the calling actor.
func resolveActor(
	ctx context.Context,
	r *http.Request,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
) (utils.Actor, string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return utils.Actor{}, "", errNoToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return utils.Actor{}, "", errBadToken
	}
	token := strings.TrimSpace(parts[1])
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return utils.Actor{}, "", errBadToken
	}

	session, err := sessionRepo.FindValidSession(ctx, tokenUUID)
	if err != nil {
		return utils.Actor{}, "", err
	}
	if session == nil {
		return utils.Actor{}, "", errNoSession
	}

	actor := utils.Actor{ID: session.SubjectID, Kind: string(session.SubjectKind)}
	if session.SubjectKind == entity.SubjectStaff {
		user, err := userRepo.FindByID(ctx, session.SubjectID)
		if err != nil {
			return utils.Actor{}, "", err
		}
		if user == nil {
			return utils.Actor{}, "", errNoSession
		}
		if !user.IsActive {
			return utils.Actor{}, "", errInactiveStaff
		}
		actor.Role = string(user.Role)
	}

	return actor, token, nil
}

// AuthSession requires a valid session token and puts the actor in the context.
func AuthSession(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, token, err := resolveActor(r.Context(), r, sessionRepo, userRepo)
			switch {
			case errors.Is(err, errNoToken), errors.Is(err, errBadToken), errors.Is(err, errNoSession):
				logger.Warn("Rejected request without valid session",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseUnauthorized(w, err.Error())
				return
			case errors.Is(err, errInactiveStaff):
				utils.ResponseForbidden(w, err.Error())
				return
			case err != nil:
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseUnavailable(w, "Service temporarily unavailable, retry later")
				return
			}

			ctx := utils.SetActorContext(r.Context(), actor)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession attaches the actor when a valid token is sent and lets
// anonymous requests through untouched.
func OptionalSession(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			AuthSession(sessionRepo, userRepo, logger)(next).ServeHTTP(w, r)
		})
	}
}

// Guest only lets guest sessions through.
func Guest(logger *zap.Logger) func(http.Handler) http.Handler {
	return requireActor(logger, "Guest account required", func(a utils.Actor) bool { return !a.IsStaff() })
}

// Staff lets any active staff member through.
func Staff(logger *zap.Logger) func(http.Handler) http.Handler {
	return requireActor(logger, "Staff access required", utils.Actor.IsStaff)
}

// Admin lets only admins through.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return requireActor(logger, "Admin access required", utils.Actor.IsAdmin)
}

func requireActor(logger *zap.Logger, message string, allowed func(utils.Actor) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := utils.GetActorFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}
			if !allowed(actor) {
				logger.Warn("Access denied",
					zap.String("actor_id", actor.ID.String()),
					zap.String("kind", actor.Kind),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
