package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/repository"
	"hostal-booking/internal/dto/request"
	"hostal-booking/internal/dto/response"
	"hostal-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientInfo is recorded on the session for auditing.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	RegisterGuest(ctx context.Context, req *request.RegisterGuestRequest, client ClientInfo) (*response.AuthResponse, error)
	LoginGuest(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	LoginStaff(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error

	CreateStaff(ctx context.Context, req *request.CreateStaffRequest) (*response.StaffResponse, error)
	GetStaff(ctx context.Context, staffID uuid.UUID) (*response.StaffResponse, error)
	// EnsureAdmin creates the bootstrap admin when no staff account exists yet.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

var errInvalidCredentials = &Error{Kind: KindUnauthorized, Reason: "invalid_credentials", Message: "invalid credentials"}

func (s *authService) RegisterGuest(ctx context.Context, req *request.RegisterGuestRequest, client ClientInfo) (*response.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, dependency("process password", err)
	}

	var guest *entity.Guest
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		matches, err := tx.Guest.FindByEmail(ctx, req.Email)
		if err != nil {
			return dependency("check email", err)
		}
		for _, m := range matches {
			if m.PasswordHash != nil {
				return conflict(ErrEmailTaken, "email %s already has an account", req.Email)
			}
		}

		// a walk-in guest record with this email becomes the account
		if len(matches) > 0 {
			guest = matches[0]
			guest.FullName = strings.TrimSpace(req.FullName)
			if req.Phone != "" {
				guest.Phone = strings.TrimSpace(req.Phone)
				guest.PhoneDigits = entity.NormalizePhone(req.Phone)
			}
			guest.PasswordHash = &hashedPassword
			guest.UpdatedAt = now()
			if err := tx.Guest.Update(ctx, guest); err != nil {
				return dependency("update guest", err)
			}
			return nil
		}

		guest = newGuest(&request.GuestRequest{FullName: req.FullName, Email: req.Email, Phone: req.Phone})
		guest.PasswordHash = &hashedPassword
		if err := tx.Guest.Create(ctx, guest); err != nil {
			return dependency("create guest", err)
		}
		return nil
	})
	if err != nil {
		return nil, serviceError("register guest", err)
	}

	session, err := s.createSession(ctx, guest.ID, entity.SubjectGuest, client)
	if err != nil {
		return nil, err
	}

	s.log.Info("Guest registered", zap.String("guest_id", guest.ID.String()))
	resp := response.SessionToResponse(session, guest.Email, guest.FullName, "")
	return &resp, nil
}

func (s *authService) LoginGuest(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	matches, err := s.repo.Guest.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find guest by email", zap.Error(err))
		return nil, dependency("find guest", err)
	}

	var guest *entity.Guest
	for _, m := range matches {
		if m.PasswordHash != nil {
			guest = m
			break
		}
	}
	if guest == nil || !utils.CheckPasswordHash(req.Password, *guest.PasswordHash) {
		s.log.Warn("Guest login failed", zap.String("email", req.Email))
		return nil, errInvalidCredentials
	}

	session, err := s.createSession(ctx, guest.ID, entity.SubjectGuest, client)
	if err != nil {
		return nil, err
	}

	s.log.Info("Guest logged in", zap.String("guest_id", guest.ID.String()))
	resp := response.SessionToResponse(session, guest.Email, guest.FullName, "")
	return &resp, nil
}

func (s *authService) LoginStaff(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find staff user", zap.Error(err))
		return nil, dependency("find staff user", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Staff login failed", zap.String("email", req.Email))
		return nil, errInvalidCredentials
	}
	if !user.IsActive {
		s.log.Warn("Inactive staff tried to login", zap.String("user_id", user.ID.String()))
		return nil, &Error{Kind: KindForbidden, Reason: "account_inactive", Message: "account is deactivated"}
	}

	session, err := s.createSession(ctx, user.ID, entity.SubjectStaff, client)
	if err != nil {
		return nil, err
	}

	s.log.Info("Staff logged in", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	resp := response.SessionToResponse(session, user.Email, user.FullName, user.Role)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return validationError("invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return dependency("logout", err)
	}

	s.log.Info("Session revoked")
	return nil
}

func (s *authService) CreateStaff(ctx context.Context, req *request.CreateStaffRequest) (*response.StaffResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	user, err := s.createStaff(ctx, req.FullName, req.Email, req.Password, entity.StaffRole(req.Role))
	if err != nil {
		return nil, err
	}
	resp := response.StaffToResponse(user)
	return &resp, nil
}

func (s *authService) GetStaff(ctx context.Context, staffID uuid.UUID) (*response.StaffResponse, error) {
	user, err := s.repo.User.FindByID(ctx, staffID)
	if err != nil {
		return nil, dependency("find staff user", err)
	}
	if user == nil {
		return nil, notFound("staff user", staffID.String())
	}
	resp := response.StaffToResponse(user)
	return &resp, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	count, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return dependency("count staff users", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := s.createStaff(ctx, "Administrator", email, password, entity.RoleAdmin); err != nil {
		return err
	}
	s.log.Info("Bootstrap admin created", zap.String("email", email))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createStaff(ctx context.Context, fullName, email, password string, role entity.StaffRole) (*entity.StaffUser, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, dependency("process password", err)
	}

	ts := now()
	user := &entity.StaffUser{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: ts, UpdatedAt: ts},
		FullName:     strings.TrimSpace(fullName),
		Email:        strings.TrimSpace(email),
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict(ErrEmailTaken, "email %s already has an account", email)
		}
		return nil, dependency("create staff user", err)
	}

	s.log.Info("Staff user created", zap.String("user_id", user.ID.String()), zap.String("role", string(role)))
	return user, nil
}

func (s *authService) createSession(ctx context.Context, subjectID uuid.UUID, kind entity.SubjectKind, client ClientInfo) (*entity.Session, error) {
	hours := 24
	if s.config != nil && s.config.Session.ExpiryHours > 0 {
		hours = s.config.Session.ExpiryHours
	}

	ts := now()
	session := &entity.Session{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: ts},
		SubjectID:   subjectID,
		SubjectKind: kind,
		Token:       uuid.New(),
		UserAgent:   utils.StringPtr(client.UserAgent),
		IPAddress:   utils.StringPtr(client.IPAddress),
		ExpiresAt:   ts.Add(time.Duration(hours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("subject_id", subjectID.String()))
		return nil, dependency("create session", err)
	}

	return session, nil
}
