package usecase

import (
	"context"
	"strings"

	"hostal-booking/internal/data/entity"
	"hostal-booking/internal/data/repository"
	"hostal-booking/internal/dto/request"
	"hostal-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// minPhoneDigits is the shortest digit suffix phone search accepts.
const minPhoneDigits = 4

type GuestService interface {
	CreateGuest(ctx context.Context, req *request.GuestRequest) (*response.GuestResponse, error)
	GetGuest(ctx context.Context, guestID string) (*response.GuestResponse, error)
	UpdateGuest(ctx context.Context, guestID string, req *request.GuestRequest) (*response.GuestResponse, error)
	ListGuests(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GuestResponse], error)

	// Lookups
	FindByEmail(ctx context.Context, email string) ([]response.GuestResponse, error)
	FindByPhone(ctx context.Context, phone string) ([]response.GuestResponse, error)
	Search(ctx context.Context, req *request.GuestSearchRequest) ([]response.GuestResponse, error)
}

type guestService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewGuestService(repo *repository.Repository, log *zap.Logger) GuestService {
	return &guestService{
		repo: repo,
		log:  log.With(zap.String("service", "guest")),
	}
}

func validateGuest(req *request.GuestRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Phone) == "" {
		return &Error{
			Kind:    KindValidation,
			Reason:  "invalid_request",
			Message: "validation failed: email or phone is required",
			Fields:  map[string]string{"Email": "Email or phone is required"},
		}
	}
	return nil
}

func newGuest(req *request.GuestRequest) *entity.Guest {
	ts := now()
	guest := &entity.Guest{Base: entity.Base{ID: uuid.New(), CreatedAt: ts, UpdatedAt: ts}}
	applyGuestRequest(guest, req)
	return guest
}

func applyGuestRequest(guest *entity.Guest, req *request.GuestRequest) {
	guest.FullName = strings.TrimSpace(req.FullName)
	guest.Email = strings.TrimSpace(req.Email)
	guest.Phone = strings.TrimSpace(req.Phone)
	guest.PhoneDigits = entity.NormalizePhone(req.Phone)
}

func findGuest(ctx context.Context, repo *repository.Repository, guestID uuid.UUID) (*entity.Guest, error) {
	guest, err := repo.Guest.FindByID(ctx, guestID)
	if err != nil {
		return nil, dependency("find guest", err)
	}
	if guest == nil {
		return nil, notFound("guest", guestID.String())
	}
	return guest, nil
}

func guestsToResponse(guests []*entity.Guest) []response.GuestResponse {
	out := make([]response.GuestResponse, 0, len(guests))
	for _, g := range guests {
		out = append(out, response.GuestToResponse(g))
	}
	return out
}

// CreateGuest never deduplicates: two guests may share an email.
func (s *guestService) CreateGuest(ctx context.Context, req *request.GuestRequest) (*response.GuestResponse, error) {
	if err := validateGuest(req); err != nil {
		s.log.Warn("Create guest validation failed", zap.Error(err))
		return nil, err
	}

	guest := newGuest(req)
	if err := s.repo.Guest.Create(ctx, guest); err != nil {
		return nil, dependency("create guest", err)
	}

	s.log.Info("Guest created", zap.String("guest_id", guest.ID.String()))
	resp := response.GuestToResponse(guest)
	return &resp, nil
}

func (s *guestService) GetGuest(ctx context.Context, guestID string) (*response.GuestResponse, error) {
	id, err := parseID("guest", guestID)
	if err != nil {
		return nil, err
	}
	guest, err := findGuest(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	resp := response.GuestToResponse(guest)
	return &resp, nil
}

func (s *guestService) UpdateGuest(ctx context.Context, guestID string, req *request.GuestRequest) (*response.GuestResponse, error) {
	if err := validateGuest(req); err != nil {
		return nil, err
	}
	id, err := parseID("guest", guestID)
	if err != nil {
		return nil, err
	}

	guest, err := findGuest(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	applyGuestRequest(guest, req)
	guest.UpdatedAt = now()

	if err := s.repo.Guest.Update(ctx, guest); err != nil {
		return nil, dependency("update guest", err)
	}

	resp := response.GuestToResponse(guest)
	return &resp, nil
}

func (s *guestService) ListGuests(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GuestResponse], error) {
	normalizePage(req)

	guests, err := s.repo.Guest.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list guests", zap.Error(err))
		return nil, dependency("list guests", err)
	}
	total, err := s.repo.Guest.CountAll(ctx)
	if err != nil {
		return nil, dependency("count guests", err)
	}

	return response.NewPaginatedResponse(guestsToResponse(guests), req.Page, req.PerPage, total), nil
}

func (s *guestService) FindByEmail(ctx context.Context, email string) ([]response.GuestResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, validationError("email is required")
	}
	guests, err := s.repo.Guest.FindByEmail(ctx, email)
	if err != nil {
		return nil, dependency("find guests by email", err)
	}
	return guestsToResponse(guests), nil
}

func (s *guestService) FindByPhone(ctx context.Context, phone string) ([]response.GuestResponse, error) {
	digits := entity.NormalizePhone(phone)
	if len(digits) < minPhoneDigits {
		return nil, validationError("phone search needs at least %d digits", minPhoneDigits)
	}
	guests, err := s.repo.Guest.FindByPhoneDigits(ctx, digits)
	if err != nil {
		return nil, dependency("find guests by phone", err)
	}
	return guestsToResponse(guests), nil
}

func (s *guestService) Search(ctx context.Context, req *request.GuestSearchRequest) ([]response.GuestResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	switch {
	case req.Email != "":
		return s.FindByEmail(ctx, req.Email)
	case req.Phone != "":
		return s.FindByPhone(ctx, req.Phone)
	}
	return nil, validationError("email or phone query parameter is required")
}
