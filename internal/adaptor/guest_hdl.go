package adaptor

import (
	"net/http"

	"hostal-booking/internal/dto/request"
	"hostal-booking/internal/usecase"
	"hostal-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type GuestHandler struct {
	guests       usecase.GuestService
	reservations usecase.ReservationService
	log          *zap.Logger
}

func NewGuestHandler(guests usecase.GuestService, reservations usecase.ReservationService, log *zap.Logger) *GuestHandler {
	return &GuestHandler{
		guests:       guests,
		reservations: reservations,
		log:          log.With(zap.String("handler", "guest")),
	}
}

// Me handles GET /api/me (guest session)
func (h *GuestHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok || actor.IsStaff() {
		utils.ResponseForbidden(w, "Guest account required")
		return
	}

	guest, err := h.guests.GetGuest(r.Context(), actor.ID.String())
	if err != nil {
		writeServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", guest)
}

// MyReservations handles GET /api/me/reservations (guest session)
func (h *GuestHandler) MyReservations(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok || actor.IsStaff() {
		utils.ResponseForbidden(w, "Guest account required")
		return
	}

	req := &request.PaginatedRequest{}
	req.Page, req.PerPage = paginationFromQuery(r)

	reservations, err := h.reservations.ListGuestReservations(r.Context(), actor.ID.String(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list own reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// ==================== STAFF METHODS ====================

// ListGuests handles GET /api/admin/guests
func (h *GuestHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	req := &request.PaginatedRequest{}
	req.Page, req.PerPage = paginationFromQuery(r)

	guests, err := h.guests.ListGuests(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list guests")
		return
	}

	utils.ResponseSuccess(w, "success", guests)
}

// CreateGuest handles POST /api/admin/guests
func (h *GuestHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.GuestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	guest, err := h.guests.CreateGuest(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create guest")
		return
	}

	utils.ResponseCreated(w, "Guest created", guest)
}

// GetGuest handles GET /api/admin/guests/{id}
func (h *GuestHandler) GetGuest(w http.ResponseWriter, r *http.Request) {
	guest, err := h.guests.GetGuest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get guest")
		return
	}

	utils.ResponseSuccess(w, "success", guest)
}

// UpdateGuest handles PUT /api/admin/guests/{id}
func (h *GuestHandler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.GuestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	guest, err := h.guests.UpdateGuest(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update guest")
		return
	}

	utils.ResponseSuccess(w, "Guest updated", guest)
}

// GuestReservations handles GET /api/admin/guests/{id}/reservations
func (h *GuestHandler) GuestReservations(w http.ResponseWriter, r *http.Request) {
	req := &request.PaginatedRequest{}
	req.Page, req.PerPage = paginationFromQuery(r)

	reservations, err := h.reservations.ListGuestReservations(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list guest reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// SearchGuests handles GET /api/admin/guests/search?email|phone
func (h *GuestHandler) SearchGuests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.GuestSearchRequest{Email: query.Get("email"), Phone: query.Get("phone")}

	guests, err := h.guests.Search(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "search guests")
		return
	}

	utils.ResponseSuccess(w, "success", guests)
}
