package adaptor

import (
	"net/http"

	"hostal-booking/internal/dto/request"
	"hostal-booking/internal/usecase"
	"hostal-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /api/reservations
//
// A signed-in guest books for themselves; anyone else supplies guest details.
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if actor, ok := utils.GetActorFromContext(r.Context()); ok && !actor.IsStaff() {
		req.GuestID = actor.ID.String()
		req.Guest = nil
	}

	reservation, err := h.service.CreateReservation(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation created", reservation)
}

// GetByCode handles GET /api/reservations/code/{code}
func (h *ReservationHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.service.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeServiceError(w, h.log, err, "get reservation by code")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// ==================== STAFF METHODS ====================

// ListReservations handles GET /api/admin/reservations?status&guest_id&room_id&from&to
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ReservationListRequest{
		Status:  query.Get("status"),
		GuestID: query.Get("guest_id"),
		RoomID:  query.Get("room_id"),
		From:    query.Get("from"),
		To:      query.Get("to"),
	}
	req.Page, req.PerPage = paginationFromQuery(r)

	reservations, err := h.service.ListReservations(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// GetReservation handles GET /api/admin/reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.service.GetReservation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// UpdateStatus handles PATCH /api/admin/reservations/{id}/status
func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reservation, err := h.service.TransitionStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update reservation status")
		return
	}

	utils.ResponseSuccess(w, "Reservation updated", reservation)
}

// Reschedule handles PATCH /api/admin/reservations/{id}/dates
func (h *ReservationHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	var req request.RescheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reservation, err := h.service.Reschedule(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "reschedule reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation rescheduled", reservation)
}
