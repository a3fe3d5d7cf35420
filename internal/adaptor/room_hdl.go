package adaptor

import (
	"net/http"

	"hostal-booking/internal/dto/request"
	"hostal-booking/internal/usecase"
	"hostal-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoomHandler struct {
	rooms        usecase.RoomService
	availability usecase.AvailabilityService
	pricing      usecase.PricingService
	log          *zap.Logger
}

func NewRoomHandler(
	rooms usecase.RoomService,
	availability usecase.AvailabilityService,
	pricing usecase.PricingService,
	log *zap.Logger,
) *RoomHandler {
	return &RoomHandler{
		rooms:        rooms,
		availability: availability,
		pricing:      pricing,
		log:          log.With(zap.String("handler", "room")),
	}
}

// ListRooms handles GET /api/rooms?type&min_capacity
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.RoomListRequest{
		Type:        query.Get("type"),
		MinCapacity: utils.ParseInt(query.Get("min_capacity"), 0),
	}

	rooms, err := h.rooms.ListRooms(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// GetRoom handles GET /api/rooms/{id}
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.rooms.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// AvailableRooms handles GET /api/rooms/available?check_in&check_out&party_size
func (h *RoomHandler) AvailableRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.AvailableRoomsRequest{
		CheckIn:   query.Get("check_in"),
		CheckOut:  query.Get("check_out"),
		PartySize: utils.ParseInt(query.Get("party_size"), 1),
	}

	rooms, err := h.availability.AvailableRooms(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "search available rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// Availability handles GET /api/rooms/{id}/availability?check_in&check_out&exclude
func (h *RoomHandler) Availability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.availability.CheckRoom(r.Context(),
		chi.URLParam(r, "id"),
		query.Get("check_in"),
		query.Get("check_out"),
		query.Get("exclude"),
	)
	if err != nil {
		writeServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Calendar handles GET /api/rooms/{id}/calendar?from&to
func (h *RoomHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.DateRangeRequest{From: query.Get("from"), To: query.Get("to")}

	calendar, err := h.availability.OccupiedRanges(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "get room calendar")
		return
	}

	utils.ResponseSuccess(w, "success", calendar)
}

// Quote handles GET /api/rooms/{id}/quote?check_in&check_out
func (h *RoomHandler) Quote(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	quote, err := h.pricing.Quote(r.Context(), chi.URLParam(r, "id"), query.Get("check_in"), query.Get("check_out"))
	if err != nil {
		writeServiceError(w, h.log, err, "quote stay")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// ==================== ADMIN METHODS ====================

// CreateRoom handles POST /api/admin/rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.rooms.CreateRoom(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create room")
		return
	}

	utils.ResponseCreated(w, "Room created", room)
}

// UpdateRoom handles PUT /api/admin/rooms/{id}
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.rooms.UpdateRoom(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "Room updated", room)
}

// DeleteRoom handles DELETE /api/admin/rooms/{id}
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.rooms.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete room")
		return
	}

	utils.ResponseSuccess(w, "Room deleted", nil)
}

// ListRates handles GET /api/admin/rooms/{id}/rates?from&to
func (h *RoomHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.DateRangeRequest{From: query.Get("from"), To: query.Get("to")}

	rates, err := h.rooms.ListRates(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list room rates")
		return
	}

	utils.ResponseSuccess(w, "success", rates)
}

// SetRates handles PUT /api/admin/rooms/{id}/rates
func (h *RoomHandler) SetRates(w http.ResponseWriter, r *http.Request) {
	var req request.SetRatesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rates, err := h.rooms.SetRates(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "set room rates")
		return
	}

	utils.ResponseSuccess(w, "Rates updated", rates)
}

// ClearRates handles DELETE /api/admin/rooms/{id}/rates?from&to
func (h *RoomHandler) ClearRates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.DateRangeRequest{From: query.Get("from"), To: query.Get("to")}

	deleted, err := h.rooms.ClearRates(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "clear room rates")
		return
	}

	utils.ResponseSuccess(w, "Rates cleared", map[string]int64{"deleted": deleted})
}
