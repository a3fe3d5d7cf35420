package adaptor

import (
	"net/http"

	"hostal-booking/internal/dto/request"
	"hostal-booking/internal/usecase"
	"hostal-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterGuestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	response, err := h.service.RegisterGuest(r.Context(), &req, clientInfo(r))
	if err != nil {
		writeServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", response)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	response, err := h.service.LoginGuest(r.Context(), &req, clientInfo(r))
	if err != nil {
		writeServiceError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", response)
}

// StaffLogin handles POST /api/staff/login
func (h *AuthHandler) StaffLogin(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	response, err := h.service.LoginStaff(r.Context(), &req, clientInfo(r))
	if err != nil {
		writeServiceError(w, h.log, err, "staff login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", response)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok || token == "" {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		writeServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// CreateStaff handles POST /api/admin/staff (admin only)
func (h *AuthHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStaffRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	staff, err := h.service.CreateStaff(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create staff")
		return
	}

	utils.ResponseCreated(w, "Staff account created", staff)
}

// StaffProfile handles GET /api/admin/me
func (h *AuthHandler) StaffProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok || !actor.IsStaff() {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	staff, err := h.service.GetStaff(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, h.log, err, "get staff profile")
		return
	}

	utils.ResponseSuccess(w, "success", staff)
}
