package handler

import (
	"net/http"
	"strings"

	"medtrack/reminder-service/internal/middleware"
	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/internal/service"
	"medtrack/reminder-service/pkg/helpers"
	"medtrack/reminder-service/pkg/logger"
)

// AuthHandler serves the authentication endpoints
type AuthHandler struct {
	auth      service.AuthService
	validator *helpers.CustomValidator
	log       *logger.Logger
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(auth service.AuthService, validator *helpers.CustomValidator, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, validator: validator, log: log}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password, req.Timezone)
	if err != nil {
		switch err {
		case service.ErrEmailTaken:
			writeError(w, http.StatusConflict, err.Error())
		case service.ErrInvalidTimezone:
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeInternalError(w, h.log, err, "register user")
		}
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	tokens, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeInternalError(w, h.log, err, "log in user")
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

// Refresh handles POST /api/auth/refresh. The presented refresh token is
// consumed whether or not a new pair is issued.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	tokens, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if err == service.ErrInvalidToken {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeInternalError(w, h.log, err, "refresh tokens")
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

// Logout handles POST /api/auth/logout, revoking the presented access token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing access token")
		return
	}

	if err := h.auth.Logout(r.Context(), token); err != nil {
		writeInternalError(w, h.log, err, "log out user")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// Me handles GET /api/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateTimezone handles PUT /api/me/timezone. Reminder scheduling follows
// the new zone from the next tick onward.
func (h *AuthHandler) UpdateTimezone(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req models.UpdateTimezoneRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := h.auth.UpdateTimezone(r.Context(), user.ID, req.Timezone); err != nil {
		if err == service.ErrInvalidTimezone {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(w, h.log, err, "update timezone")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
