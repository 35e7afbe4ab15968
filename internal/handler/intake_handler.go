package handler

import (
	"net/http"
	"strconv"

	"medtrack/reminder-service/internal/middleware"
	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/internal/service"
	"medtrack/reminder-service/pkg/helpers"
	"medtrack/reminder-service/pkg/logger"
)

// IntakeHandler serves the intake history endpoints
type IntakeHandler struct {
	intakes   service.IntakeService
	validator *helpers.CustomValidator
	log       *logger.Logger
}

// NewIntakeHandler creates an intake handler
func NewIntakeHandler(intakes service.IntakeService, validator *helpers.CustomValidator, log *logger.Logger) *IntakeHandler {
	return &IntakeHandler{intakes: intakes, validator: validator, log: log}
}

// Create handles POST /api/intakes, recording a manual intake event
func (h *IntakeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req models.CreateIntakeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	intake, err := h.intakes.Record(r.Context(), user.ID, req.MedicationID, req.ReminderID,
		models.IntakeStatus(req.Status), req.Notes)
	if err != nil {
		switch err {
		case service.ErrMedicationNotFound, service.ErrNotOwner:
			writeError(w, http.StatusNotFound, service.ErrMedicationNotFound.Error())
		default:
			writeInternalError(w, h.log, err, "record intake")
		}
		return
	}
	writeJSON(w, http.StatusCreated, intake)
}

// List handles GET /api/intakes?limit=n
func (h *IntakeHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var limit int32
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = int32(parsed)
	}

	intakes, err := h.intakes.List(r.Context(), user.ID, limit)
	if err != nil {
		writeInternalError(w, h.log, err, "list intakes")
		return
	}
	writeJSON(w, http.StatusOK, intakes)
}
