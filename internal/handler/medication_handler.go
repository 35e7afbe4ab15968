package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"medtrack/reminder-service/internal/middleware"
	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/internal/service"
	"medtrack/reminder-service/pkg/helpers"
	"medtrack/reminder-service/pkg/logger"
)

// MedicationHandler serves the medication CRUD endpoints
type MedicationHandler struct {
	medications service.MedicationService
	validator   *helpers.CustomValidator
	log         *logger.Logger
}

// NewMedicationHandler creates a medication handler
func NewMedicationHandler(medications service.MedicationService, validator *helpers.CustomValidator, log *logger.Logger) *MedicationHandler {
	return &MedicationHandler{medications: medications, validator: validator, log: log}
}

// Create handles POST /api/medications
func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req models.CreateMedicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	medication, err := h.medications.Create(r.Context(), user.ID, req.Name, req.Dosage, req.Description)
	if err != nil {
		writeInternalError(w, h.log, err, "create medication")
		return
	}
	writeJSON(w, http.StatusCreated, medication)
}

// List handles GET /api/medications
func (h *MedicationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	medications, err := h.medications.List(r.Context(), user.ID)
	if err != nil {
		writeInternalError(w, h.log, err, "list medications")
		return
	}
	writeJSON(w, http.StatusOK, medications)
}

// Get handles GET /api/medications/{id}
func (h *MedicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	medication, err := h.medications.Get(r.Context(), id, user.ID)
	if err != nil {
		h.writeServiceError(w, err, "get medication")
		return
	}
	writeJSON(w, http.StatusOK, medication)
}

// Update handles PUT /api/medications/{id}
func (h *MedicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateMedicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	medication, err := h.medications.Update(r.Context(), id, user.ID, &req)
	if err != nil {
		h.writeServiceError(w, err, "update medication")
		return
	}
	writeJSON(w, http.StatusOK, medication)
}

// Delete handles DELETE /api/medications/{id}
func (h *MedicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.medications.Delete(r.Context(), id, user.ID); err != nil {
		h.writeServiceError(w, err, "delete medication")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// writeServiceError maps domain errors to HTTP statuses. Ownership failures
// render as 404 so resource existence is not leaked across accounts.
func (h *MedicationHandler) writeServiceError(w http.ResponseWriter, err error, action string) {
	switch err {
	case service.ErrMedicationNotFound, service.ErrNotOwner:
		writeError(w, http.StatusNotFound, service.ErrMedicationNotFound.Error())
	default:
		writeInternalError(w, h.log, err, action)
	}
}

// pathID parses the {id} URL parameter, writing a 400 on failure
func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
