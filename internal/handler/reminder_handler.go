package handler

import (
	"net/http"

	"medtrack/reminder-service/internal/middleware"
	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/internal/service"
	"medtrack/reminder-service/pkg/helpers"
	"medtrack/reminder-service/pkg/logger"
)

// ReminderHandler serves the reminder CRUD endpoints
type ReminderHandler struct {
	reminders service.ReminderService
	validator *helpers.CustomValidator
	log       *logger.Logger
}

// NewReminderHandler creates a reminder handler
func NewReminderHandler(reminders service.ReminderService, validator *helpers.CustomValidator, log *logger.Logger) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, validator: validator, log: log}
}

// Create handles POST /api/reminders
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req models.CreateReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	reminder, err := h.reminders.Create(r.Context(), user.ID, req.MedicationID, req.TimeOfDay)
	if err != nil {
		switch err {
		case service.ErrMedicationNotFound, service.ErrNotOwner:
			writeError(w, http.StatusNotFound, service.ErrMedicationNotFound.Error())
		case service.ErrInvalidTimeOfDay:
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeInternalError(w, h.log, err, "create reminder")
		}
		return
	}
	writeJSON(w, http.StatusCreated, reminder)
}

// List handles GET /api/reminders
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	reminders, err := h.reminders.List(r.Context(), user.ID)
	if err != nil {
		writeInternalError(w, h.log, err, "list reminders")
		return
	}
	writeJSON(w, http.StatusOK, reminders)
}

// Get handles GET /api/reminders/{id}
func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	reminder, err := h.reminders.Get(r.Context(), id, user.ID)
	if err != nil {
		h.writeServiceError(w, err, "get reminder")
		return
	}
	writeJSON(w, http.StatusOK, reminder)
}

// Update handles PUT /api/reminders/{id}
func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	reminder, err := h.reminders.Update(r.Context(), id, user.ID, &req)
	if err != nil {
		if err == service.ErrInvalidTimeOfDay {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeServiceError(w, err, "update reminder")
		return
	}
	writeJSON(w, http.StatusOK, reminder)
}

// Delete handles DELETE /api/reminders/{id}
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.reminders.Delete(r.Context(), id, user.ID); err != nil {
		h.writeServiceError(w, err, "delete reminder")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ReminderHandler) writeServiceError(w http.ResponseWriter, err error, action string) {
	switch err {
	case service.ErrReminderNotFound, service.ErrNotOwner:
		writeError(w, http.StatusNotFound, service.ErrReminderNotFound.Error())
	default:
		writeInternalError(w, h.log, err, action)
	}
}
