package handler

import (
	"encoding/json"
	"net/http"

	"medtrack/reminder-service/pkg/helpers"
	"medtrack/reminder-service/pkg/logger"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeValidationError renders a 422 with per-field messages when the error
// comes from the validator, and a plain 400 otherwise.
func writeValidationError(w http.ResponseWriter, err error) {
	if fields := helpers.FieldErrors(err); fields != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
		return
	}
	writeError(w, http.StatusBadRequest, "invalid request payload")
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeInternalError logs the cause and hides it from the client
func writeInternalError(w http.ResponseWriter, log *logger.Logger, err error, action string) {
	log.WithError(err).Error("failed to " + action)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
