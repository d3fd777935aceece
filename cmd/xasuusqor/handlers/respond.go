// Package handlers provides the REST API handlers for the journaling
// backend: journals, entries, goals, the session user, uploads, model
// invocation, insights, templates and email ingestion.
package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/logging"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logging.L().Errorw("failed to encode response", "error", err)
		}
	}
}

// writeError maps application error codes to HTTP statuses and writes a
// structured error body.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.ErrInternal
	message := "internal error"
	if appErr, ok := err.(*apperrors.AppError); ok {
		code = appErr.Code
		message = appErr.Message
	}

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = message
	writeJSON(w, statusFor(code), body)
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrNotFound, apperrors.ErrJournalNotFound,
		apperrors.ErrEntryNotFound, apperrors.ErrGoalNotFound:
		return http.StatusNotFound
	case apperrors.ErrValidation, apperrors.ErrInvalid:
		return http.StatusBadRequest
	case apperrors.ErrPlanLimit:
		return http.StatusForbidden
	case apperrors.ErrUploadTooBig:
		return http.StatusRequestEntityTooLarge
	case apperrors.ErrAnnotationTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrAnnotationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// pathID extracts the trailing id from paths like /journals/{id}.
func pathID(r *http.Request, prefix string) string {
	if id := r.PathValue("id"); id != "" {
		return id
	}
	if len(r.URL.Path) > len(prefix) {
		return r.URL.Path[len(prefix):]
	}
	return ""
}
