package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/services"
)

// EmailHandler accepts inbound email payloads for ingestion.
type EmailHandler struct {
	ingest *services.EmailIngestService
}

// NewEmailHandler creates a new EmailHandler.
func NewEmailHandler(ingest *services.EmailIngestService) *EmailHandler {
	return &EmailHandler{ingest: ingest}
}

// Ingest handles POST /email-ingest with {"subject": ..., "body": ...}.
// The body is markdown and lands as an entry in the default journal.
func (h *EmailHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}

	entry, err := h.ingest.Ingest(r.Context(), req.Subject, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
