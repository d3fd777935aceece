package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Mohameddacar/xasuusqor/internal/annotate"
	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
)

// AnnotateHandler exposes raw model invocation for clients that run
// their own prompts (captioning, transcription, OCR).
type AnnotateHandler struct {
	annotator annotate.Annotator
}

// NewAnnotateHandler creates a new AnnotateHandler.
func NewAnnotateHandler(annotator annotate.Annotator) *AnnotateHandler {
	return &AnnotateHandler{annotator: annotator}
}

// Invoke handles POST /annotate with an annotate.Request body.
func (h *AnnotateHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req annotate.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}
	if req.Prompt == "" {
		writeError(w, apperrors.New(apperrors.ErrValidation, "prompt is required"))
		return
	}

	resp, err := h.annotator.InvokeModel(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
