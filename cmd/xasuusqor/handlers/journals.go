package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/store"
)

// JournalHandler handles journal CRUD.
type JournalHandler struct {
	store store.JournalStore
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(s store.JournalStore) *JournalHandler {
	return &JournalHandler{store: s}
}

// List handles GET /journals?sort=-created_date
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sort := store.ParseSortDirective(r.URL.Query().Get("sort"))
	journals, err := h.store.ListJournals(r.Context(), sort)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, journals)
}

// Create handles POST /journals
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var journal models.Journal
	if err := json.NewDecoder(r.Body).Decode(&journal); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}
	if err := journal.Validate(); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.store.CreateJournal(r.Context(), &journal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /journals/{id} with a partial body.
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := pathID(r, "/journals/")

	var patch struct {
		Name        *string             `json:"name"`
		Description *string             `json:"description"`
		Color       *string             `json:"color"`
		Icon        *models.JournalIcon `json:"icon"`
		IsDefault   *bool               `json:"is_default"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}
	if patch.Name != nil && *patch.Name == "" {
		writeError(w, apperrors.New(apperrors.ErrValidation, "journal name cannot be empty"))
		return
	}
	if patch.Icon != nil && *patch.Icon != "" && !patch.Icon.Valid() {
		writeError(w, apperrors.Newf(apperrors.ErrValidation, "unknown journal icon %q", *patch.Icon))
		return
	}

	updated, err := h.store.UpdateJournal(r.Context(), id, store.JournalPatch{
		Name:        patch.Name,
		Description: patch.Description,
		Color:       patch.Color,
		Icon:        patch.Icon,
		IsDefault:   patch.IsDefault,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /journals/{id}. Entries in the journal are kept
// with their dangling reference.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := pathID(r, "/journals/")

	if err := h.store.DeleteJournal(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
