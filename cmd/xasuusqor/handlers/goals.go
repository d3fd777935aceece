package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/services"
	"github.com/Mohameddacar/xasuusqor/internal/store"
)

// GoalHandler handles goal CRUD and progress stepping.
type GoalHandler struct {
	goals *services.GoalService
	store store.GoalStore
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goals *services.GoalService, s store.GoalStore) *GoalHandler {
	return &GoalHandler{goals: goals, store: s}
}

// List handles GET /goals?sort=-created_date
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sort := store.ParseSortDirective(r.URL.Query().Get("sort"))
	goals, err := h.store.ListGoals(r.Context(), sort)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

// Create handles POST /goals
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var goal models.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}

	created, err := h.goals.Create(r.Context(), &goal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /goals/{id} with a partial body. Progress moves
// clamp to [0,100] and recompute the status.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := pathID(r, "/goals/")

	var patch struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Category    *models.GoalCategory `json:"category"`
		Progress    *int                 `json:"progress"`
		TargetDate  *string              `json:"target_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}
	if patch.Category != nil && !patch.Category.Valid() {
		writeError(w, apperrors.Newf(apperrors.ErrValidation, "unknown goal category %q", *patch.Category))
		return
	}

	updated, err := h.goals.Update(r.Context(), id, store.GoalPatch{
		Title:       patch.Title,
		Description: patch.Description,
		Category:    patch.Category,
		Progress:    patch.Progress,
		TargetDate:  patch.TargetDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Step handles POST /goals/{id}/step with body {"delta": 10}.
func (h *GoalHandler) Step(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.PathValue("id")

	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}
	if body.Delta == 0 {
		body.Delta = services.ProgressStep
	}

	updated, err := h.goals.StepProgress(r.Context(), id, body.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /goals/{id}
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := pathID(r, "/goals/")

	if err := h.goals.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
