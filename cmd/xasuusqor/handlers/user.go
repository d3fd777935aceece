package handlers

import (
	"net/http"

	"github.com/Mohameddacar/xasuusqor/internal/store"
)

// UserHandler serves the read-only session user.
type UserHandler struct {
	store store.UserStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(s store.UserStore) *UserHandler {
	return &UserHandler{store: s}
}

// Get handles GET /user
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, err := h.store.GetUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
