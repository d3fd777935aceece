package handlers

import (
	"net/http"

	"github.com/Mohameddacar/xasuusqor/internal/services"
)

// TemplateHandler serves entry templates and template-based drafts.
type TemplateHandler struct {
	templates *services.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templates *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List handles GET /templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.templates.List())
}

// Draft handles GET /templates/{name}/draft: an unpersisted entry
// prefilled from the template, with the body rendered to HTML.
func (h *TemplateHandler) Draft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	draft, err := h.templates.Draft(r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}
