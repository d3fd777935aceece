package handlers

import (
	"net/http"
	"time"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/query"
	"github.com/Mohameddacar/xasuusqor/internal/store"
)

// InsightsHandler serves the aggregate insights surface: sentiment over
// a time window, distinct filter values and per-journal counts.
type InsightsHandler struct {
	store store.EntryStore
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(s store.EntryStore) *InsightsHandler {
	return &InsightsHandler{store: s}
}

type insightsResponse struct {
	query.Insights

	AllTags        []string       `json:"all_tags"`
	AllEmotions    []string       `json:"all_emotions"`
	AllMoods       []models.Mood  `json:"all_moods"`
	CountByJournal map[string]int `json:"count_by_journal"`
}

// Get handles GET /insights?range=week|month|year (default week).
func (h *InsightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rangeLabel := r.URL.Query().Get("range")
	if rangeLabel == "" {
		rangeLabel = "week"
	}
	now := time.Now().UTC()
	var start time.Time
	switch rangeLabel {
	case "week":
		start = now.AddDate(0, 0, -7)
	case "month":
		start = now.AddDate(0, -1, 0)
	case "year":
		start = now.AddDate(-1, 0, 0)
	default:
		writeError(w, apperrors.Newf(apperrors.ErrValidation, "unknown range %q", rangeLabel))
		return
	}

	entries, err := h.store.ListEntries(r.Context(), store.SortSpec{Field: store.SortByDate, Desc: true})
	if err != nil {
		writeError(w, err)
		return
	}

	windowed := query.WithinRange(entries, start, now)
	writeJSON(w, http.StatusOK, insightsResponse{
		Insights:       query.BuildInsights(windowed, rangeLabel),
		AllTags:        query.AllTags(entries),
		AllEmotions:    query.AllEmotions(entries),
		AllMoods:       query.AllMoods(entries),
		CountByJournal: query.CountByJournal(entries),
	})
}
