package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/query"
	"github.com/Mohameddacar/xasuusqor/internal/services"
	"github.com/Mohameddacar/xasuusqor/internal/store"
)

// EntryHandler handles entry CRUD, filtered listing and the memories
// surface.
type EntryHandler struct {
	entries *services.EntryService
	store   store.EntryStore
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entries *services.EntryService, s store.EntryStore) *EntryHandler {
	return &EntryHandler{entries: entries, store: s}
}

// List handles GET /entries with optional filter parameters:
// q, journal_id, favorites, tags, emotions, mood, start, end, sort.
// Filtering runs over the fetched snapshot; the store only sorts.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params := r.URL.Query()
	sort := store.ParseSortDirective(params.Get("sort"))
	entries, err := h.store.ListEntries(r.Context(), sort)
	if err != nil {
		writeError(w, err)
		return
	}

	criteria := query.Criteria{
		Text:          params.Get("q"),
		JournalID:     params.Get("journal_id"),
		FavoritesOnly: params.Get("favorites") == "true",
		Tags:          splitList(params.Get("tags")),
		Emotions:      splitList(params.Get("emotions")),
		Mood:          params.Get("mood"),
		Dates: query.DateRange{
			Start: params.Get("start"),
			End:   params.Get("end"),
		},
	}
	writeJSON(w, http.StatusOK, query.Filter(entries, criteria))
}

// Archive handles GET /entries/archive: entries grouped by calendar
// month, newest month first.
func (h *EntryHandler) Archive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries, err := h.store.ListEntries(r.Context(), store.SortSpec{Field: store.SortByDate, Desc: true})
	if err != nil {
		writeError(w, err)
		return
	}

	type monthGroup struct {
		Label   string                 `json:"label"`
		Entries []*models.JournalEntry `json:"entries"`
	}
	groups := query.GroupByMonth(entries)
	out := make([]monthGroup, 0, len(groups))
	for _, g := range groups {
		label := g.Key.Label()
		if (g.Key == query.MonthKey{}) {
			label = "Undated"
		}
		out = append(out, monthGroup{Label: label, Entries: g.Entries})
	}
	writeJSON(w, http.StatusOK, out)
}

// OnThisDay handles GET /entries/on-this-day: past entries written on
// today's month and day, most recent year first.
func (h *EntryHandler) OnThisDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	today := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "date must be YYYY-MM-DD", err))
			return
		}
		today = parsed
	}

	entries, err := h.store.ListEntries(r.Context(), store.SortSpec{})
	if err != nil {
		writeError(w, err)
		return
	}

	type memory struct {
		Entry    *models.JournalEntry `json:"entry"`
		YearsAgo int                  `json:"years_ago"`
	}
	memories := query.OnThisDay(entries, today)
	out := make([]memory, 0, len(memories))
	for _, m := range memories {
		out = append(out, memory{Entry: m.Entry, YearsAgo: m.YearsAgo})
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /entries?analyze=true
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var entry models.JournalEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}

	analyze := r.URL.Query().Get("analyze") == "true"
	created, err := h.entries.Create(r.Context(), &entry, analyze)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /entries/{id}?analyze=true with a partial body.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := pathID(r, "/entries/")

	var patch entryPatchBody
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}
	if err := patch.validate(); err != nil {
		writeError(w, err)
		return
	}

	analyze := r.URL.Query().Get("analyze") == "true"
	updated, err := h.entries.Update(r.Context(), id, patch.toPatch(), analyze)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /entries/{id}
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := pathID(r, "/entries/")

	if err := h.entries.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// entryPatchBody mirrors store.EntryPatch with json tags. Absent fields
// stay nil and keep their stored values.
type entryPatchBody struct {
	JournalID        *string                    `json:"journal_id"`
	Title            *string                    `json:"title"`
	Content          *string                    `json:"content"`
	Summary          *string                    `json:"summary"`
	Date             *string                    `json:"date"`
	Mood             *models.Mood               `json:"mood"`
	Tags             *[]string                  `json:"tags"`
	AutoTags         *[]string                  `json:"auto_tags"`
	Emotions         *[]string                  `json:"emotions"`
	KeyThemes        *[]string                  `json:"key_themes"`
	MediaAttachments *[]models.MediaAttachment  `json:"media_attachments"`
	AudioURL         *string                    `json:"audio_url"`
	Location         *models.Location           `json:"location"`
	TemplateUsed     *string                    `json:"template_used"`
	IsFavorite       *bool                      `json:"is_favorite"`
	Source           *models.EntrySource        `json:"source"`
}

func (b *entryPatchBody) validate() error {
	if b.Title != nil && strings.TrimSpace(*b.Title) == "" {
		return apperrors.New(apperrors.ErrValidation, "entry title cannot be empty")
	}
	if b.Content != nil && strings.TrimSpace(*b.Content) == "" {
		return apperrors.New(apperrors.ErrValidation, "entry content cannot be empty")
	}
	if b.Mood != nil && !b.Mood.Valid() {
		return apperrors.Newf(apperrors.ErrValidation, "unknown mood %q", *b.Mood)
	}
	if b.Date != nil && *b.Date != "" {
		if _, err := time.Parse(models.DateLayout, *b.Date); err != nil {
			return apperrors.Wrap(apperrors.ErrValidation, "entry date must be YYYY-MM-DD", err)
		}
	}
	return nil
}

func (b *entryPatchBody) toPatch() store.EntryPatch {
	return store.EntryPatch{
		JournalID:        b.JournalID,
		Title:            b.Title,
		Content:          b.Content,
		Summary:          b.Summary,
		Date:             b.Date,
		Mood:             b.Mood,
		Tags:             b.Tags,
		AutoTags:         b.AutoTags,
		Emotions:         b.Emotions,
		KeyThemes:        b.KeyThemes,
		MediaAttachments: b.MediaAttachments,
		AudioURL:         b.AudioURL,
		Location:         b.Location,
		TemplateUsed:     b.TemplateUsed,
		IsFavorite:       b.IsFavorite,
		Source:           b.Source,
	}
}

// splitList parses a comma-separated query value into a slice, dropping
// empty items.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
