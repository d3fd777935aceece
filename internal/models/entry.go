package models

import (
	"strings"
	"time"

	"github.com/Mohameddacar/xasuusqor/internal/errors"
)

// DateLayout is the calendar-date format used for JournalEntry.Date and
// Goal.TargetDate. The date an entry is *about* is a plain calendar day,
// distinct from the server-assigned created_date timestamp.
const DateLayout = "2006-01-02"

// MediaAttachment is a photo or video attached to an entry.
type MediaAttachment struct {
	URL           string    `json:"url"`
	Type          MediaType `json:"type"`
	Caption       string    `json:"caption,omitempty"`
	AutoCaption   string    `json:"auto_caption,omitempty"`
	ExtractedText string    `json:"extracted_text,omitempty"`
}

// Location is an optional place reference on an entry.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// JournalEntry is a single dated journal record with rich content and
// optional AI enrichment. Tags are user-authored; AutoTags, Emotions,
// KeyThemes and Summary come from the annotation service and stay separate.
type JournalEntry struct {
	ID               string            `json:"id"`
	JournalID        string            `json:"journal_id"`
	Title            string            `json:"title"`
	Content          string            `json:"content"` // rich-text HTML
	Summary          *string           `json:"summary,omitempty"`
	Date             string            `json:"date"` // calendar date, DateLayout
	Mood             Mood              `json:"mood,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	AutoTags         []string          `json:"auto_tags,omitempty"`
	Emotions         []string          `json:"emotions,omitempty"`
	KeyThemes        []string          `json:"key_themes,omitempty"`
	MediaAttachments []MediaAttachment `json:"media_attachments,omitempty"`
	AudioURL         *string           `json:"audio_url,omitempty"`
	Location         *Location         `json:"location,omitempty"`
	TemplateUsed     *string           `json:"template_used,omitempty"`
	IsFavorite       bool              `json:"is_favorite"`
	Source           EntrySource       `json:"source,omitempty"`
	CreatedDate      time.Time         `json:"created_date"`
}

// Validate checks field invariants before persistence is attempted.
// Validation failures are caught before any store call.
func (e *JournalEntry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New(errors.ErrValidation, "entry title is required")
	}
	if strings.TrimSpace(e.Content) == "" {
		return errors.New(errors.ErrValidation, "entry content is required")
	}
	if !e.Mood.Valid() {
		return errors.Newf(errors.ErrValidation, "unknown mood %q", e.Mood)
	}
	if e.Date != "" {
		if _, err := time.Parse(DateLayout, e.Date); err != nil {
			return errors.Wrap(errors.ErrValidation, "entry date must be YYYY-MM-DD", err)
		}
	}
	for _, m := range e.MediaAttachments {
		if !m.Type.Valid() {
			return errors.Newf(errors.ErrValidation, "unknown media type %q", m.Type)
		}
	}
	return nil
}

// DateTime parses the entry's calendar date. The boolean is false when the
// date is missing or malformed; callers treat such entries as "no match"
// for date-based criteria rather than failing.
func (e *JournalEntry) DateTime() (time.Time, bool) {
	if e.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SummaryText returns the summary or the empty string when unset.
func (e *JournalEntry) SummaryText() string {
	if e.Summary == nil {
		return ""
	}
	return *e.Summary
}
