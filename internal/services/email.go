package services

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/richtext"
	"github.com/Mohameddacar/xasuusqor/internal/store"
)

// EmailIngestService turns an inbound email into a journal entry in the
// default journal. The body is treated as markdown.
type EmailIngestService struct {
	entries  *EntryService
	journals store.JournalStore
}

// NewEmailIngestService creates an email ingestion service.
func NewEmailIngestService(entries *EntryService, journals store.JournalStore) *EmailIngestService {
	return &EmailIngestService{entries: entries, journals: journals}
}

// Ingest renders the email body to HTML and saves it as an entry with
// source "email" dated today. The subject becomes the title; an empty
// subject falls back to a dated one.
func (s *EmailIngestService) Ingest(ctx context.Context, subject, body string) (*models.JournalEntry, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.New(apperrors.ErrValidation, "email body is empty")
	}

	content, err := richtext.RenderMarkdown(body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalid, "failed to render email body", err)
	}

	journals, err := s.journals.ListJournals(ctx, store.SortSpec{})
	if err != nil {
		return nil, err
	}
	target := models.NewJournalIndex(journals).Default(journals)
	if target == nil {
		return nil, apperrors.New(apperrors.ErrJournalNotFound, "no journal to ingest into")
	}

	today := time.Now().UTC().Format(models.DateLayout)
	if strings.TrimSpace(subject) == "" {
		subject = "Journal entry from " + today
	}

	entry := &models.JournalEntry{
		JournalID: target.ID,
		Title:     subject,
		Content:   content,
		Date:      today,
		Source:    models.SourceEmail,
	}
	return s.entries.Create(ctx, entry, false)
}
