package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Mohameddacar/xasuusqor/internal/annotate"
	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/logging"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/store"
)

// EntryService runs the entry save pipeline: validation, plan limits,
// optional AI enrichment, image captioning, and persistence. Annotation
// is best-effort; an entry always saves even when every model call fails.
type EntryService struct {
	store     store.Store
	annotator annotate.Annotator
	events    Publisher

	// token orders saves. An annotation result belonging to a superseded
	// save is dropped rather than applied to the newer entry.
	token atomic.Int64
}

// NewEntryService creates an entry service. A nil publisher disables
// lifecycle events.
func NewEntryService(s store.Store, annotator annotate.Annotator, events Publisher) *EntryService {
	if events == nil {
		events = NopPublisher{}
	}
	return &EntryService{store: s, annotator: annotator, events: events}
}

// Create validates and persists a new entry. With analyze set and a
// premium plan, the entry is enriched through the annotation service
// first; enrichment failure logs a warning and the entry saves with
// empty enrichment fields.
func (s *EntryService) Create(ctx context.Context, entry *models.JournalEntry, analyze bool) (*models.JournalEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	if limit := user.MediaLimit(); limit >= 0 && len(entry.MediaAttachments) > limit {
		return nil, apperrors.Newf(apperrors.ErrPlanLimit,
			"plan %q allows at most %d media attachments per entry", user.SubscriptionPlan, limit)
	}
	if entry.Date == "" {
		entry.Date = time.Now().UTC().Format(models.DateLayout)
	}
	if entry.Source == "" {
		entry.Source = models.SourceWeb
	}

	if analyze && user.IsPremium() {
		s.enrich(ctx, entry)
		s.captionAttachments(ctx, entry)
	}

	return s.store.CreateEntry(ctx, entry)
}

// Update merges the patch into the stored entry. With analyze set and a
// premium plan, the merged entry is re-enriched before the write; as on
// create, enrichment failure never fails the update.
func (s *EntryService) Update(ctx context.Context, id string, patch store.EntryPatch, analyze bool) (*models.JournalEntry, error) {
	if !analyze {
		return s.store.UpdateEntry(ctx, id, patch)
	}
	user, err := s.store.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsPremium() {
		return s.store.UpdateEntry(ctx, id, patch)
	}

	updated, err := s.store.UpdateEntry(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, updated)
	enriched := store.EntryPatch{
		Summary:   updated.Summary,
		AutoTags:  &updated.AutoTags,
		Emotions:  &updated.Emotions,
		KeyThemes: &updated.KeyThemes,
	}
	if updated.Summary == nil {
		empty := ""
		enriched.Summary = &empty
	}
	return s.store.UpdateEntry(ctx, id, enriched)
}

// Delete removes the entry.
func (s *EntryService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteEntry(ctx, id)
}

// enrich runs the structured analysis and applies the result in place.
// A stale result, one belonging to a save that another save has since
// superseded, is dropped.
func (s *EntryService) enrich(ctx context.Context, entry *models.JournalEntry) {
	token := s.token.Add(1)
	s.events.Publish(Event{Type: EventAnnotationStarted, EntryID: entry.ID})

	resp, err := s.annotator.InvokeModel(ctx, annotate.EntryAnalysisRequest(entry.Title, entry.Content))
	if err != nil {
		logging.L().Warnw("entry analysis failed, saving without enrichment",
			"title", entry.Title, "error", err)
		s.events.Publish(Event{Type: EventAnnotationFailed, EntryID: entry.ID, Payload: err.Error()})
		return
	}
	if s.token.Load() != token {
		logging.L().Debugw("dropping stale entry analysis result", "title", entry.Title)
		return
	}
	if resp.Analysis == nil {
		s.events.Publish(Event{Type: EventAnnotationFailed, EntryID: entry.ID, Payload: "no structured analysis returned"})
		return
	}

	entry.AutoTags = resp.Analysis.SuggestedTags
	entry.Emotions = resp.Analysis.Emotions
	entry.KeyThemes = resp.Analysis.KeyThemes
	entry.Summary = resp.Analysis.Summary
	s.events.Publish(Event{Type: EventAnnotationCompleted, EntryID: entry.ID, Payload: resp.Analysis})
}

// captionAttachments fills in AutoCaption for image attachments that have
// neither a user caption nor one already generated. Best-effort per
// attachment; one failure does not stop the rest.
func (s *EntryService) captionAttachments(ctx context.Context, entry *models.JournalEntry) {
	for i := range entry.MediaAttachments {
		att := &entry.MediaAttachments[i]
		if att.Type != models.MediaImage || att.Caption != "" || att.AutoCaption != "" {
			continue
		}
		resp, err := s.annotator.InvokeModel(ctx, annotate.Request{
			Prompt:   annotate.CaptionPrompt,
			FileURLs: []string{att.URL},
		})
		if err != nil {
			logging.L().Warnw("image captioning failed", "url", att.URL, "error", err)
			continue
		}
		att.AutoCaption = resp.Text
	}
}
