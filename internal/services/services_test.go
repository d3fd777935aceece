// Package services tests for the save pipeline, goal stepping, templates
// and email ingestion.
package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Mohameddacar/xasuusqor/internal/annotate"
	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/store"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func premiumStore() *store.Memory {
	return store.NewMemory(&models.User{
		ID: "u1", Name: "Test User", Email: "test@example.com",
		SubscriptionPlan: models.PlanPremium,
	})
}

func freeStore() *store.Memory {
	return store.NewMemory(&models.User{
		ID: "u1", Name: "Test User", Email: "test@example.com",
		SubscriptionPlan: models.PlanFree,
	})
}

func newAnnotator(invoker annotate.ModelInvoker) annotate.Annotator {
	return annotate.NewService(invoker, nil, time.Second, time.Second)
}

func TestEntryCreateWithAnalysis(t *testing.T) {
	ctx := context.Background()
	events := &recordingPublisher{}
	svc := NewEntryService(premiumStore(), newAnnotator(&annotate.Simulated{}), events)

	created, err := svc.Create(ctx, &models.JournalEntry{
		Title:   "A good day",
		Content: "<p>We spent the afternoon with family.</p>",
	}, true)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(created.AutoTags) == 0 {
		t.Error("analysis should populate auto_tags")
	}
	if created.Summary == nil {
		t.Error("analysis should populate summary")
	}
	if len(created.Emotions) == 0 || len(created.KeyThemes) == 0 {
		t.Error("analysis should populate emotions and key_themes")
	}
	if created.Date == "" {
		t.Error("Create should default date to today")
	}
	if created.Source != models.SourceWeb {
		t.Errorf("Source = %q, want web", created.Source)
	}

	types := events.types()
	if len(types) != 2 || types[0] != EventAnnotationStarted || types[1] != EventAnnotationCompleted {
		t.Errorf("events = %v, want [started completed]", types)
	}
}

func TestEntryCreateSavesWhenAnalysisFails(t *testing.T) {
	ctx := context.Background()
	events := &recordingPublisher{}
	st := premiumStore()
	svc := NewEntryService(st, newAnnotator(&annotate.Simulated{Fail: true}), events)

	created, err := svc.Create(ctx, &models.JournalEntry{
		Title:   "Still saves",
		Content: "content",
	}, true)
	if err != nil {
		t.Fatalf("Create must not fail when annotation fails: %v", err)
	}

	if len(created.AutoTags) != 0 || created.Summary != nil {
		t.Error("failed analysis must leave enrichment empty")
	}

	entries, _ := st.ListEntries(ctx, store.SortSpec{})
	if len(entries) != 1 {
		t.Fatalf("entry was not persisted")
	}

	types := events.types()
	if len(types) != 2 || types[1] != EventAnnotationFailed {
		t.Errorf("events = %v, want [started failed]", types)
	}
}

func TestEntryCreateSkipsAnalysisForFreePlan(t *testing.T) {
	ctx := context.Background()
	events := &recordingPublisher{}
	svc := NewEntryService(freeStore(), newAnnotator(&annotate.Simulated{}), events)

	created, err := svc.Create(ctx, &models.JournalEntry{Title: "t", Content: "c"}, true)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(created.AutoTags) != 0 || created.Summary != nil {
		t.Error("free plan must not receive AI enrichment")
	}
	if len(events.types()) != 0 {
		t.Errorf("no annotation events expected, got %v", events.types())
	}
}

func TestEntryCreateMediaCap(t *testing.T) {
	ctx := context.Background()
	svc := NewEntryService(freeStore(), newAnnotator(&annotate.Simulated{}), nil)

	attachments := make([]models.MediaAttachment, models.FreePlanMediaLimit+1)
	for i := range attachments {
		attachments[i] = models.MediaAttachment{URL: "/files/x.jpg", Type: models.MediaImage}
	}

	_, err := svc.Create(ctx, &models.JournalEntry{
		Title: "t", Content: "c", MediaAttachments: attachments,
	}, false)
	if !apperrors.Is(err, apperrors.ErrPlanLimit) {
		t.Errorf("got %v, want PLAN_LIMIT", err)
	}

	// At the cap is fine.
	_, err = svc.Create(ctx, &models.JournalEntry{
		Title: "t", Content: "c", MediaAttachments: attachments[:models.FreePlanMediaLimit],
	}, false)
	if err != nil {
		t.Errorf("at-cap create failed: %v", err)
	}
}

func TestEntryCreatePremiumUnlimitedMedia(t *testing.T) {
	ctx := context.Background()
	svc := NewEntryService(premiumStore(), newAnnotator(&annotate.Simulated{}), nil)

	attachments := make([]models.MediaAttachment, models.FreePlanMediaLimit*3)
	for i := range attachments {
		attachments[i] = models.MediaAttachment{
			URL: "/files/x.jpg", Type: models.MediaImage, Caption: "c",
		}
	}

	if _, err := svc.Create(ctx, &models.JournalEntry{
		Title: "t", Content: "c", MediaAttachments: attachments,
	}, false); err != nil {
		t.Errorf("premium create failed: %v", err)
	}
}

func TestEntryCreateCaptionsImages(t *testing.T) {
	ctx := context.Background()
	svc := NewEntryService(premiumStore(), newAnnotator(&annotate.Simulated{}), nil)

	created, err := svc.Create(ctx, &models.JournalEntry{
		Title: "t", Content: "c",
		MediaAttachments: []models.MediaAttachment{
			{URL: "/files/a.jpg", Type: models.MediaImage},
			{URL: "/files/b.jpg", Type: models.MediaImage, Caption: "user wrote this"},
			{URL: "/files/c.mp4", Type: models.MediaVideo},
		},
	}, true)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.MediaAttachments[0].AutoCaption == "" {
		t.Error("uncaptioned image should receive an auto caption")
	}
	if created.MediaAttachments[1].AutoCaption != "" {
		t.Error("image with a user caption must not be auto-captioned")
	}
	if created.MediaAttachments[2].AutoCaption != "" {
		t.Error("videos must not be captioned")
	}
}

func TestEntryValidationBeforeStore(t *testing.T) {
	ctx := context.Background()
	st := premiumStore()
	svc := NewEntryService(st, newAnnotator(&annotate.Simulated{}), nil)

	if _, err := svc.Create(ctx, &models.JournalEntry{Title: "no content"}, false); !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("got %v, want VALIDATION_FAILED", err)
	}
	entries, _ := st.ListEntries(ctx, store.SortSpec{})
	if len(entries) != 0 {
		t.Error("invalid entry must not reach the store")
	}
}

func TestGoalStepProgress(t *testing.T) {
	ctx := context.Background()
	svc := NewGoalService(premiumStore())

	goal, err := svc.Create(ctx, &models.Goal{
		Title: "Read 12 books", Category: models.CategoryLearning, Progress: 95,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if goal.Status != models.GoalActive {
		t.Errorf("Status = %q, want active", goal.Status)
	}

	// +10 clamps to 100 and completes.
	stepped, err := svc.StepProgress(ctx, goal.ID, ProgressStep)
	if err != nil {
		t.Fatalf("StepProgress failed: %v", err)
	}
	if stepped.Progress != 100 {
		t.Errorf("Progress = %d, want 100", stepped.Progress)
	}
	if stepped.Status != models.GoalCompleted {
		t.Errorf("Status = %q, want completed", stepped.Status)
	}

	// -10 drops below 100 and reactivates.
	stepped, err = svc.StepProgress(ctx, goal.ID, -ProgressStep)
	if err != nil {
		t.Fatalf("StepProgress failed: %v", err)
	}
	if stepped.Progress != 90 || stepped.Status != models.GoalActive {
		t.Errorf("got progress %d status %q, want 90 active", stepped.Progress, stepped.Status)
	}

	// Clamp at zero.
	for i := 0; i < 20; i++ {
		stepped, err = svc.StepProgress(ctx, goal.ID, -ProgressStep)
		if err != nil {
			t.Fatalf("StepProgress failed: %v", err)
		}
	}
	if stepped.Progress != 0 {
		t.Errorf("Progress = %d, want 0", stepped.Progress)
	}

	if _, err := svc.StepProgress(ctx, "missing", ProgressStep); !apperrors.Is(err, apperrors.ErrGoalNotFound) {
		t.Errorf("got %v, want GOAL_NOT_FOUND", err)
	}
}

func TestGoalUpdateClampsAndDerivesStatus(t *testing.T) {
	ctx := context.Background()
	svc := NewGoalService(premiumStore())

	goal, _ := svc.Create(ctx, &models.Goal{Title: "g", Category: models.CategoryWork})

	progress := 150
	updated, err := svc.Update(ctx, goal.ID, store.GoalPatch{Progress: &progress})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Progress != 100 || updated.Status != models.GoalCompleted {
		t.Errorf("got progress %d status %q, want 100 completed", updated.Progress, updated.Status)
	}
}

func TestTemplateList(t *testing.T) {
	svc := NewTemplateService()
	templates := svc.List()
	if len(templates) != 6 {
		t.Fatalf("got %d templates, want 6", len(templates))
	}
	if templates[0].Name != "Daily Reflection" {
		t.Errorf("templates[0] = %q", templates[0].Name)
	}
}

func TestTemplateDraft(t *testing.T) {
	svc := NewTemplateService()

	draft, err := svc.Draft("Gratitude Journal")
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}
	if draft.Title != "Gratitude Journal" {
		t.Errorf("Title = %q", draft.Title)
	}
	if !strings.Contains(draft.Content, "<h1") {
		t.Errorf("markdown should render to HTML, got %q", draft.Content)
	}
	if draft.TemplateUsed == nil || *draft.TemplateUsed != "Gratitude Journal" {
		t.Error("template_used must be recorded")
	}
	if draft.ID != "" {
		t.Error("draft must not be persisted")
	}

	if _, err := svc.Draft("No Such Template"); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("got %v, want NOT_FOUND", err)
	}
}

func TestEmailIngest(t *testing.T) {
	ctx := context.Background()
	st := premiumStore()
	entries := NewEntryService(st, newAnnotator(&annotate.Simulated{}), nil)
	svc := NewEmailIngestService(entries, st)

	if _, err := st.CreateJournal(ctx, &models.Journal{Name: "Daily", IsDefault: true}); err != nil {
		t.Fatalf("CreateJournal failed: %v", err)
	}
	journals, _ := st.ListJournals(ctx, store.SortSpec{})

	entry, err := svc.Ingest(ctx, "Thoughts from the road", "# Hello\n\nSome *markdown* text.")
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if entry.Source != models.SourceEmail {
		t.Errorf("Source = %q, want email", entry.Source)
	}
	if entry.JournalID != journals[0].ID {
		t.Error("entry should land in the default journal")
	}
	if !strings.Contains(entry.Content, "<h1") || !strings.Contains(entry.Content, "<em>markdown</em>") {
		t.Errorf("body should render to HTML, got %q", entry.Content)
	}
	if entry.Title != "Thoughts from the road" {
		t.Errorf("Title = %q", entry.Title)
	}
}

func TestEmailIngestValidation(t *testing.T) {
	ctx := context.Background()
	st := premiumStore()
	entries := NewEntryService(st, newAnnotator(&annotate.Simulated{}), nil)
	svc := NewEmailIngestService(entries, st)

	if _, err := svc.Ingest(ctx, "subject", "   "); !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("empty body: got %v, want VALIDATION_FAILED", err)
	}

	// No journals at all.
	if _, err := svc.Ingest(ctx, "subject", "body"); !apperrors.Is(err, apperrors.ErrJournalNotFound) {
		t.Errorf("no journals: got %v, want JOURNAL_NOT_FOUND", err)
	}
}

func TestEmailIngestDefaultSubject(t *testing.T) {
	ctx := context.Background()
	st := premiumStore()
	entries := NewEntryService(st, newAnnotator(&annotate.Simulated{}), nil)
	svc := NewEmailIngestService(entries, st)
	st.CreateJournal(ctx, &models.Journal{Name: "Daily"})

	entry, err := svc.Ingest(ctx, "", "some text")
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if !strings.HasPrefix(entry.Title, "Journal entry from ") {
		t.Errorf("Title = %q", entry.Title)
	}
}
