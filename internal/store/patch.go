package store

import "github.com/Mohameddacar/xasuusqor/internal/models"

// Apply merges the patch into the journal. Nil fields are left untouched.
func (p JournalPatch) Apply(j *models.Journal) {
	if p.Name != nil {
		j.Name = *p.Name
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Color != nil {
		j.Color = *p.Color
	}
	if p.Icon != nil {
		j.Icon = *p.Icon
	}
	if p.IsDefault != nil {
		j.IsDefault = *p.IsDefault
	}
}

// Apply merges the patch into the entry. Nil fields are left untouched;
// id and created_date are server-assigned and never patched.
func (p EntryPatch) Apply(e *models.JournalEntry) {
	if p.JournalID != nil {
		e.JournalID = *p.JournalID
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Summary != nil {
		summary := *p.Summary
		e.Summary = &summary
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Mood != nil {
		e.Mood = *p.Mood
	}
	if p.Tags != nil {
		e.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.AutoTags != nil {
		e.AutoTags = append([]string(nil), (*p.AutoTags)...)
	}
	if p.Emotions != nil {
		e.Emotions = append([]string(nil), (*p.Emotions)...)
	}
	if p.KeyThemes != nil {
		e.KeyThemes = append([]string(nil), (*p.KeyThemes)...)
	}
	if p.MediaAttachments != nil {
		e.MediaAttachments = append([]models.MediaAttachment(nil), (*p.MediaAttachments)...)
	}
	if p.AudioURL != nil {
		url := *p.AudioURL
		e.AudioURL = &url
	}
	if p.Location != nil {
		loc := *p.Location
		e.Location = &loc
	}
	if p.TemplateUsed != nil {
		name := *p.TemplateUsed
		e.TemplateUsed = &name
	}
	if p.IsFavorite != nil {
		e.IsFavorite = *p.IsFavorite
	}
	if p.Source != nil {
		e.Source = *p.Source
	}
}

// Apply merges the patch into the goal. Nil fields are left untouched.
func (p GoalPatch) Apply(g *models.Goal) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.Progress != nil {
		g.Progress = *p.Progress
	}
	if p.TargetDate != nil {
		date := *p.TargetDate
		g.TargetDate = &date
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
}
