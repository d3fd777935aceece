package services

import (
	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/richtext"
)

// Template is a canned entry starting point. Content is markdown; it is
// rendered to the rich-text HTML format when a draft is created.
type Template struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

var entryTemplates = []Template{
	{
		Name:    "Daily Reflection",
		Title:   "Daily Reflection",
		Content: "# Today's Reflection\n\n**What went well today?**\n\n\n**What could have been better?**\n\n\n**What am I grateful for?**\n\n\n**Tomorrow's intentions:**\n- ",
	},
	{
		Name:    "Gratitude Journal",
		Title:   "Gratitude Journal",
		Content: "# Today I'm Grateful For\n\n**Three things I'm grateful for:**\n1. \n2. \n3. \n\n**Why these matter to me:**\n\n\n**How can I express this gratitude?**\n",
	},
	{
		Name:    "Goal Setting",
		Title:   "Goal Setting",
		Content: "# My Goals\n\n**Short-term goals (this week):**\n- \n\n**Long-term goals (this month/year):**\n- \n\n**Action steps:**\n- \n\n**Potential obstacles and solutions:**\n",
	},
	{
		Name:    "Dream Journal",
		Title:   "Dream Journal",
		Content: "# Dream Log\n\n**Date:** \n\n**Dream description:**\n\n\n**Emotions felt:**\n\n\n**Possible meanings or insights:**\n",
	},
	{
		Name:    "Self-Care Check",
		Title:   "Self-Care Check-In",
		Content: "# Self-Care Reflection\n\n**Physical wellness:**\n- Exercise: \n- Sleep: \n- Nutrition: \n\n**Mental wellness:**\n- Stress level: \n- Mood: \n\n**What I need today:**\n",
	},
	{
		Name:    "Creative Writing",
		Title:   "Creative Writing",
		Content: "# Creative Thoughts\n\n*Let your imagination flow...*\n\n",
	},
}

// TemplateService serves the canned entry templates.
type TemplateService struct{}

// NewTemplateService creates a template service.
func NewTemplateService() *TemplateService {
	return &TemplateService{}
}

// List returns all templates in display order.
func (s *TemplateService) List() []Template {
	out := make([]Template, len(entryTemplates))
	copy(out, entryTemplates)
	return out
}

// Draft builds an unpersisted entry prefilled from the named template,
// with the markdown body rendered to HTML and template_used recorded.
func (s *TemplateService) Draft(name string) (*models.JournalEntry, error) {
	for _, tpl := range entryTemplates {
		if tpl.Name != name {
			continue
		}
		content, err := richtext.RenderMarkdown(tpl.Content)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternal, "failed to render template", err)
		}
		used := tpl.Name
		return &models.JournalEntry{
			Title:        tpl.Title,
			Content:      content,
			TemplateUsed: &used,
		}, nil
	}
	return nil, apperrors.Newf(apperrors.ErrNotFound, "template %q not found", name)
}
