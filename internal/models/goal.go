package models

import (
	"strings"
	"time"

	"github.com/Mohameddacar/xasuusqor/internal/errors"
)

// Goal tracks a user aspiration with stepped progress.
type Goal struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    GoalCategory `json:"category"`
	Progress    int          `json:"progress"` // 0-100
	TargetDate  *string      `json:"target_date,omitempty"`
	Status      GoalStatus   `json:"status"`
	CreatedDate time.Time    `json:"created_date"`
}

// Validate checks field invariants before persistence.
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return errors.New(errors.ErrValidation, "goal title is required")
	}
	if !g.Category.Valid() {
		return errors.Newf(errors.ErrValidation, "unknown goal category %q", g.Category)
	}
	if g.Progress < 0 || g.Progress > 100 {
		return errors.Newf(errors.ErrValidation, "goal progress %d out of range [0,100]", g.Progress)
	}
	if g.TargetDate != nil && *g.TargetDate != "" {
		if _, err := time.Parse(DateLayout, *g.TargetDate); err != nil {
			return errors.Wrap(errors.ErrValidation, "goal target_date must be YYYY-MM-DD", err)
		}
	}
	return nil
}

// ClampProgress clamps a raw progress value into [0,100].
func ClampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// StatusForProgress derives the goal status from a progress value.
// Crossing 100 completes the goal; dropping back below reactivates it.
func StatusForProgress(progress int) GoalStatus {
	if progress >= 100 {
		return GoalCompleted
	}
	return GoalActive
}
