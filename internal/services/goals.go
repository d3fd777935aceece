package services

import (
	"context"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/store"
)

// ProgressStep is the increment applied per progress tap.
const ProgressStep = 10

// GoalService wraps goal persistence with the progress stepping rules.
type GoalService struct {
	store store.GoalStore
}

// NewGoalService creates a goal service.
func NewGoalService(s store.GoalStore) *GoalService {
	return &GoalService{store: s}
}

// Create validates and persists a new goal. Status is derived from
// progress, never taken from input.
func (s *GoalService) Create(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	goal.Status = models.StatusForProgress(goal.Progress)
	return s.store.CreateGoal(ctx, goal)
}

// Update merges the patch. When the patch moves progress, the value is
// clamped to [0,100] and the status recomputed in both directions.
func (s *GoalService) Update(ctx context.Context, id string, patch store.GoalPatch) (*models.Goal, error) {
	if patch.Progress != nil {
		clamped := models.ClampProgress(*patch.Progress)
		patch.Progress = &clamped
		status := models.StatusForProgress(clamped)
		patch.Status = &status
	}
	return s.store.UpdateGoal(ctx, id, patch)
}

// StepProgress moves the goal's progress by delta, clamps the result and
// recomputes the status. The UI steps by ProgressStep in either direction.
func (s *GoalService) StepProgress(ctx context.Context, id string, delta int) (*models.Goal, error) {
	goal, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	progress := models.ClampProgress(goal.Progress + delta)
	status := models.StatusForProgress(progress)
	return s.store.UpdateGoal(ctx, id, store.GoalPatch{
		Progress: &progress,
		Status:   &status,
	})
}

// Delete removes the goal.
func (s *GoalService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteGoal(ctx, id)
}

func (s *GoalService) find(ctx context.Context, id string) (*models.Goal, error) {
	goals, err := s.store.ListGoals(ctx, store.SortSpec{})
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, apperrors.Newf(apperrors.ErrGoalNotFound, "goal %s not found", id)
}
