package annotate

import (
	"context"
	"time"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
)

// Simulated is the offline stand-in for the model provider. It resolves
// deterministically, with optional latency and forced failure for tests
// and development without network access.
type Simulated struct {
	// Latency delays each invocation, approximating a provider round trip.
	Latency time.Duration

	// Fail forces every invocation to fail with ANNOTATION_FAILED.
	Fail bool
}

var _ ModelInvoker = (*Simulated)(nil)

var simulatedSummary = "A positive reflection on family time and gratitude"

// Invoke resolves with canned output: a fixed structured analysis for
// schema requests, echoed free text otherwise.
func (s *Simulated) Invoke(ctx context.Context, req Request) (*Response, error) {
	if s.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.Latency):
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Fail {
		return nil, apperrors.New(apperrors.ErrAnnotationFailed, "simulated model failure")
	}

	if len(req.ResponseSchema) > 0 {
		summary := simulatedSummary
		return &Response{
			Analysis: &EntryAnalysis{
				SuggestedTags: []string{"gratitude", "family", "happiness"},
				Summary:       &summary,
				Emotions:      []string{"joy", "gratitude"},
				KeyThemes:     []string{"family", "gratitude"},
			},
		}, nil
	}

	return &Response{Text: "This is a simulated model response for the prompt: " + req.Prompt}, nil
}
