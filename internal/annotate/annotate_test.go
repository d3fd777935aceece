// Package annotate tests for the annotation service and providers.
package annotate

import (
	"context"
	"strings"
	"testing"
	"time"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/media"
)

func TestSimulatedStructuredAnalysis(t *testing.T) {
	sim := &Simulated{}
	resp, err := sim.Invoke(context.Background(), EntryAnalysisRequest("A day", "We had a lovely afternoon."))
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if resp.Analysis == nil {
		t.Fatal("schema request should return a structured analysis")
	}
	if len(resp.Analysis.SuggestedTags) == 0 {
		t.Error("analysis should carry suggested tags")
	}
	if resp.Analysis.Summary == nil || *resp.Analysis.Summary == "" {
		t.Error("analysis should carry a summary")
	}
	if len(resp.Analysis.Emotions) == 0 || len(resp.Analysis.KeyThemes) == 0 {
		t.Error("analysis should carry emotions and key themes")
	}
}

func TestSimulatedFreeText(t *testing.T) {
	sim := &Simulated{}
	resp, err := sim.Invoke(context.Background(), Request{Prompt: CaptionPrompt})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if resp.Analysis != nil {
		t.Error("free-text request should not return a structured analysis")
	}
	if !strings.Contains(resp.Text, CaptionPrompt) {
		t.Errorf("simulated text should echo the prompt, got %q", resp.Text)
	}
}

func TestSimulatedFailure(t *testing.T) {
	sim := &Simulated{Fail: true}
	_, err := sim.Invoke(context.Background(), Request{Prompt: "x"})
	if !apperrors.Is(err, apperrors.ErrAnnotationFailed) {
		t.Errorf("got %v, want ANNOTATION_FAILED", err)
	}
}

func TestServiceInvokeTimeout(t *testing.T) {
	slow := &Simulated{Latency: 200 * time.Millisecond}
	svc := NewService(slow, nil, 20*time.Millisecond, time.Second)

	_, err := svc.InvokeModel(context.Background(), Request{Prompt: "x"})
	if !apperrors.Is(err, apperrors.ErrAnnotationTimeout) {
		t.Errorf("got %v, want ANNOTATION_TIMEOUT", err)
	}
}

func TestServiceInvokeFailurePassthrough(t *testing.T) {
	svc := NewService(&Simulated{Fail: true}, nil, time.Second, time.Second)

	_, err := svc.InvokeModel(context.Background(), Request{Prompt: "x"})
	if !apperrors.Is(err, apperrors.ErrAnnotationFailed) {
		t.Errorf("got %v, want ANNOTATION_FAILED", err)
	}
}

func TestServiceUploadFile(t *testing.T) {
	storage, err := media.NewStorage(t.TempDir(), "/files/")
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	svc := NewService(&Simulated{}, storage, time.Second, time.Second)

	stored, err := svc.UploadFile(context.Background(), "photo.jpg", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	if !strings.HasPrefix(stored.URL, "/files/") {
		t.Errorf("URL = %q, want /files/ prefix", stored.URL)
	}
	if !strings.HasSuffix(stored.URL, ".jpg") {
		t.Errorf("URL = %q, want .jpg suffix", stored.URL)
	}
}

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"bare object", `{"suggested_tags":["a"],"summary":"s","emotions":[],"key_themes":[]}`, false},
		{"wrapped in prose", "Here is the analysis:\n```json\n{\"suggested_tags\":[\"a\"]}\n```", false},
		{"no object", "sorry, cannot help", true},
		{"malformed json", "{not json}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := parseAnalysis(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseAnalysis error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && analysis == nil {
				t.Error("nil analysis without error")
			}
		})
	}
}

func TestParseAnalysisEmptySummaryBecomesNil(t *testing.T) {
	analysis, err := parseAnalysis(`{"suggested_tags":[],"summary":"  ","emotions":[],"key_themes":[]}`)
	if err != nil {
		t.Fatalf("parseAnalysis failed: %v", err)
	}
	if analysis.Summary != nil {
		t.Errorf("blank summary should normalize to nil, got %q", *analysis.Summary)
	}
}
