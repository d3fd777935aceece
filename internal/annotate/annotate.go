// Package annotate provides the AI annotation service: structured entry
// analysis (tags, summary, emotions, themes), free-text model calls for
// captioning, transcription and OCR, and file upload for model inputs.
//
// Annotation is advisory. Callers must never block persistence on its
// success: a failed or expired call means the entry saves with empty
// enrichment fields.
package annotate

import (
	"context"
	"encoding/json"
	"io"
	"time"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/media"
)

// Request is a single model invocation. With a ResponseSchema the model
// must return a structured object of the documented shape; without one it
// returns free text. FileURLs reference previously uploaded files the
// model should consider (images, audio).
type Request struct {
	Prompt         string          `json:"prompt"`
	ResponseSchema json.RawMessage `json:"response_json_schema,omitempty"`
	FileURLs       []string        `json:"file_urls,omitempty"`
}

// Response carries either free text or the parsed structured analysis,
// depending on whether the request supplied a schema.
type Response struct {
	Text     string         `json:"text,omitempty"`
	Analysis *EntryAnalysis `json:"analysis,omitempty"`
}

// EntryAnalysis is the structured entry enrichment shape.
type EntryAnalysis struct {
	SuggestedTags []string `json:"suggested_tags"`
	Summary       *string  `json:"summary"`
	Emotions      []string `json:"emotions"`
	KeyThemes     []string `json:"key_themes"`
}

// EntryAnalysisSchema is the JSON schema sent with entry analysis requests.
var EntryAnalysisSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"suggested_tags": {"type": "array", "items": {"type": "string"}},
		"summary": {"type": "string"},
		"emotions": {"type": "array", "items": {"type": "string"}},
		"key_themes": {"type": "array", "items": {"type": "string"}}
	}
}`)

// ModelInvoker performs a single model call. Implementations: LLMClient
// (OpenAI-compatible endpoint) and Simulated (deterministic, offline).
type ModelInvoker interface {
	Invoke(ctx context.Context, req Request) (*Response, error)
}

// Annotator is the full annotation service surface consumed by the save
// pipeline and the upload handlers.
type Annotator interface {
	// InvokeModel runs a model call under the service's bounded timeout.
	InvokeModel(ctx context.Context, req Request) (*Response, error)

	// UploadFile stores binary content and returns its stable URL.
	// Callers must not assume the URL is reachable synchronously.
	UploadFile(ctx context.Context, filename string, r io.Reader) (*media.StoredFile, error)
}

// Service wraps a ModelInvoker and upload storage with bounded timeouts.
// Timeout expiry is a recoverable failure, never fatal.
type Service struct {
	invoker ModelInvoker
	storage *media.Storage

	invokeTimeout time.Duration
	uploadTimeout time.Duration
}

// NewService creates an annotation service. Non-positive timeouts fall
// back to defaults (30s invoke, 15s upload).
func NewService(invoker ModelInvoker, storage *media.Storage, invokeTimeout, uploadTimeout time.Duration) *Service {
	if invokeTimeout <= 0 {
		invokeTimeout = 30 * time.Second
	}
	if uploadTimeout <= 0 {
		uploadTimeout = 15 * time.Second
	}
	return &Service{
		invoker:       invoker,
		storage:       storage,
		invokeTimeout: invokeTimeout,
		uploadTimeout: uploadTimeout,
	}
}

var _ Annotator = (*Service)(nil)

// InvokeModel runs the model call with the service's timeout.
func (s *Service) InvokeModel(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.invokeTimeout)
	defer cancel()

	resp, err := s.invoker.Invoke(ctx, req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.Wrap(apperrors.ErrAnnotationTimeout, "model invocation timed out", err)
		}
		if apperrors.Is(err, apperrors.ErrAnnotationFailed) || apperrors.Is(err, apperrors.ErrAnnotationTimeout) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrAnnotationFailed, "model invocation failed", err)
	}
	return resp, nil
}

// UploadFile stores the content under the upload timeout.
func (s *Service) UploadFile(ctx context.Context, filename string, r io.Reader) (*media.StoredFile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	type result struct {
		file *media.StoredFile
		err  error
	}
	done := make(chan result, 1)
	go func() {
		file, err := s.storage.Store(filename, r)
		done <- result{file, err}
	}()

	select {
	case <-ctx.Done():
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, "upload timed out", ctx.Err())
	case res := <-done:
		return res.file, res.err
	}
}
