package annotate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
)

// LLMConfig holds the live provider configuration.
type LLMConfig struct {
	APIKey    string
	Endpoint  string // OpenAI-compatible base URL
	ModelName string
}

// LLMClient invokes an OpenAI-compatible model endpoint.
type LLMClient struct {
	model llms.Model
}

// NewLLMClient creates a client for the configured endpoint.
func NewLLMClient(cfg LLMConfig) (*LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.New(apperrors.ErrInvalid, "AI API key is required")
	}
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.ModelName),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, openai.WithBaseURL(cfg.Endpoint))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAnnotationFailed, "failed to construct model client", err)
	}
	return &LLMClient{model: model}, nil
}

var _ ModelInvoker = (*LLMClient)(nil)

// Invoke runs a single model call. With a schema in the request the model
// is instructed to return only JSON, and the first JSON object in its
// output is parsed into the structured analysis.
func (c *LLMClient) Invoke(ctx context.Context, req Request) (*Response, error) {
	parts := []llms.ContentPart{llms.TextPart(req.Prompt)}
	for _, url := range req.FileURLs {
		parts = append(parts, llms.ImageURLPart(url))
	}

	messages := []llms.MessageContent{}
	if len(req.ResponseSchema) > 0 {
		messages = append(messages, llms.MessageContent{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(
				"You respond with a single JSON object matching this schema, and nothing else:\n" +
					string(req.ResponseSchema),
			)},
		})
	}
	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: parts,
	})

	resp, err := c.model.GenerateContent(ctx, messages, llms.WithTemperature(0.7))
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}
	content := resp.Choices[0].Content

	if len(req.ResponseSchema) == 0 {
		return &Response{Text: strings.TrimSpace(content)}, nil
	}

	analysis, err := parseAnalysis(content)
	if err != nil {
		return nil, err
	}
	return &Response{Analysis: analysis}, nil
}

// parseAnalysis extracts the first JSON object from model output. Models
// occasionally wrap JSON in prose or code fences; best-effort extraction
// keeps that recoverable.
func parseAnalysis(content string) (*EntryAnalysis, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("model output contains no JSON object")
	}

	var analysis EntryAnalysis
	if err := json.Unmarshal([]byte(content[start:end+1]), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON: %w", err)
	}
	if analysis.Summary != nil && strings.TrimSpace(*analysis.Summary) == "" {
		analysis.Summary = nil
	}
	return &analysis, nil
}
