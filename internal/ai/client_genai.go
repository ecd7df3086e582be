package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// contentGenerator - подмножество genai.Models, используемое клиентом
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type genaiClient struct {
	cfg      Config
	models   contentGenerator
	observer Observer
}

// NewGenAIClient создает клиент Gemini API
func NewGenAIClient(ctx context.Context, cfg Config, observer Observer) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGenAIClient(cfg, client.Models, observer), nil
}

func newGenAIClient(cfg Config, models contentGenerator, observer Observer) *genaiClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &genaiClient{
		cfg:      cfg.withDefaults(),
		models:   models,
		observer: observer,
	}
}

func (c *genaiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := c.cfg.ModelFor(req.Task)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = req.Schema
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, model, genai.Text(req.Prompt), config)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		code := "provider"
		if errors.Is(err, context.DeadlineExceeded) {
			code = "timeout"
		}
		c.observer.OnCallComplete(CallEvent{Task: req.Task, Model: model, LatencyMs: latency, ErrorCode: code})
		return nil, fmt.Errorf("gemini %s request failed: %w", model, err)
	}

	text := ""
	if resp != nil {
		text = strings.TrimSpace(resp.Text())
	}
	if text == "" {
		c.observer.OnCallComplete(CallEvent{Task: req.Task, Model: model, LatencyMs: latency, ErrorCode: "empty"})
		return nil, fmt.Errorf("gemini %s returned an empty response", model)
	}

	c.observer.OnCallComplete(CallEvent{Task: req.Task, Model: model, LatencyMs: latency, Success: true})
	return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
}
