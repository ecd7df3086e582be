// Package ai строит запросы к генеративной модели и проверяет форму ответов.
package ai

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Task определяет модель и схему запроса
type Task string

const (
	TaskPlan    Task = "plan"
	TaskCheckin Task = "checkin"
	TaskRoute   Task = "route"
)

type GenerateRequest struct {
	Task   Task
	Prompt string
	// Schema - схема JSON-ответа; nil означает свободный текст
	Schema *genai.Schema
}

type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Client - один запрос к модели без повторов
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// UnavailableClient подставляется, когда ключ провайдера не задан
type UnavailableClient struct{}

func (UnavailableClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, fmt.Errorf("ai: provider is not configured: %w", ErrProvider)
}

// Config - параметры провайдера
type Config struct {
	APIKey    string
	PlanModel string
	FastModel string
	Timeout   time.Duration
}

const (
	DefaultPlanModel = "gemini-2.5-pro"
	DefaultFastModel = "gemini-2.5-flash"
	DefaultTimeout   = 60 * time.Second
)

func (c Config) withDefaults() Config {
	if c.PlanModel == "" {
		c.PlanModel = DefaultPlanModel
	}
	if c.FastModel == "" {
		c.FastModel = DefaultFastModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// ModelFor возвращает модель для задачи: сложный план идет на большую модель
func (c Config) ModelFor(task Task) string {
	c = c.withDefaults()
	if task == TaskPlan {
		return c.PlanModel
	}
	return c.FastModel
}
