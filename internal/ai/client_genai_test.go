package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	model  string
	config *genai.GenerateContentConfig
	resp   *genai.GenerateContentResponse
	err    error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type recordingObserver struct{ events []CallEvent }

func (r *recordingObserver) OnCallComplete(e CallEvent) { r.events = append(r.events, e) }

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func TestGenAIClient_ModelPerTask(t *testing.T) {
	fake := &fakeModels{resp: textResponse(` {"status":"SAFE","summary":"ok"} `)}
	obs := &recordingObserver{}
	c := newGenAIClient(Config{Timeout: time.Second}, fake, obs)

	resp, err := c.Generate(context.Background(), GenerateRequest{Task: TaskCheckin, Prompt: "hi", Schema: CheckinSchema()})
	require.NoError(t, err)
	assert.Equal(t, DefaultFastModel, fake.model)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	assert.NotNil(t, fake.config.ResponseSchema)
	assert.Equal(t, `{"status":"SAFE","summary":"ok"}`, resp.Text)

	fake.resp = textResponse("{}")
	_, err = c.Generate(context.Background(), GenerateRequest{Task: TaskPlan, Prompt: "plan", Schema: PlanSchema()})
	require.NoError(t, err)
	assert.Equal(t, DefaultPlanModel, fake.model)

	require.Len(t, obs.events, 2)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, TaskPlan, obs.events[1].Task)
}

func TestGenAIClient_Errors(t *testing.T) {
	obs := &recordingObserver{}
	fake := &fakeModels{err: context.DeadlineExceeded}
	c := newGenAIClient(Config{}, fake, obs)

	_, err := c.Generate(context.Background(), GenerateRequest{Task: TaskPlan, Prompt: "p"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	fake.err = nil
	fake.resp = textResponse("   ")
	_, err = c.Generate(context.Background(), GenerateRequest{Task: TaskPlan, Prompt: "p"})
	require.Error(t, err)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "timeout", obs.events[0].ErrorCode)
	assert.Equal(t, "empty", obs.events[1].ErrorCode)
}

func TestNewGenAIClient_RequiresKey(t *testing.T) {
	_, err := NewGenAIClient(context.Background(), Config{}, nil)
	assert.Error(t, err)
}

func TestExtractJSON(t *testing.T) {
	type payload struct {
		A string `json:"a"`
	}
	got, err := ExtractJSON[payload]("Here you go:\n```json\n{\"a\": \"x{}\"}\n```\nthanks", nil)
	require.NoError(t, err)
	assert.Equal(t, "x{}", got.A)

	_, err = ExtractJSON[payload]("no json at all", nil)
	assert.Error(t, err)

	_, err = ExtractJSON[payload](`{"a": "x"}`, func(p payload) error { return errors.New("nope") })
	assert.Error(t, err)
}

func TestConfigModelFor(t *testing.T) {
	cfg := Config{PlanModel: "big", FastModel: "small"}
	assert.Equal(t, "big", cfg.ModelFor(TaskPlan))
	assert.Equal(t, "small", cfg.ModelFor(TaskRoute))
	assert.Equal(t, "small", cfg.ModelFor(TaskCheckin))
}
