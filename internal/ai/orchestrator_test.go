package ai_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shenikar/family_crisis_hub/internal/ai"
	"github.com/shenikar/family_crisis_hub/internal/ai/mocks"
	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeMonitor bool

func (f fakeMonitor) Online() bool { return bool(f) }

const validPlan = `{
  "triage_analysis": {"priority_list": [{"name": "Grandma Rose", "reason": "Last status was INJURED"}], "assessment": "One member injured."},
  "logistics_plan": {
    "meetup_points": [{
      "rank": 1, "name": "Civic Center Plaza", "address": "355 McAllister St", "reason": "Open space",
      "routes": [{"memberName": "Mike Johnson", "route": {"duration": "10 min walk", "distance": "0.5 mi", "traffic_level": "Light", "hazards": [], "viable": true}}],
      "coordinates": {"lat": 37.7793, "lng": -122.4176}
    }],
    "movement_plan": "Walk to the plaza.",
    "supply_recommendations": ["Water"]
  },
  "medical_assessment": {"member_assessments": [{"name": "Grandma Rose", "needs": "Arm injury", "instructions": "Immobilize the arm."}], "overall_recommendation": "Seek care for Grandma."},
  "prediction_forecast": {"timeline": [{"time": "Next 30 Mins", "prediction": "Aftershocks possible"}], "secondary_hazards": ["Gas leaks"]},
  "synthesized_plan": {"urgency_level": "URGENT", "priority_actions": ["Reach Grandma"], "reassurance_message": "You have a plan."}
}`

func newOrchestrator(t *testing.T, online bool) (*ai.Orchestrator, *mocks.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return ai.NewOrchestrator(client, fakeMonitor(online), logger), client
}

var testCircle = models.Circle{ID: "c1", Name: "Johnsons", Members: []models.Member{{ID: "m1", Name: "Mike Johnson", Status: models.StatusSafe}}}

func TestGeneratePlan_Success(t *testing.T) {
	o, client := newOrchestrator(t, true)
	client.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ai.GenerateRequest) (*ai.GenerateResponse, error) {
			assert.Equal(t, ai.TaskPlan, req.Task)
			assert.Contains(t, req.Prompt, "Mike Johnson")
			require.NotNil(t, req.Schema)
			assert.Len(t, req.Schema.Required, 5)
			return &ai.GenerateResponse{Text: "```json\n" + validPlan + "\n```"}, nil
		})

	plan, err := o.GeneratePlan(context.Background(), testCircle, nil, models.Coordinates{Lat: 37.7749, Lng: -122.4194})
	require.NoError(t, err)
	assert.Equal(t, "URGENT", plan.SynthesizedPlan.UrgencyLevel)
	require.Len(t, plan.LogisticsPlan.MeetupPoints, 1)
	assert.True(t, plan.LogisticsPlan.MeetupPoints[0].Routes[0].Route.Viable)
}

func TestGeneratePlan_OfflineMakesNoCall(t *testing.T) {
	o, _ := newOrchestrator(t, false)

	plan, err := o.GeneratePlan(context.Background(), testCircle, nil, models.Coordinates{})
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ai.ErrOffline)
	assert.Contains(t, ai.UserMessage(err), "offline")
}

func TestGeneratePlan_ProviderError(t *testing.T) {
	o, client := newOrchestrator(t, true)
	cause := errors.New("connection reset")
	client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, cause).Times(1)

	_, err := o.GeneratePlan(context.Background(), testCircle, nil, models.Coordinates{})
	assert.ErrorIs(t, err, ai.ErrProvider)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "The AI crisis team could not generate a plan. The situation may be complex or there was a network issue. Please try again in a moment.", ai.UserMessage(err))
}

func TestGeneratePlan_InvalidShape(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "not json", text: "sorry, I cannot help"},
		{name: "missing section", text: `{"triage_analysis": {"priority_list": [], "assessment": "ok"}}`},
		{name: "urgency outside enum", text: replaceOnce(validPlan, `"URGENT"`, `"PANIC"`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, client := newOrchestrator(t, true)
			client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(&ai.GenerateResponse{Text: tt.text}, nil).Times(1)

			plan, err := o.GeneratePlan(context.Background(), testCircle, nil, models.Coordinates{})
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, ai.ErrInvalidResponse)
		})
	}
}

func TestParseCheckin(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    models.CheckinResult
		wantErr error
	}{
		{
			name: "injured",
			text: `{"status": "INJURED", "summary": "Fell and hurt their leg, needs help."}`,
			want: models.CheckinResult{Status: models.StatusInjured, Summary: "Fell and hurt their leg, needs help."},
		},
		{name: "unknown is not allowed", text: `{"status": "UNKNOWN", "summary": "unclear"}`, wantErr: ai.ErrInvalidResponse},
		{name: "blank summary", text: `{"status": "SAFE", "summary": "   "}`, wantErr: ai.ErrInvalidResponse},
		{name: "garbage", text: `status: SAFE`, wantErr: ai.ErrInvalidResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, client := newOrchestrator(t, true)
			client.EXPECT().
				Generate(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req ai.GenerateRequest) (*ai.GenerateResponse, error) {
					assert.Equal(t, ai.TaskCheckin, req.Task)
					assert.Contains(t, req.Prompt, "I fell and hurt my leg, need help")
					return &ai.GenerateResponse{Text: tt.text}, nil
				})

			got, err := o.ParseCheckin(context.Background(), "I fell and hurt my leg, need help")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "The AI could not understand the message. Please try a clearer message or update the status manually.", ai.UserMessage(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCheckin_Offline(t *testing.T) {
	o, _ := newOrchestrator(t, false)
	_, err := o.ParseCheckin(context.Background(), "I'm fine")
	assert.ErrorIs(t, err, ai.ErrOffline)
}

func TestAssessRoute(t *testing.T) {
	from := models.Coordinates{Lat: 37.79, Lng: -122.41}
	to := models.Coordinates{Lat: 37.78, Lng: -122.42}

	t.Run("success", func(t *testing.T) {
		o, client := newOrchestrator(t, true)
		client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(&ai.GenerateResponse{
			Text: `{"duration": "25 min drive", "distance": "4.5 mi", "traffic_level": "Heavy", "hazards": ["Bridge closure"], "viable": true}`,
		}, nil)

		route := o.AssessRoute(context.Background(), "Emma", from, to, nil)
		assert.True(t, route.Viable)
		assert.Equal(t, []string{"Bridge closure"}, route.Hazards)
	})

	t.Run("failure falls back to non-viable", func(t *testing.T) {
		o, client := newOrchestrator(t, true)
		client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, errors.New("quota"))

		assert.Equal(t, ai.FallbackRoute(), o.AssessRoute(context.Background(), "Emma", from, to, nil))
	})

	t.Run("offline", func(t *testing.T) {
		o, _ := newOrchestrator(t, false)
		route := o.AssessRoute(context.Background(), "Emma", from, to, nil)
		assert.False(t, route.Viable)
	})
}

func replaceOnce(s, old, repl string) string {
	i := bytes.Index([]byte(s), []byte(old))
	if i < 0 {
		return s
	}
	return s[:i] + repl + s[i+len(old):]
}
