package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/sirupsen/logrus"
)

// OnlineChecker - минимальный контракт монитора сети
type OnlineChecker interface {
	Online() bool
}

// Orchestrator выполняет по одному запросу к модели на действие и никогда не повторяет его
type Orchestrator struct {
	client   Client
	monitor  OnlineChecker
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewOrchestrator(client Client, monitor OnlineChecker, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		client:   client,
		monitor:  monitor,
		validate: validator.New(),
		logger:   logger,
	}
}

// GeneratePlan запрашивает план пяти агентов по текущему кругу и событиям
func (o *Orchestrator) GeneratePlan(ctx context.Context, circle models.Circle, events []models.CrisisEvent, loc models.Coordinates) (*models.MultiAgentPlan, error) {
	log := o.logger.WithFields(logrus.Fields{
		"component": "ai",
		"method":    "GeneratePlan",
		"circle_id": circle.ID,
	})

	if !o.monitor.Online() {
		log.Warn("Plan generation blocked while offline")
		return nil, taskError(TaskPlan, ErrOffline, nil)
	}

	prompt, err := buildPlanPrompt(circle, events, loc)
	if err != nil {
		return nil, taskError(TaskPlan, ErrProvider, err)
	}

	resp, err := o.client.Generate(ctx, GenerateRequest{Task: TaskPlan, Prompt: prompt, Schema: PlanSchema()})
	if err != nil {
		log.WithError(err).Error("Failed to generate plan")
		return nil, taskError(TaskPlan, ErrProvider, err)
	}

	plan, err := ExtractJSON(resp.Text, func(p models.MultiAgentPlan) error {
		return o.validate.Struct(p)
	})
	if err != nil {
		log.WithError(err).Error("Plan response failed validation")
		return nil, taskError(TaskPlan, ErrInvalidResponse, err)
	}

	log.WithField("urgency", plan.SynthesizedPlan.UrgencyLevel).Info("Plan generated")
	return &plan, nil
}

// ParseCheckin классифицирует текстовое сообщение участника
func (o *Orchestrator) ParseCheckin(ctx context.Context, message string) (models.CheckinResult, error) {
	log := o.logger.WithFields(logrus.Fields{
		"component": "ai",
		"method":    "ParseCheckin",
	})

	if !o.monitor.Online() {
		log.Warn("Check-in parsing blocked while offline")
		return models.CheckinResult{}, taskError(TaskCheckin, ErrOffline, nil)
	}

	resp, err := o.client.Generate(ctx, GenerateRequest{
		Task:   TaskCheckin,
		Prompt: buildCheckinPrompt(message),
		Schema: CheckinSchema(),
	})
	if err != nil {
		log.WithError(err).Error("Failed to parse check-in")
		return models.CheckinResult{}, taskError(TaskCheckin, ErrProvider, err)
	}

	result, err := ExtractJSON(resp.Text, func(r models.CheckinResult) error {
		if err := o.validate.Struct(r); err != nil {
			return err
		}
		if strings.TrimSpace(r.Summary) == "" {
			return errors.New("summary is blank")
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Check-in response failed validation")
		return models.CheckinResult{}, taskError(TaskCheckin, ErrInvalidResponse, err)
	}

	log.WithField("status", result.Status).Info("Check-in parsed")
	return result, nil
}

// FallbackRoute - маршрут, который считается непроходимым при любой ошибке анализа
func FallbackRoute() models.RouteInfo {
	return models.RouteInfo{
		Duration:     "Unknown",
		Distance:     "Unknown",
		TrafficLevel: "Severe",
		Hazards:      []string{"AI analysis failed, assume route is not viable."},
		Viable:       false,
	}
}

// AssessRoute оценивает проходимость маршрута; ошибки не возвращает
func (o *Orchestrator) AssessRoute(ctx context.Context, memberName string, from, to models.Coordinates, events []models.CrisisEvent) models.RouteInfo {
	log := o.logger.WithFields(logrus.Fields{
		"component": "ai",
		"method":    "AssessRoute",
		"member":    memberName,
	})

	if !o.monitor.Online() {
		log.Warn("Route analysis skipped while offline")
		return FallbackRoute()
	}

	prompt, err := buildRoutePrompt(memberName, from, to, events)
	if err != nil {
		log.WithError(err).Error("Failed to build route prompt")
		return FallbackRoute()
	}

	resp, err := o.client.Generate(ctx, GenerateRequest{Task: TaskRoute, Prompt: prompt, Schema: RouteSchema()})
	if err != nil {
		log.WithError(err).Error("Failed to get route intelligence")
		return FallbackRoute()
	}

	route, err := ExtractJSON(resp.Text, func(r models.RouteInfo) error {
		return o.validate.Struct(r)
	})
	if err != nil {
		log.WithError(err).Error("Route response failed validation")
		return FallbackRoute()
	}
	return route
}
