// Package preparedness ведет план готовности семьи: загрузка один раз,
// затем оптимистичное переключение пунктов с откатом при ошибке.
package preparedness

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/shenikar/family_crisis_hub/internal/optimistic"
	"github.com/sirupsen/logrus"
)

var ErrOffline = errors.New("preparedness updates are unavailable offline")

type OnlineChecker interface {
	Online() bool
}

type Service struct {
	repo    Repository
	monitor OnlineChecker
	logger  *logrus.Logger

	loadMu sync.Mutex
	plan   *optimistic.Cell[models.PreparednessPlan]
}

func NewService(repo Repository, monitor OnlineChecker, logger *logrus.Logger) *Service {
	return &Service{
		repo:    repo,
		monitor: monitor,
		logger:  logger,
	}
}

// Plan возвращает план; репозиторий опрашивается только при первом вызове
func (s *Service) Plan(ctx context.Context) (models.PreparednessPlan, error) {
	cell, err := s.cell(ctx)
	if err != nil {
		return models.PreparednessPlan{}, err
	}
	return cell.Get().Clone(), nil
}

func (s *Service) cell(ctx context.Context) (*optimistic.Cell[models.PreparednessPlan], error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.plan != nil {
		return s.plan, nil
	}
	plan, err := s.repo.GetPlan(ctx)
	if err != nil {
		return nil, fmt.Errorf("preparedness: failed to load plan: %w", err)
	}
	s.plan = optimistic.NewCell(plan.Clone())
	return s.plan, nil
}

// Toggle выставляет пункту статус; пустой status переключает текущий.
// При ошибке подтверждения видимый статус возвращается к прежнему.
func (s *Service) Toggle(ctx context.Context, id string, status models.ItemStatus) (models.PreparednessPlan, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "PreparednessService",
		"method":  "Toggle",
		"item_id": id,
	})

	if !s.monitor.Online() {
		log.Warn("Preparedness toggle blocked while offline")
		return models.PreparednessPlan{}, ErrOffline
	}

	cell, err := s.cell(ctx)
	if err != nil {
		return models.PreparednessPlan{}, err
	}

	current := cell.Get()
	idx := findItem(current, id)
	if idx < 0 {
		return current.Clone(), fmt.Errorf("preparedness: item %s: %w", id, ErrItemNotFound)
	}
	previous := current.Items[idx].Status
	if status == "" {
		status = previous.Toggled()
	}
	if status != models.ItemComplete && status != models.ItemIncomplete {
		return current.Clone(), fmt.Errorf("preparedness: unknown status %q", status)
	}

	plan, err := optimistic.Run(ctx, cell, optimistic.Command[models.PreparednessPlan]{
		Apply:   setStatus(id, status),
		Inverse: setStatus(id, previous),
		Confirm: func(ctx context.Context) error {
			_, err := s.repo.UpdateItemStatus(ctx, id, status)
			return err
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to update preparedness item, reverted")
		return plan.Clone(), fmt.Errorf("preparedness: failed to update item %s: %w", id, err)
	}

	log.WithField("status", status).Info("Preparedness item updated")
	return plan.Clone(), nil
}

func findItem(plan models.PreparednessPlan, id string) int {
	for i := range plan.Items {
		if plan.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func setStatus(id string, status models.ItemStatus) func(models.PreparednessPlan) models.PreparednessPlan {
	return func(p models.PreparednessPlan) models.PreparednessPlan {
		next := p.Clone()
		if i := findItem(next, id); i >= 0 {
			next.Items[i].Status = status
		}
		return next
	}
}
