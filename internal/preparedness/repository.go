package preparedness

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/shenikar/family_crisis_hub/internal/statestore"
)

var ErrItemNotFound = errors.New("preparedness item not found")

// Repository - источник плана готовности
type Repository interface {
	GetPlan(ctx context.Context) (models.PreparednessPlan, error)
	UpdateItemStatus(ctx context.Context, id string, status models.ItemStatus) (models.PreparednessItem, error)
}

// StateRepository хранит план в срезе preparedness_plan хранилища состояния
type StateRepository struct {
	mu      sync.Mutex
	binding *statestore.Binding[models.PreparednessPlan]
}

func NewStateRepository(binding *statestore.Binding[models.PreparednessPlan]) *StateRepository {
	return &StateRepository{binding: binding}
}

func (r *StateRepository) GetPlan(ctx context.Context) (models.PreparednessPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.binding.Load(ctx, DefaultPlan()), nil
}

func (r *StateRepository) UpdateItemStatus(ctx context.Context, id string, status models.ItemStatus) (models.PreparednessItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan := r.binding.Load(ctx, DefaultPlan())
	for i := range plan.Items {
		if plan.Items[i].ID != id {
			continue
		}
		plan.Items[i].Status = status
		if err := r.binding.Save(ctx, plan); err != nil {
			return models.PreparednessItem{}, fmt.Errorf("preparedness: failed to save plan: %w", err)
		}
		return plan.Items[i], nil
	}
	return models.PreparednessItem{}, fmt.Errorf("preparedness: item %s: %w", id, ErrItemNotFound)
}
