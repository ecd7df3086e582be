package crisis

import (
	"context"
	"time"

	"github.com/shenikar/family_crisis_hub/internal/models"
)

// Source - внешний поставщик данных об опасностях
type Source interface {
	Name() string
	// TTL - окно валидности кеша для этого источника
	TTL() time.Duration
	Query(ctx context.Context, loc models.Coordinates) ([]models.CrisisEvent, error)
}
