// Package statestore хранит независимые срезы состояния приложения
// (тема, семейный круг, кеш кризисных данных, AI-план, план готовности)
// под отдельными ключами. Каждый срез сериализуется в JSON целиком.
package statestore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Ключи срезов состояния
const (
	KeyTheme            = "theme"
	KeyCircle           = "circle"
	KeyCrisisCache      = "crisis_cache"
	KeyAIPlan           = "ai_plan"
	KeyPreparednessPlan = "preparedness_plan"
)

// Backend - долговременное key-value хранилище
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Binding - типизированная пара чтение/запись для одного ключа
type Binding[T any] struct {
	backend Backend
	key     string
	logger  *logrus.Logger
}

// Bind создает привязку типа T к ключу key
func Bind[T any](backend Backend, key string, logger *logrus.Logger) *Binding[T] {
	return &Binding[T]{
		backend: backend,
		key:     key,
		logger:  logger,
	}
}

// Load возвращает сохраненное значение или def, если значения нет или оно повреждено.
// Ошибки не пробрасываются, только логируются.
func (b *Binding[T]) Load(ctx context.Context, def T) T {
	log := b.logger.WithFields(logrus.Fields{
		"component": "statestore",
		"method":    "Load",
		"key":       b.key,
	})

	raw, found, err := b.backend.Get(ctx, b.key)
	if err != nil {
		log.WithError(err).Warn("Failed to read state, using default")
		return def
	}
	if !found || len(raw) == 0 {
		log.Debug("No stored state, using default")
		return def
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.WithError(err).Warn("Stored state is corrupted, using default")
		return def
	}
	return value
}

// Save полностью сериализует значение и перезаписывает предыдущее
func (b *Binding[T]) Save(ctx context.Context, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("statestore: failed to marshal %s: %w", b.key, err)
	}
	if err := b.backend.Put(ctx, b.key, raw); err != nil {
		b.logger.WithField("key", b.key).WithError(err).Warn("Failed to write state")
		return fmt.Errorf("statestore: failed to write %s: %w", b.key, err)
	}
	return nil
}

// Clear удаляет значение ключа
func (b *Binding[T]) Clear(ctx context.Context) error {
	if err := b.backend.Delete(ctx, b.key); err != nil {
		return fmt.Errorf("statestore: failed to delete %s: %w", b.key, err)
	}
	return nil
}
