package crisis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/family_crisis_hub/internal/models"
)

// Entry - закешированный результат запроса источника
type Entry struct {
	Location  models.Coordinates   `json:"location"`
	FetchedAt time.Time            `json:"fetched_at"`
	Events    []models.CrisisEvent `json:"events"`
}

// Fresh сообщает, что запись относится к loc и моложе ttl
func (e *Entry) Fresh(loc models.Coordinates, now time.Time, ttl time.Duration) bool {
	if e == nil {
		return false
	}
	return LocationKey(e.Location) == LocationKey(loc) && now.Sub(e.FetchedAt) < ttl
}

// Cache хранит последний результат для пары (источник, координаты)
type Cache interface {
	Get(ctx context.Context, source string, loc models.Coordinates) (*Entry, error)
	Set(ctx context.Context, source string, entry *Entry, ttl time.Duration) error
}

// LocationKey нормализует координаты для сравнения и построения ключей
func LocationKey(loc models.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", loc.Lat, loc.Lng)
}

// MemoryCache - кеш в памяти процесса; возвращает тот же срез, что был сохранен
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*Entry)}
}

func (c *MemoryCache) Get(_ context.Context, source string, loc models.Coordinates) (*Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[source+"|"+LocationKey(loc)], nil
}

// Set игнорирует ttl: свежесть проверяет Fetcher по FetchedAt
func (c *MemoryCache) Set(_ context.Context, source string, entry *Entry, _ time.Duration) error {
	c.mu.Lock()
	c.entries[source+"|"+LocationKey(entry.Location)] = entry
	c.mu.Unlock()
	return nil
}
