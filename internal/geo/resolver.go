// Package geo определяет местоположение пользователя с ограниченным
// ожиданием и запасной точкой по умолчанию.
package geo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrDenied      = errors.New("geolocation permission denied")
	ErrUnsupported = errors.New("geolocation is not supported")
)

const (
	DefaultTimeout  = 10 * time.Second
	FallbackWarning = "Could not determine your location. Showing crisis data for San Francisco City Hall."
)

// DefaultLocation - мэрия Сан-Франциско
var DefaultLocation = models.Coordinates{Lat: 37.7749, Lng: -122.4194}

// Locator - одноразовый запрос позиции устройства
type Locator interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// Resolution - итог определения позиции; Warning не пуст только при запасной точке
type Resolution struct {
	Location models.Coordinates `json:"location"`
	Fallback bool               `json:"fallback"`
	Warning  string             `json:"warning,omitempty"`
}

type OnlineChecker interface {
	Online() bool
}

type Resolver struct {
	timeout time.Duration
	monitor OnlineChecker
	logger  *logrus.Logger
}

func NewResolver(timeout time.Duration, monitor OnlineChecker, logger *logrus.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{timeout: timeout, monitor: monitor, logger: logger}
}

// Resolve никогда не ждет дольше таймаута и всегда возвращает позицию
func (r *Resolver) Resolve(ctx context.Context, locator Locator) Resolution {
	log := r.logger.WithFields(logrus.Fields{
		"component": "geo",
		"method":    "Resolve",
	})

	if locator == nil {
		return r.fallback(log, ErrUnsupported)
	}
	if !r.monitor.Online() {
		return r.fallback(log, errors.New("offline"))
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		loc models.Coordinates
		err error
	}
	ch := make(chan result, 1)
	go func() {
		loc, err := locator.Locate(ctx)
		ch <- result{loc: loc, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return r.fallback(log, res.err)
		}
		log.Debug("Device location resolved")
		return Resolution{Location: res.loc}
	case <-ctx.Done():
		return r.fallback(log, ctx.Err())
	}
}

func (r *Resolver) fallback(log *logrus.Entry, reason error) Resolution {
	log.WithError(reason).Warn("Using default location")
	return Resolution{Location: DefaultLocation, Fallback: true, Warning: FallbackWarning}
}

// PendingLocator ждет позицию, сообщенную клиентом
type PendingLocator struct {
	mu       sync.Mutex
	reported chan struct{}
	loc      models.Coordinates
	err      error
	done     bool
}

func NewPendingLocator() *PendingLocator {
	return &PendingLocator{reported: make(chan struct{})}
}

// Report сохраняет позицию; учитывается только первый вызов Report или Fail
func (p *PendingLocator) Report(loc models.Coordinates) {
	p.resolve(loc, nil)
}

// Fail сообщает об отказе или отсутствии геолокации у клиента
func (p *PendingLocator) Fail(err error) {
	p.resolve(models.Coordinates{}, err)
}

func (p *PendingLocator) resolve(loc models.Coordinates, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	p.loc, p.err, p.done = loc, err, true
	close(p.reported)
}

func (p *PendingLocator) Locate(ctx context.Context) (models.Coordinates, error) {
	select {
	case <-p.reported:
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.loc, p.err
	case <-ctx.Done():
		return models.Coordinates{}, ctx.Err()
	}
}

// StaticLocator всегда возвращает одну позицию
type StaticLocator models.Coordinates

func (s StaticLocator) Locate(context.Context) (models.Coordinates, error) {
	return models.Coordinates(s), nil
}
