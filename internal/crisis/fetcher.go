package crisis

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Outcome описывает, откуда взялся результат Fetch
type Outcome string

const (
	OutcomeNetwork Outcome = "network"
	OutcomeCache   Outcome = "cache"
	// OutcomeOffline - запрос не выполнялся; ранее показанные данные трогать нельзя
	OutcomeOffline Outcome = "offline"
	// OutcomeFailed - все источники упали; пустой список означает "нет данных", а не "нет опасностей"
	OutcomeFailed  Outcome = "failed"
	OutcomePartial Outcome = "partial"
)

// sharedQueryTimeout ограничивает общий для нескольких вызывающих запрос к источнику
const sharedQueryTimeout = 30 * time.Second

type Result struct {
	Events  []models.CrisisEvent
	Outcome Outcome
}

// OnlineChecker - минимальный контракт монитора сети
type OnlineChecker interface {
	Online() bool
}

// Fetcher оборачивает источники политикой cache-then-fetch и никогда не возвращает ошибку
type Fetcher struct {
	sources []Source
	cache   Cache
	monitor OnlineChecker
	logger  *logrus.Logger
	now     func() time.Time
	group   singleflight.Group
}

func NewFetcher(sources []Source, cache Cache, monitor OnlineChecker, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		sources: sources,
		cache:   cache,
		monitor: monitor,
		logger:  logger,
		now:     time.Now,
	}
}

// Fetch опрашивает все источники параллельно и склеивает события в порядке источников
func (f *Fetcher) Fetch(ctx context.Context, loc models.Coordinates) Result {
	log := f.logger.WithFields(logrus.Fields{
		"component": "crisis",
		"method":    "Fetch",
		"location":  LocationKey(loc),
	})

	if !f.monitor.Online() {
		log.Debug("Offline, skipping crisis data fetch")
		return Result{Outcome: OutcomeOffline}
	}

	perSource := make([][]models.CrisisEvent, len(f.sources))
	outcomes := make([]Outcome, len(f.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range f.sources {
		g.Go(func() error {
			perSource[i], outcomes[i] = f.fetchSource(gctx, src, loc)
			return nil
		})
	}
	_ = g.Wait()

	events := make([]models.CrisisEvent, 0)
	for _, evs := range perSource {
		events = append(events, evs...)
	}

	outcome := combine(outcomes)
	log.WithFields(logrus.Fields{"count": len(events), "outcome": outcome}).Info("Crisis data resolved")
	return Result{Events: events, Outcome: outcome}
}

func (f *Fetcher) fetchSource(ctx context.Context, src Source, loc models.Coordinates) ([]models.CrisisEvent, Outcome) {
	log := f.logger.WithField("source", src.Name())

	entry, err := f.cache.Get(ctx, src.Name(), loc)
	if err != nil {
		log.WithError(err).Warn("Failed to read crisis cache")
	}
	if entry.Fresh(loc, f.now(), src.TTL()) {
		log.Debug("Returning cached crisis data")
		return entry.Events, OutcomeCache
	}

	// одновременные запросы к одному источнику и точке делят один сетевой вызов;
	// он не зависит от отмены контекста отдельного вызывающего
	key := fmt.Sprintf("%s|%s", src.Name(), LocationKey(loc))
	ch := f.group.DoChan(key, func() (any, error) {
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedQueryTimeout)
		defer cancel()

		events, err := src.Query(qctx, loc)
		if err != nil {
			return nil, err
		}
		fresh := &Entry{Location: loc, FetchedAt: f.now(), Events: events}
		if err := f.cache.Set(qctx, src.Name(), fresh, src.TTL()); err != nil {
			log.WithError(err).Warn("Failed to write crisis cache")
		}
		return events, nil
	})

	var v any
	select {
	case res := <-ch:
		if res.Err != nil {
			log.WithError(res.Err).Error("Failed to fetch crisis data")
			return []models.CrisisEvent{}, OutcomeFailed
		}
		v = res.Val
	case <-ctx.Done():
		log.WithError(ctx.Err()).Warn("Crisis data fetch abandoned by caller")
		return []models.CrisisEvent{}, OutcomeFailed
	}

	events := v.([]models.CrisisEvent)
	log.WithField("count", len(events)).Info("Fetched crisis events")
	return events, OutcomeNetwork
}

func combine(outcomes []Outcome) Outcome {
	if len(outcomes) == 0 {
		return OutcomeNetwork
	}
	var failed, cached int
	for _, o := range outcomes {
		switch o {
		case OutcomeFailed:
			failed++
		case OutcomeCache:
			cached++
		}
	}
	switch {
	case failed == len(outcomes):
		return OutcomeFailed
	case failed > 0:
		return OutcomePartial
	case cached == len(outcomes):
		return OutcomeCache
	default:
		return OutcomeNetwork
	}
}
