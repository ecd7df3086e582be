package circle

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/sirupsen/logrus"
)

const DefaultInterval = 5 * time.Second

// Rule - правило смены статуса участника, чье имя содержит NameContains.
// Пустой From означает "любой статус, кроме Target".
type Rule struct {
	NameContains string
	From         []models.Status
	Target       models.Status
	Probability  float64
	Message      string
	// Accuracy - новая точность местоположения в метрах, если задана
	Accuracy *float64
}

func (r Rule) applies(m models.Member) bool {
	if !strings.Contains(m.Name, r.NameContains) {
		return false
	}
	if len(r.From) == 0 {
		return m.Status != r.Target
	}
	return slices.Contains(r.From, m.Status)
}

// DefaultRules - демонстрационный сценарий землетрясения
func DefaultRules() []Rule {
	return []Rule{
		{
			NameContains: "Mike",
			From:         []models.Status{models.StatusUnknown},
			Target:       models.StatusSafe,
			Probability:  1,
			Message:      "I'm okay, at home. Shaken up but safe.",
			Accuracy:     floatPtr(15),
		},
		{
			NameContains: "Emma",
			Target:       models.StatusHelp,
			Probability:  0.3,
			Message:      "Stuck near the office, roads are blocked. Can anyone see a clear path?",
		},
		{
			NameContains: "Grandma",
			Target:       models.StatusInjured,
			Probability:  0.15,
			Message:      "Neighbor called. Said she fell and hurt her arm. Needs assistance.",
		},
	}
}

// Simulator периодически продвигает статусы участников по правилам
type Simulator struct {
	store     *Store
	scheduler Scheduler
	rand      Rand
	rules     []Rule
	interval  time.Duration
	logger    *logrus.Logger
}

func NewSimulator(store *Store, scheduler Scheduler, rnd Rand, rules []Rule, interval time.Duration, logger *logrus.Logger) *Simulator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Simulator{
		store:     store,
		scheduler: scheduler,
		rand:      rnd,
		rules:     rules,
		interval:  interval,
		logger:    logger,
	}
}

// Subscribe запускает симуляцию и вызывает push с обновленным кругом после
// каждого тика, изменившего хотя бы одного участника.
// Возвращаемая stop идемпотентна и синхронна: после ее возврата push больше
// не вызывается, а тикер освобожден. Вызывать stop из push нельзя.
func (s *Simulator) Subscribe(push func(models.Circle)) (stop func()) {
	ticker := s.scheduler.NewTicker(s.interval)
	quit := make(chan struct{})
	done := make(chan struct{})

	var (
		deliverMu sync.Mutex
		stopped   bool
	)

	go func() {
		defer close(done)
		for {
			select {
			case <-quit:
				return
			case <-ticker.C():
				deliverMu.Lock()
				if stopped {
					deliverMu.Unlock()
					return
				}
				if c, changed := s.Tick(); changed {
					push(c)
				}
				deliverMu.Unlock()
			}
		}
	}()

	s.logger.WithFields(logrus.Fields{
		"component": "circle",
		"method":    "Subscribe",
		"interval":  s.interval.String(),
	}).Debug("Crisis simulation started")

	var once sync.Once
	return func() {
		once.Do(func() {
			deliverMu.Lock()
			stopped = true
			deliverMu.Unlock()
			close(quit)
			ticker.Stop()
			<-done
			s.logger.WithField("component", "circle").Debug("Crisis simulation stopped")
		})
	}
}

// Tick выполняет один шаг симуляции над последней версией круга
func (s *Simulator) Tick() (models.Circle, bool) {
	changed := false
	c, err := s.store.Apply(func(c models.Circle) (models.Circle, error) {
		now := s.store.now().UTC()
		for _, rule := range s.rules {
			idx := slices.IndexFunc(c.Members, rule.applies)
			if idx < 0 {
				continue
			}
			if rule.Probability < 1 && s.rand.Float64() >= rule.Probability {
				continue
			}
			m := &c.Members[idx]
			m.Status = rule.Target
			m.Message = rule.Message
			if rule.Accuracy != nil && m.Location != nil &&
				(m.Location.Accuracy == nil || *m.Location.Accuracy > *rule.Accuracy) {
				m.Location.Accuracy = floatPtr(*rule.Accuracy)
			}
			m.Touch(now)
			changed = true

			s.logger.WithFields(logrus.Fields{
				"component": "circle",
				"method":    "Tick",
				"member_id": m.ID,
				"status":    m.Status,
			}).Info("Simulated status change")
		}
		return c, nil
	})
	if err != nil {
		return models.Circle{}, false
	}
	return c, changed
}
