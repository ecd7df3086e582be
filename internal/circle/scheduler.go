package circle

import (
	"sync"
	"time"
)

// Ticker - источник тиков симуляции
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Scheduler создает тикеры; в тестах подменяется ручной реализацией
type Scheduler interface {
	NewTicker(d time.Duration) Ticker
}

// Rand - источник вероятностей, *rand.Rand из math/rand/v2 подходит
type Rand interface {
	Float64() float64
}

type realScheduler struct{}

// RealScheduler возвращает планировщик на основе time.Ticker
func RealScheduler() Scheduler { return realScheduler{} }

func (realScheduler) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct{ t *time.Ticker }

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// ManualScheduler выдает тики только по вызову Tick
type ManualScheduler struct {
	mu      sync.Mutex
	tickers []*ManualTicker
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) NewTicker(time.Duration) Ticker {
	t := &ManualTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	m.mu.Lock()
	m.tickers = append(m.tickers, t)
	m.mu.Unlock()
	return t
}

// Tick отправляет тик последнему созданному тикеру.
// Возвращает false, если тикер остановлен или не создан.
func (m *ManualScheduler) Tick() bool {
	m.mu.Lock()
	if len(m.tickers) == 0 {
		m.mu.Unlock()
		return false
	}
	t := m.tickers[len(m.tickers)-1]
	m.mu.Unlock()
	return t.tick()
}

// Tickers возвращает все созданные тикеры
func (m *ManualScheduler) Tickers() []*ManualTicker {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*ManualTicker, len(m.tickers))
	copy(out, m.tickers)
	return out
}

type ManualTicker struct {
	c        chan time.Time
	stopOnce sync.Once
	stopped  chan struct{}
}

func (t *ManualTicker) C() <-chan time.Time { return t.c }

func (t *ManualTicker) Stop() {
	t.stopOnce.Do(func() { close(t.stopped) })
}

// Stopped сообщает, был ли вызван Stop
func (t *ManualTicker) Stopped() bool {
	select {
	case <-t.stopped:
		return true
	default:
		return false
	}
}

func (t *ManualTicker) tick() bool {
	select {
	case <-t.stopped:
		return false
	default:
	}
	select {
	case t.c <- time.Now():
		return true
	case <-t.stopped:
		return false
	}
}

// FixedRand возвращает значения по очереди, последнее повторяется
type FixedRand struct {
	mu     sync.Mutex
	values []float64
}

func NewFixedRand(values ...float64) *FixedRand {
	return &FixedRand{values: values}
}

func (f *FixedRand) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[0]
	if len(f.values) > 1 {
		f.values = f.values[1:]
	}
	return v
}
