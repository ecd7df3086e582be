// Package connectivity отслеживает переходы online/offline.
// Значение носит рекомендательный характер: зависимые компоненты
// перепроверяют Online() непосредственно перед каждым сетевым действием.
package connectivity

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Monitor хранит текущее состояние сети и уведомляет подписчиков о переходах
type Monitor struct {
	online atomic.Bool
	// deliverMu охватывает смену значения и рассылку подписчикам
	deliverMu sync.Mutex

	mu          sync.Mutex
	nextID      int
	subscribers map[int]func(bool)
}

func NewMonitor(initial bool) *Monitor {
	m := &Monitor{subscribers: make(map[int]func(bool))}
	m.online.Store(initial)
	return m
}

// Online возвращает текущее состояние
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// SetOnline применяет сигнал перехода. Подписчики вызываются только при смене значения
// и не должны сами вызывать SetOnline.
func (m *Monitor) SetOnline(online bool) bool {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	if m.online.Swap(online) == online {
		return false
	}

	m.mu.Lock()
	subs := make([]func(bool), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(online)
	}
	return true
}

// Subscribe регистрирует обработчик переходов и возвращает функцию отписки
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

// Probe - разовая проверка доступности сети при старте
type Probe func(ctx context.Context) bool

// DialProbe проверяет доступность addr одной TCP-попыткой
func DialProbe(addr string, timeout time.Duration) Probe {
	return func(ctx context.Context) bool {
		d := net.Dialer{Timeout: timeout}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}
}
