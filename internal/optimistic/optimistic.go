// Package optimistic применяет изменение локально до подтверждения и
// откатывает его обратным преобразованием при ошибке.
package optimistic

import (
	"context"
	"sync"
)

// Command - локальное изменение, его обратное и удаленное подтверждение
type Command[T any] struct {
	Apply   func(T) T
	Inverse func(T) T
	Confirm func(ctx context.Context) error
}

// Cell - значение, изменяемое только чистыми преобразованиями
type Cell[T any] struct {
	mu    sync.Mutex
	value T
}

func NewCell[T any](value T) *Cell[T] {
	return &Cell[T]{value: value}
}

func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Update применяет fn к последнему значению
func (c *Cell[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = fn(c.value)
	return c.value
}

// Run применяет cmd.Apply, вызывает Confirm и при ошибке применяет cmd.Inverse.
// Возвращает значение после подтверждения или отката.
func Run[T any](ctx context.Context, cell *Cell[T], cmd Command[T]) (T, error) {
	cell.Update(cmd.Apply)
	if err := cmd.Confirm(ctx); err != nil {
		return cell.Update(cmd.Inverse), err
	}
	return cell.Get(), nil
}
