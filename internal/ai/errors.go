package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrOffline - вызов не выполнялся, сеть недоступна
	ErrOffline = errors.New("ai is unavailable offline")
	// ErrProvider - ошибка провайдера или сети
	ErrProvider = errors.New("ai provider call failed")
	// ErrInvalidResponse - ответ не прошел проверку схемы
	ErrInvalidResponse = errors.New("invalid ai response")
)

const (
	offlineMessage = "AI features are unavailable while offline. Please reconnect and try again."
	planMessage    = "The AI crisis team could not generate a plan. The situation may be complex or there was a network issue. Please try again in a moment."
	checkinMessage = "The AI could not understand the message. Please try a clearer message or update the status manually."
)

// TaskError связывает категорию ошибки с задачей, в которой она произошла
type TaskError struct {
	Task  Task
	Kind  error
	Cause error
}

func (e *TaskError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("ai: %s: %v", e.Task, e.Kind)
	}
	return fmt.Sprintf("ai: %s: %v: %v", e.Task, e.Kind, e.Cause)
}

func (e *TaskError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func taskError(task Task, kind, cause error) error {
	return &TaskError{Task: task, Kind: kind, Cause: cause}
}

// UserMessage возвращает текст ошибки для показа пользователю
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrOffline) {
		return offlineMessage
	}
	var te *TaskError
	if errors.As(err, &te) && te.Task == TaskCheckin {
		return checkinMessage
	}
	return planMessage
}
