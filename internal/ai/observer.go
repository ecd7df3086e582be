package ai

import "github.com/sirupsen/logrus"

// CallEvent - метаданные одного вызова модели
type CallEvent struct {
	Task      Task
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver пишет события вызовов в logrus
type LogObserver struct {
	logger *logrus.Logger
}

func NewLogObserver(logger *logrus.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	entry := o.logger.WithFields(logrus.Fields{
		"component":  "ai",
		"task":       event.Task,
		"model":      event.Model,
		"latency_ms": event.LatencyMs,
	})
	if !event.Success {
		entry.WithField("error_code", event.ErrorCode).Warn("AI call failed")
		return
	}
	entry.Info("AI call completed")
}

type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
