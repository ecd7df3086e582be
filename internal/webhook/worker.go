package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/family_crisis_hub/internal/config"
	"github.com/sirupsen/logrus"
)

// Worker забирает оповещения из очереди и доставляет их на вебхук
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
	}
}

// Start запускает горутину обработки очереди; done закрывается после остановки
func (w *Worker) Start(ctx context.Context) (done <-chan struct{}) {
	w.logger.Info("Starting status alert worker...")
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		for {
			if ctx.Err() != nil {
				w.logger.Info("Stopping status alert worker.")
				return
			}

			result, err := w.redisClient.BRPop(ctx, 0, alertQueueKey).Result()
			if err != nil {
				if errors.Is(err, context.Canceled) || ctx.Err() != nil {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop status alert from Redis")
				sleep(ctx, w.cfg.WebhookTimeout)
				continue
			}

			// result[0] - ключ, result[1] - значение
			payload := result[1]
			var alert StatusAlert
			if err := json.Unmarshal([]byte(payload), &alert); err != nil {
				w.logger.WithError(err).Error("Failed to unmarshal status alert from Redis")
				continue
			}

			w.process(ctx, alert, payload)
		}
	}()
	return ch
}

func (w *Worker) process(ctx context.Context, alert StatusAlert, rawPayload string) {
	log := w.logger.WithFields(logrus.Fields{
		"member_id": alert.MemberID,
		"status":    alert.Status,
	})
	log.Debug("Processing status alert...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping alert delivery.")
		return
	}

	if err := w.deliver(ctx, log, rawPayload); err != nil {
		log.WithError(err).Error("Failed to deliver status alert")
		return
	}
	log.Info("Status alert delivered successfully.")
}

// deliver отправляет payload с экспоненциальной задержкой между попытками
func (w *Worker) deliver(ctx context.Context, log *logrus.Entry, rawPayload string) error {
	maxRetries := w.cfg.WebhookMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	delay := w.cfg.WebhookBaseDelay

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			log.WithError(lastErr).Warnf("Retrying in %v. Retries left: %d", delay, maxRetries-i)
			if !sleep(ctx, delay) {
				return ctx.Err()
			}
			delay *= 2
		}

		lastErr = w.send(ctx, rawPayload)
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", maxRetries, lastErr)
}

func (w *Worker) send(ctx context.Context, rawPayload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status code %d", resp.StatusCode)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
