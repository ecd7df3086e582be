package webhook

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/family_crisis_hub/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(url string) (*Worker, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	cfg := &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "s3cret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	return NewWorker(nil, logger, cfg), buf
}

func TestWorker_DeliverSignsPayload(t *testing.T) {
	payload := `{"member_id":"m1","status":"HELP"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, payload, string(body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, generateHMACSHA256(payload, "s3cret"), r.Header.Get("X-Webhook-Signature"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w, buf := newTestWorker(srv.URL)
	w.process(context.Background(), StatusAlert{MemberID: "m1"}, payload)
	assert.Contains(t, buf.String(), "Status alert delivered successfully.")
}

func TestWorker_DeliverRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w, _ := newTestWorker(srv.URL)
	err := w.deliver(context.Background(), w.logger.WithField("test", true), "{}")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWorker_DeliverGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	w, _ := newTestWorker(srv.URL)
	err := w.deliver(context.Background(), w.logger.WithField("test", true), "{}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, int32(3), calls.Load())
}

func TestWorker_SkipsWithoutURL(t *testing.T) {
	w, buf := newTestWorker("")
	w.process(context.Background(), StatusAlert{MemberID: "m1"}, "{}")
	assert.Contains(t, buf.String(), "Webhook URL is not configured")
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), StatusAlert{}))
}
