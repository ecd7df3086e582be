package crisis

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMonitor struct{ online atomic.Bool }

func (m *stubMonitor) Online() bool { return m.online.Load() }

func onlineMonitor() *stubMonitor {
	m := &stubMonitor{}
	m.online.Store(true)
	return m
}

type countingSource struct {
	name   string
	ttl    time.Duration
	calls  atomic.Int32
	err    error
	events []models.CrisisEvent
}

func (s *countingSource) Name() string       { return s.name }
func (s *countingSource) TTL() time.Duration { return s.ttl }

func (s *countingSource) Query(_ context.Context, _ models.Coordinates) ([]models.CrisisEvent, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

var cityHall = models.Coordinates{Lat: 37.7749, Lng: -122.4194}

func newTestFetcher(monitor OnlineChecker, sources ...Source) (*Fetcher, *time.Time) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	f := NewFetcher(sources, NewMemoryCache(), monitor, logger)
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }
	return f, &now
}

func TestFetch_SecondCallWithinWindowUsesCache(t *testing.T) {
	src := &countingSource{name: "usgs", ttl: 5 * time.Minute, events: []models.CrisisEvent{{ID: "eq1"}}}
	f, now := newTestFetcher(onlineMonitor(), src)
	ctx := context.Background()

	first := f.Fetch(ctx, cityHall)
	require.Equal(t, OutcomeNetwork, first.Outcome)

	*now = now.Add(4 * time.Minute)
	second := f.Fetch(ctx, cityHall)

	assert.Equal(t, OutcomeCache, second.Outcome)
	assert.Equal(t, first.Events, second.Events)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestFetch_ExpiredWindowRefetches(t *testing.T) {
	src := &countingSource{name: "usgs", ttl: 5 * time.Minute, events: []models.CrisisEvent{{ID: "eq1"}}}
	f, now := newTestFetcher(onlineMonitor(), src)
	ctx := context.Background()

	f.Fetch(ctx, cityHall)
	*now = now.Add(5 * time.Minute)
	res := f.Fetch(ctx, cityHall)

	assert.Equal(t, OutcomeNetwork, res.Outcome)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestFetch_DifferentLocationMissesCache(t *testing.T) {
	src := &countingSource{name: "usgs", ttl: 5 * time.Minute}
	f, _ := newTestFetcher(onlineMonitor(), src)
	ctx := context.Background()

	f.Fetch(ctx, cityHall)
	f.Fetch(ctx, models.Coordinates{Lat: 34.05, Lng: -118.24})

	assert.Equal(t, int32(2), src.calls.Load())
}

func TestFetch_FailureYieldsEmptyList(t *testing.T) {
	src := &countingSource{name: "usgs", ttl: 5 * time.Minute, err: errors.New("503")}
	f, _ := newTestFetcher(onlineMonitor(), src)

	res := f.Fetch(context.Background(), cityHall)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.NotNil(t, res.Events)
	assert.Empty(t, res.Events)
}

func TestFetch_PartialFailureKeepsHealthySources(t *testing.T) {
	good := &countingSource{name: "usgs", ttl: time.Minute, events: []models.CrisisEvent{{ID: "eq1"}}}
	bad := &countingSource{name: "noaa", ttl: time.Minute, err: errors.New("boom")}
	f, _ := newTestFetcher(onlineMonitor(), good, bad)

	res := f.Fetch(context.Background(), cityHall)

	assert.Equal(t, OutcomePartial, res.Outcome)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "eq1", res.Events[0].ID)
}

func TestFetch_OfflineShortCircuits(t *testing.T) {
	src := &countingSource{name: "usgs", ttl: time.Minute}
	f, _ := newTestFetcher(&stubMonitor{}, src)

	res := f.Fetch(context.Background(), cityHall)

	assert.Equal(t, OutcomeOffline, res.Outcome)
	assert.Nil(t, res.Events)
	assert.Equal(t, int32(0), src.calls.Load())
}

func TestFetch_ConcatenatesInSourceOrder(t *testing.T) {
	a := &countingSource{name: "a", ttl: time.Minute, events: []models.CrisisEvent{{ID: "a1"}, {ID: "a2"}}}
	b := &countingSource{name: "b", ttl: time.Minute, events: []models.CrisisEvent{{ID: "b1"}}}
	f, _ := newTestFetcher(onlineMonitor(), a, b)

	res := f.Fetch(context.Background(), cityHall)

	ids := make([]string, 0, len(res.Events))
	for _, e := range res.Events {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"a1", "a2", "b1"}, ids)
}

type gatedSource struct {
	countingSource
	entered chan struct{}
	release chan struct{}
}

func (s *gatedSource) Query(ctx context.Context, loc models.Coordinates) ([]models.CrisisEvent, error) {
	if s.calls.Load() == 0 {
		close(s.entered)
	}
	s.calls.Add(1)
	select {
	case <-s.release:
		return s.events, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestFetch_CancelledCallerDoesNotFailSharedQuery(t *testing.T) {
	src := &gatedSource{
		countingSource: countingSource{
			name:   "usgs",
			ttl:    time.Minute,
			events: []models.CrisisEvent{{ID: "q1", Title: "M4.1"}},
		},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	f, _ := newTestFetcher(onlineMonitor(), src)

	firstCtx, cancel := context.WithCancel(context.Background())
	first := make(chan Result, 1)
	go func() { first <- f.Fetch(firstCtx, cityHall) }()
	<-src.entered

	second := make(chan Result, 1)
	go func() { second <- f.Fetch(context.Background(), cityHall) }()
	time.Sleep(50 * time.Millisecond)

	cancel()
	abandoned := <-first
	assert.Equal(t, OutcomeFailed, abandoned.Outcome)

	close(src.release)
	res := <-second
	assert.Equal(t, OutcomeNetwork, res.Outcome)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "q1", res.Events[0].ID)
	assert.Equal(t, int32(1), src.calls.Load())
}
