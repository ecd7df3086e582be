package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/family_crisis_hub/internal/ai"
	"github.com/shenikar/family_crisis_hub/internal/circle"
	"github.com/shenikar/family_crisis_hub/internal/connectivity"
	"github.com/shenikar/family_crisis_hub/internal/crisis"
	"github.com/shenikar/family_crisis_hub/internal/geo"
	"github.com/shenikar/family_crisis_hub/internal/mapview"
	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/shenikar/family_crisis_hub/internal/statestore"
	"github.com/shenikar/family_crisis_hub/internal/webhook"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock запускает таймеры уведомлений вручную
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

// fireAll имитирует истечение всех активных таймеров
func (c *fakeClock) fireAll() {
	c.mu.Lock()
	timers := append([]*fakeTimer{}, c.timers...)
	c.mu.Unlock()
	for _, t := range timers {
		if !t.stopped {
			t.f()
		}
	}
}

// fakeFetcher отдает ответы по очереди; gate, если задан, задерживает ответ
type fakeFetcher struct {
	mu        sync.Mutex
	calls     []models.Coordinates
	responses []crisis.Result
	gates     []chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, loc models.Coordinates) crisis.Result {
	f.mu.Lock()
	i := len(f.calls)
	f.calls = append(f.calls, loc)
	res := crisis.Result{Events: []models.CrisisEvent{}, Outcome: crisis.OutcomeNetwork}
	if i < len(f.responses) {
		res = f.responses[i]
	}
	var gate chan struct{}
	if i < len(f.gates) {
		gate = f.gates[i]
	}
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return res
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakePlanner struct {
	planGate   chan struct{}
	plan       *models.MultiAgentPlan
	planErr    error
	checkin    models.CheckinResult
	checkinErr error
	route      models.RouteInfo
	routeTo    models.Coordinates
}

func (p *fakePlanner) GeneratePlan(ctx context.Context, _ models.Circle, _ []models.CrisisEvent, _ models.Coordinates) (*models.MultiAgentPlan, error) {
	if p.planGate != nil {
		<-p.planGate
	}
	return p.plan, p.planErr
}

func (p *fakePlanner) ParseCheckin(context.Context, string) (models.CheckinResult, error) {
	return p.checkin, p.checkinErr
}

func (p *fakePlanner) AssessRoute(_ context.Context, _ string, _, to models.Coordinates, _ []models.CrisisEvent) models.RouteInfo {
	p.routeTo = to
	return p.route
}

// fakeSimulation запоминает push и проверяет состояние хранилища в момент остановки
type fakeSimulation struct {
	store *circle.Store

	mu            sync.Mutex
	push          func(models.Circle)
	subscriptions int
	stops         int
	circleAtStop  []bool
}

func (s *fakeSimulation) Subscribe(push func(models.Circle)) func() {
	s.mu.Lock()
	s.push = push
	s.subscriptions++
	s.mu.Unlock()
	return func() {
		_, ok := s.store.Get()
		s.mu.Lock()
		s.stops++
		s.circleAtStop = append(s.circleAtStop, ok)
		s.push = nil
		s.mu.Unlock()
	}
}

func (s *fakeSimulation) deliver(c models.Circle) {
	s.mu.Lock()
	push := s.push
	s.mu.Unlock()
	if push != nil {
		push(c)
	}
}

type fakePreparedness struct {
	plan models.PreparednessPlan
	err  error
}

func (p *fakePreparedness) Plan(context.Context) (models.PreparednessPlan, error) {
	return p.plan, nil
}

func (p *fakePreparedness) Toggle(context.Context, string, models.ItemStatus) (models.PreparednessPlan, error) {
	return p.plan, p.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	alerts []webhook.StatusAlert
}

func (p *recordingPublisher) Publish(_ context.Context, a webhook.StatusAlert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, a)
	return nil
}

func (p *recordingPublisher) published() []webhook.StatusAlert {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]webhook.StatusAlert{}, p.alerts...)
}

type testEnv struct {
	svc       *dashboard
	store     *circle.Store
	sim       *fakeSimulation
	fetcher   *fakeFetcher
	planner   *fakePlanner
	prep      *fakePreparedness
	monitor   *connectivity.Monitor
	locator   *geo.PendingLocator
	publisher *recordingPublisher
	backend   *statestore.MemoryBackend
	clock     *fakeClock
	logs      *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logs := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(logs)

	store := circle.NewStore(logger)
	env := &testEnv{
		store:     store,
		sim:       &fakeSimulation{store: store},
		fetcher:   &fakeFetcher{},
		planner:   &fakePlanner{},
		prep:      &fakePreparedness{plan: models.PreparednessPlan{Name: "Plan"}},
		monitor:   connectivity.NewMonitor(true),
		locator:   geo.NewPendingLocator(),
		publisher: &recordingPublisher{},
		backend:   statestore.NewMemoryBackend(),
		clock:     &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		logs:      logs,
	}

	svc := NewDashboardService(Dependencies{
		Store:        store,
		Simulation:   env.sim,
		Fetcher:      env.fetcher,
		Planner:      env.planner,
		Preparedness: env.prep,
		Resolver:     geo.NewResolver(time.Second, env.monitor, logger),
		Locator:      env.locator,
		Monitor:      env.monitor,
		Alerts:       env.publisher,
		State:        env.backend,
		Clock:        env.clock,
		Logger:       logger,
	})
	env.svc = svc.(*dashboard)
	t.Cleanup(svc.Close)
	return env
}

func (e *testEnv) createCircle(t *testing.T) models.Circle {
	t.Helper()
	c, err := e.svc.CreateCircle(context.Background(), "Smiths", []circle.MemberSeed{
		{Name: "Mike", Phone: "555-0101"},
		{Name: "Emma", Phone: "555-0102"},
	})
	require.NoError(t, err)
	return c
}

func TestCreateCircle_StartsSimulationAndPersists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c := env.createCircle(t)

	assert.Equal(t, 1, env.sim.subscriptions)
	saved := statestore.Bind[*models.Circle](env.backend, statestore.KeyCircle, logrus.New()).Load(ctx, nil)
	require.NotNil(t, saved)
	assert.Equal(t, c.ID, saved.ID)

	snap := env.svc.Snapshot()
	require.NotNil(t, snap.Circle)
	assert.Len(t, snap.Circle.Members, 2)
}

func TestCreateCircle_InvalidInputKeepsState(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCircle(t)

	_, err := env.svc.CreateCircle(context.Background(), "  ", nil)
	require.ErrorIs(t, err, circle.ErrInvalidInput)

	current, ok := env.store.Get()
	require.True(t, ok)
	assert.Equal(t, c.ID, current.ID)
	assert.Equal(t, 2, env.sim.subscriptions, "simulation must be resumed for the surviving circle")
}

func TestExit_StopsSimulationBeforeClearing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCircle(t)

	require.NoError(t, env.svc.Exit(ctx))

	assert.Equal(t, []bool{true}, env.sim.circleAtStop, "stop must run while the circle still exists")
	_, ok := env.store.Get()
	assert.False(t, ok)
	assert.Nil(t, env.svc.Snapshot().Circle)

	_, found, err := env.backend.Get(ctx, statestore.KeyCircle)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPush_MergesNewerMembersAndPublishesAlerts(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCircle(t)

	pushed := c.Clone()
	pushed.Name = "Renamed by push"
	pushed.Members[1].Status = models.StatusHelp
	pushed.Members[1].Message = "Stuck"
	pushed.Members[1].LastUpdate = c.Members[1].LastUpdate.Add(time.Second)
	// устаревшее обновление не должно перетирать отображаемое
	pushed.Members[0].Status = models.StatusInjured
	pushed.Members[0].LastUpdate = c.Members[0].LastUpdate.Add(-time.Minute)

	env.sim.deliver(pushed)

	snap := env.svc.Snapshot()
	require.NotNil(t, snap.Circle)
	assert.Equal(t, "Smiths", snap.Circle.Name)
	assert.Equal(t, models.StatusUnknown, snap.Circle.Members[0].Status)
	assert.Equal(t, models.StatusHelp, snap.Circle.Members[1].Status)
	assert.Equal(t, "Stuck", snap.Circle.Members[1].Message)

	alerts := env.publisher.published()
	require.Len(t, alerts, 1)
	assert.Equal(t, c.Members[1].ID, alerts[0].MemberID)
	assert.Equal(t, models.StatusHelp, alerts[0].Status)
}

func TestPush_IgnoresForeignCircle(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCircle(t)

	foreign := c.Clone()
	foreign.ID = "other"
	foreign.Members[0].Status = models.StatusSafe
	foreign.Members[0].LastUpdate = time.Now().Add(time.Hour)

	env.sim.deliver(foreign)

	assert.Equal(t, models.StatusUnknown, env.svc.Snapshot().Circle.Members[0].Status)
}

func TestUpdateMember_NoCircle(t *testing.T) {
	env := newTestEnv(t)

	status := models.StatusSafe
	_, err := env.svc.UpdateMember(context.Background(), "x", circle.MemberPatch{Status: &status})

	var uerr *UserError
	require.ErrorAs(t, err, &uerr)
	assert.ErrorIs(t, err, ErrNoCircle)
}

func TestUpdateMember_MissingMember(t *testing.T) {
	env := newTestEnv(t)
	env.createCircle(t)

	status := models.StatusSafe
	_, err := env.svc.UpdateMember(context.Background(), "missing", circle.MemberPatch{Status: &status})

	require.ErrorIs(t, err, circle.ErrNotFound)
	assert.Contains(t, env.logs.String(), "missing")
}

func TestToggleLocationSharing(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCircle(t)

	m, err := env.svc.ToggleLocationSharing(context.Background(), c.Members[0].ID)
	require.NoError(t, err)
	assert.False(t, m.LocationShared)
	assert.False(t, env.svc.Snapshot().Circle.Members[0].LocationShared)
}

func TestVoiceNotes_BlockedOffline(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCircle(t)
	env.monitor.SetOnline(false)

	_, err := env.svc.AddVoiceNote(context.Background(), c.Members[0].ID, "blob:1")
	require.ErrorIs(t, err, ErrOffline)
	assert.Equal(t, "Cannot record voice notes while offline.", err.Error())

	_, err = env.svc.DeleteVoiceNote(context.Background(), c.Members[0].ID, "n1")
	require.ErrorIs(t, err, ErrOffline)

	current, _ := env.store.Get()
	assert.Empty(t, current.Members[0].VoiceNotes)
}

func TestVoiceNotes_AddAndDelete(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCircle(t)
	ctx := context.Background()

	m, err := env.svc.AddVoiceNote(ctx, c.Members[0].ID, "blob:1")
	require.NoError(t, err)
	require.Len(t, m.VoiceNotes, 1)
	assert.Equal(t, "Sent a voice note.", env.svc.Snapshot().Circle.Members[0].Message)

	m, err = env.svc.DeleteVoiceNote(ctx, c.Members[0].ID, m.VoiceNotes[0].ID)
	require.NoError(t, err)
	assert.Empty(t, m.VoiceNotes)
}

func TestSubmitCheckin_AppliesStatusAndLogs(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCircle(t)
	env.planner.checkin = models.CheckinResult{Status: models.StatusInjured, Summary: "Twisted ankle."}

	m, err := env.svc.SubmitCheckin(context.Background(), c.Members[1].ID, "I twisted my ankle")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInjured, m.Status)
	assert.Equal(t, "Twisted ankle.", m.Message)

	snap := env.svc.Snapshot()
	require.Len(t, snap.Checkins, 1)
	assert.Equal(t, "I twisted my ankle", snap.Checkins[0].OriginalMessage)
	assert.Equal(t, "Emma", snap.Checkins[0].MemberName)
	assert.False(t, snap.Loading.Checkin)
	assert.Len(t, env.publisher.published(), 1)
}

func TestSubmitCheckin_EmptyMessage(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCircle(t)

	_, err := env.svc.SubmitCheckin(context.Background(), c.Members[0].ID, "   ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitCheckin_ParseFailureSetsError(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCircle(t)
	env.planner.checkinErr = &ai.TaskError{Task: ai.TaskCheckin, Kind: ai.ErrInvalidResponse, Cause: errors.New("bad json")}

	_, err := env.svc.SubmitCheckin(context.Background(), c.Members[0].ID, "help")
	require.ErrorIs(t, err, ai.ErrInvalidResponse)

	snap := env.svc.Snapshot()
	assert.NotEmpty(t, snap.CheckinError)
	assert.Empty(t, snap.Checkins)
	assert.Equal(t, models.StatusUnknown, snap.Circle.Members[0].Status)
}

func TestGeneratePlan_SingleFlight(t *testing.T) {
	env := newTestEnv(t)
	env.createCircle(t)
	env.planner.planGate = make(chan struct{})
	env.planner.plan = &models.MultiAgentPlan{SynthesizedPlan: &models.SynthesizedPlan{UrgencyLevel: "URGENT"}}

	done := make(chan error, 1)
	go func() {
		_, err := env.svc.GeneratePlan(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return env.svc.Snapshot().Loading.Plan }, time.Second, time.Millisecond)

	_, err := env.svc.GeneratePlan(context.Background())
	require.ErrorIs(t, err, ErrPlanInFlight)

	close(env.planner.planGate)
	require.NoError(t, <-done)

	snap := env.svc.Snapshot()
	assert.False(t, snap.Loading.Plan)
	require.NotNil(t, snap.Plan)
	assert.Equal(t, "URGENT", snap.Plan.SynthesizedPlan.UrgencyLevel)
}

func TestGeneratePlan_FailureKeepsNoPlan(t *testing.T) {
	env := newTestEnv(t)
	env.createCircle(t)
	env.planner.planErr = &ai.TaskError{Task: ai.TaskPlan, Kind: ai.ErrOffline}

	_, err := env.svc.GeneratePlan(context.Background())
	require.ErrorIs(t, err, ai.ErrOffline)

	snap := env.svc.Snapshot()
	assert.Nil(t, snap.Plan)
	assert.Equal(t, ai.UserMessage(env.planner.planErr), snap.PlanError)
}

func TestGeneratePlan_NewCircleClearsPlan(t *testing.T) {
	env := newTestEnv(t)
	env.createCircle(t)
	env.planner.plan = &models.MultiAgentPlan{}

	_, err := env.svc.GeneratePlan(context.Background())
	require.NoError(t, err)
	require.NotNil(t, env.svc.Snapshot().Plan)

	env.createCircle(t)
	assert.Nil(t, env.svc.Snapshot().Plan)
}

func TestAssessRoute_UsesMeetupFromPlan(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCircle(t)
	ctx := context.Background()
	school := models.Coordinates{Lat: 37.78, Lng: -122.41}
	env.planner.plan = &models.MultiAgentPlan{LogisticsPlan: &models.LogisticsPlan{
		MeetupPoints: []models.MeetupPoint{{Rank: 1, Name: "School", Coordinates: school}},
	}}
	env.planner.route = models.RouteInfo{Duration: "10 min", Viable: true}

	_, err := env.svc.AssessRoute(ctx, c.Members[0].ID, 1)
	require.ErrorIs(t, err, ErrInvalidInput, "no plan yet")

	_, err = env.svc.GeneratePlan(ctx)
	require.NoError(t, err)

	route, err := env.svc.AssessRoute(ctx, c.Members[0].ID, 1)
	require.NoError(t, err)
	assert.True(t, route.Viable)
	assert.Equal(t, school, env.planner.routeTo)

	_, err = env.svc.AssessRoute(ctx, c.Members[0].ID, 2)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRefresh_DiscardsStaleResult(t *testing.T) {
	env := newTestEnv(t)
	stale := []models.CrisisEvent{{ID: "stale"}}
	fresh := []models.CrisisEvent{{ID: "fresh"}}
	gate := make(chan struct{})
	env.fetcher.responses = []crisis.Result{
		{Events: stale, Outcome: crisis.OutcomeNetwork},
		{Events: fresh, Outcome: crisis.OutcomeNetwork},
	}
	env.fetcher.gates = []chan struct{}{gate}

	done := make(chan struct{})
	go func() {
		env.svc.RefreshCrisisData(context.Background())
		close(done)
	}()
	require.Eventually(t, func() bool { return env.fetcher.callCount() == 1 }, time.Second, time.Millisecond)

	env.svc.ReportLocation(context.Background(), models.Coordinates{Lat: 40, Lng: -74})
	close(gate)
	<-done

	snap := env.svc.Snapshot()
	assert.Equal(t, fresh, snap.Events)
	assert.Equal(t, models.Coordinates{Lat: 40, Lng: -74}, snap.Location)
	assert.False(t, snap.Loading.Crisis)
}

func TestRefresh_CancelledRequestKeepsDisplayedEvents(t *testing.T) {
	env := newTestEnv(t)
	shown := []models.CrisisEvent{{ID: "quake"}}
	env.fetcher.responses = []crisis.Result{
		{Events: shown, Outcome: crisis.OutcomeNetwork},
		{Events: []models.CrisisEvent{}, Outcome: crisis.OutcomeFailed},
	}
	require.Equal(t, crisis.OutcomeNetwork, env.svc.RefreshCrisisData(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, crisis.OutcomeFailed, env.svc.RefreshCrisisData(ctx))

	snap := env.svc.Snapshot()
	assert.Equal(t, shown, snap.Events)
	assert.False(t, snap.Loading.Crisis)
}

func TestRefresh_OfflineKeepsDisplayedEvents(t *testing.T) {
	env := newTestEnv(t)
	shown := []models.CrisisEvent{{ID: "quake"}}
	env.fetcher.responses = []crisis.Result{
		{Events: shown, Outcome: crisis.OutcomeNetwork},
		{Outcome: crisis.OutcomeOffline},
		{Events: []models.CrisisEvent{}, Outcome: crisis.OutcomeFailed},
	}

	assert.Equal(t, crisis.OutcomeNetwork, env.svc.RefreshCrisisData(context.Background()))
	assert.Equal(t, crisis.OutcomeOffline, env.svc.RefreshCrisisData(context.Background()))
	assert.Equal(t, shown, env.svc.Snapshot().Events)

	assert.Equal(t, crisis.OutcomeFailed, env.svc.RefreshCrisisData(context.Background()))
	snap := env.svc.Snapshot()
	assert.Empty(t, snap.Events)
	assert.Equal(t, crisis.OutcomeFailed, snap.CrisisOutcome)
}

func TestSetOnline_NotifiesAndRefreshes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.True(t, env.svc.SetOnline(ctx, false))
	assert.False(t, env.svc.SetOnline(ctx, false))
	assert.Equal(t, 0, env.fetcher.callCount())

	snap := env.svc.Snapshot()
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, OfflineBanner, snap.Notifications[0].Message)
	assert.False(t, snap.Online)

	assert.True(t, env.svc.SetOnline(ctx, true))
	assert.Equal(t, 1, env.fetcher.callCount())
	assert.Len(t, env.svc.Snapshot().Notifications, 2)
}

func TestNotifications_AutoDismiss(t *testing.T) {
	env := newTestEnv(t)
	env.svc.SetOnline(context.Background(), false)
	require.Len(t, env.svc.Snapshot().Notifications, 1)

	env.clock.fireAll()

	assert.Empty(t, env.svc.Snapshot().Notifications)
}

func TestDismissNotification(t *testing.T) {
	env := newTestEnv(t)
	env.svc.SetOnline(context.Background(), false)
	id := env.svc.Snapshot().Notifications[0].ID

	assert.True(t, env.svc.DismissNotification(id))
	assert.False(t, env.svc.DismissNotification(id))
	assert.True(t, env.clock.timers[0].stopped)
}

func TestMount_RestoresStateAndFallsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	saved := models.Circle{ID: "c1", Name: "Saved", Members: []models.Member{{ID: "m1", Name: "Mike", Status: models.StatusSafe}}}
	require.NoError(t, statestore.Bind[*models.Circle](env.backend, statestore.KeyCircle, logger).Save(ctx, &saved))
	require.NoError(t, statestore.Bind[Theme](env.backend, statestore.KeyTheme, logger).Save(ctx, ThemeLight))

	env.svc.DenyLocation()
	require.NoError(t, env.svc.Mount(ctx))

	snap := env.svc.Snapshot()
	assert.True(t, snap.Mounted)
	assert.Equal(t, ThemeLight, snap.Theme)
	require.NotNil(t, snap.Circle)
	assert.Equal(t, "Saved", snap.Circle.Name)
	assert.Equal(t, geo.DefaultLocation, snap.Location)
	assert.Equal(t, geo.FallbackWarning, snap.LocationWarning)
	assert.False(t, snap.Loading.Location)
	assert.Equal(t, 1, env.sim.subscriptions)
	assert.Equal(t, []models.Coordinates{geo.DefaultLocation}, env.fetcher.calls)

	// повторный Mount ничего не делает
	require.NoError(t, env.svc.Mount(ctx))
	assert.Equal(t, 1, env.fetcher.callCount())
}

func TestMount_UsesReportedLocation(t *testing.T) {
	env := newTestEnv(t)
	loc := models.Coordinates{Lat: 34.05, Lng: -118.24}
	env.locator.Report(loc)

	require.NoError(t, env.svc.Mount(context.Background()))

	snap := env.svc.Snapshot()
	assert.Equal(t, loc, snap.Location)
	assert.Empty(t, snap.LocationWarning)
	assert.Nil(t, snap.Circle)
	assert.Equal(t, 0, env.sim.subscriptions)
}

func TestViewAndTheme(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.SetView(ViewPreparedness))
	require.ErrorIs(t, env.svc.SetView("settings"), ErrInvalidInput)
	require.NoError(t, env.svc.SetCrisisTab(TabMap))
	require.ErrorIs(t, env.svc.SetCrisisTab("chat"), ErrInvalidInput)
	require.NoError(t, env.svc.SetTheme(ctx, ThemeLight))
	require.ErrorIs(t, env.svc.SetTheme(ctx, "sepia"), ErrInvalidInput)

	snap := env.svc.Snapshot()
	assert.Equal(t, ViewPreparedness, snap.View)
	assert.Equal(t, TabMap, snap.CrisisTab)
	assert.Equal(t, ThemeLight, env.svc.Theme())
}

func TestTogglePreparednessItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.monitor.SetOnline(false)
	_, err := env.svc.TogglePreparednessItem(ctx, "water", "")
	require.ErrorIs(t, err, ErrOffline)

	env.monitor.SetOnline(true)
	env.prep.err = errors.New("write failed")
	plan, err := env.svc.TogglePreparednessItem(ctx, "water", "")
	require.Error(t, err)
	assert.Equal(t, "Plan", plan.Name)

	levels := []NotificationLevel{}
	for _, n := range env.svc.Snapshot().Notifications {
		levels = append(levels, n.Level)
	}
	assert.Contains(t, levels, LevelError)
}

func TestMapView_TextFallbackWithoutRenderer(t *testing.T) {
	env := newTestEnv(t)
	env.createCircle(t)

	view := env.svc.MapView()

	assert.Equal(t, mapview.ModeText, view.Mode)
	assert.Len(t, view.Markers.Members, 2)
	assert.Len(t, view.Fallback, 2)
}
