package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/family_crisis_hub/internal/ai"
	"github.com/shenikar/family_crisis_hub/internal/circle"
	"github.com/shenikar/family_crisis_hub/internal/crisis"
	"github.com/shenikar/family_crisis_hub/internal/geo"
	"github.com/shenikar/family_crisis_hub/internal/mapview"
	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/shenikar/family_crisis_hub/internal/statestore"
	"github.com/shenikar/family_crisis_hub/internal/webhook"
	"github.com/sirupsen/logrus"
)

// CrisisFetcher - источник кризисных данных, не возвращающий ошибок
type CrisisFetcher interface {
	Fetch(ctx context.Context, loc models.Coordinates) crisis.Result
}

// Planner - AI-оркестратор
type Planner interface {
	GeneratePlan(ctx context.Context, c models.Circle, events []models.CrisisEvent, loc models.Coordinates) (*models.MultiAgentPlan, error)
	ParseCheckin(ctx context.Context, message string) (models.CheckinResult, error)
	AssessRoute(ctx context.Context, memberName string, from, to models.Coordinates, events []models.CrisisEvent) models.RouteInfo
}

// Simulation - фоновый поток обновлений круга
type Simulation interface {
	Subscribe(push func(models.Circle)) (stop func())
}

type LocationResolver interface {
	Resolve(ctx context.Context, locator geo.Locator) geo.Resolution
}

type Preparedness interface {
	Plan(ctx context.Context) (models.PreparednessPlan, error)
	Toggle(ctx context.Context, id string, status models.ItemStatus) (models.PreparednessPlan, error)
}

type Connectivity interface {
	Online() bool
	SetOnline(online bool) bool
	Subscribe(fn func(online bool)) func()
}

type Timer interface {
	Stop() bool
}

// Clock позволяет подменить время и таймеры автоскрытия уведомлений
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time                            { return time.Now() }
func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// locationReporter реализуется локаторами, ожидающими позицию от клиента
type locationReporter interface {
	Report(loc models.Coordinates)
	Fail(err error)
}

// DashboardService - сессия панели: вид, вкладки, флаги загрузки, уведомления
// и согласование фоновых обновлений с отображаемым кругом
type DashboardService interface {
	Mount(ctx context.Context) error
	Snapshot() DashboardState
	SetView(v View) error
	SetCrisisTab(t CrisisTab) error

	CreateCircle(ctx context.Context, name string, seeds []circle.MemberSeed) (models.Circle, error)
	Exit(ctx context.Context) error
	UpdateMember(ctx context.Context, id string, patch circle.MemberPatch) (models.Member, error)
	ToggleLocationSharing(ctx context.Context, id string) (models.Member, error)
	AddVoiceNote(ctx context.Context, memberID, url string) (models.Member, error)
	DeleteVoiceNote(ctx context.Context, memberID, noteID string) (models.Member, error)
	SubmitCheckin(ctx context.Context, memberID, message string) (models.Member, error)

	GeneratePlan(ctx context.Context) (*models.MultiAgentPlan, error)
	ClearPlan(ctx context.Context) error
	AssessRoute(ctx context.Context, memberID string, meetupRank int) (models.RouteInfo, error)

	RefreshCrisisData(ctx context.Context) crisis.Outcome
	ReportLocation(ctx context.Context, loc models.Coordinates) crisis.Outcome
	DenyLocation()
	SetOnline(ctx context.Context, online bool) bool

	Preparedness(ctx context.Context) (models.PreparednessPlan, error)
	TogglePreparednessItem(ctx context.Context, id string, status models.ItemStatus) (models.PreparednessPlan, error)

	DismissNotification(id string) bool
	Theme() Theme
	SetTheme(ctx context.Context, t Theme) error
	MapView() mapview.View

	Close()
}

// Dependencies - компоненты, из которых собирается панель
type Dependencies struct {
	Store           *circle.Store
	Simulation      Simulation
	Fetcher         CrisisFetcher
	Planner         Planner
	Preparedness    Preparedness
	Resolver        LocationResolver
	Locator         geo.Locator
	Monitor         Connectivity
	Alerts          webhook.Publisher
	Renderer        mapview.Renderer
	State           statestore.Backend
	Clock           Clock
	NotificationTTL time.Duration
	Logger          *logrus.Logger
}

const DefaultNotificationTTL = 7 * time.Second

type dashboard struct {
	store       *circle.Store
	sim         Simulation
	fetcher     CrisisFetcher
	planner     Planner
	prep        Preparedness
	resolver    LocationResolver
	locator     geo.Locator
	monitor     Connectivity
	alerts      webhook.Publisher
	renderer    mapview.Renderer
	clock       Clock
	ttl         time.Duration
	logger      *logrus.Logger
	unsubscribe func()

	themeState  *statestore.Binding[Theme]
	circleState *statestore.Binding[*models.Circle]
	planState   *statestore.Binding[*models.MultiAgentPlan]
	crisisState *statestore.Binding[*CrisisSnapshot]

	// simMu упорядочивает запуск и остановку симуляции; stopSim вызывается только без mu
	simMu   sync.Mutex
	stopSim func()

	crisisGen   atomic.Uint64
	locationGen atomic.Uint64

	mu              sync.Mutex
	mounted         bool
	view            View
	tab             CrisisTab
	theme           Theme
	loading         Loading
	notifications   []Notification
	timers          map[string]Timer
	circle          *models.Circle
	events          []models.CrisisEvent
	outcome         crisis.Outcome
	plan            *models.MultiAgentPlan
	planInFlight    bool
	planError       string
	checkinError    string
	checkins        []CheckinEntry
	location        models.Coordinates
	locationWarning string
}

func NewDashboardService(deps Dependencies) DashboardService {
	if deps.Clock == nil {
		deps.Clock = realClock{}
	}
	if deps.NotificationTTL <= 0 {
		deps.NotificationTTL = DefaultNotificationTTL
	}
	if deps.Alerts == nil {
		deps.Alerts = webhook.NoopPublisher{}
	}

	d := &dashboard{
		store:       deps.Store,
		sim:         deps.Simulation,
		fetcher:     deps.Fetcher,
		planner:     deps.Planner,
		prep:        deps.Preparedness,
		resolver:    deps.Resolver,
		locator:     deps.Locator,
		monitor:     deps.Monitor,
		alerts:      deps.Alerts,
		renderer:    deps.Renderer,
		clock:       deps.Clock,
		ttl:         deps.NotificationTTL,
		logger:      deps.Logger,
		themeState:  statestore.Bind[Theme](deps.State, statestore.KeyTheme, deps.Logger),
		circleState: statestore.Bind[*models.Circle](deps.State, statestore.KeyCircle, deps.Logger),
		planState:   statestore.Bind[*models.MultiAgentPlan](deps.State, statestore.KeyAIPlan, deps.Logger),
		crisisState: statestore.Bind[*CrisisSnapshot](deps.State, statestore.KeyCrisisCache, deps.Logger),
		view:        ViewCrisis,
		tab:         TabStatus,
		theme:       ThemeDark,
		timers:      make(map[string]Timer),
		events:      []models.CrisisEvent{},
		location:    geo.DefaultLocation,
	}
	d.unsubscribe = d.monitor.Subscribe(d.onConnectivity)
	return d
}

func (d *dashboard) log(method string) *logrus.Entry {
	return d.logger.WithFields(logrus.Fields{
		"service": "dashboard",
		"method":  method,
	})
}

// Mount восстанавливает сохраненное состояние, определяет позицию и загружает кризисные данные
func (d *dashboard) Mount(ctx context.Context) error {
	log := d.log("Mount")

	d.mu.Lock()
	if d.mounted {
		d.mu.Unlock()
		return nil
	}
	d.mounted = true
	d.loading.Circle = true
	d.loading.Location = true
	d.mu.Unlock()

	theme := d.themeState.Load(ctx, ThemeDark)
	if !theme.Valid() {
		theme = ThemeDark
	}
	plan := d.planState.Load(ctx, nil)
	snapshot := d.crisisState.Load(ctx, nil)
	saved := d.circleState.Load(ctx, nil)

	d.simMu.Lock()
	if _, ok := d.store.Get(); !ok && saved != nil {
		d.store.Restore(*saved)
	}
	current, hasCircle := d.store.Get()

	d.mu.Lock()
	d.theme = theme
	if hasCircle {
		d.circle = &current
		d.plan = plan
	}
	if snapshot != nil && len(d.events) == 0 {
		d.events = snapshot.Events
		d.outcome = crisis.OutcomeCache
	}
	d.loading.Circle = false
	d.mu.Unlock()

	if hasCircle {
		d.startSimulationLocked()
	}
	d.simMu.Unlock()

	log.WithField("has_circle", hasCircle).Info("Dashboard state restored")

	gen := d.locationGen.Load()
	res := d.resolver.Resolve(ctx, d.locator)

	d.mu.Lock()
	if gen != d.locationGen.Load() {
		// клиент уже сообщил более новую позицию
		d.mu.Unlock()
		return nil
	}
	d.location = res.Location
	d.locationWarning = res.Warning
	d.loading.Location = false
	if res.Fallback {
		d.notifyLocked(LevelWarning, res.Warning)
	}
	d.mu.Unlock()

	d.refresh(ctx, res.Location)
	return nil
}

func (d *dashboard) Snapshot() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := DashboardState{
		Mounted:         d.mounted,
		View:            d.view,
		CrisisTab:       d.tab,
		Theme:           d.theme,
		Online:          d.monitor.Online(),
		Loading:         d.loading,
		Notifications:   append([]Notification{}, d.notifications...),
		Events:          append([]models.CrisisEvent{}, d.events...),
		CrisisOutcome:   d.outcome,
		PlanError:       d.planError,
		CheckinError:    d.checkinError,
		Checkins:        append([]CheckinEntry{}, d.checkins...),
		Location:        d.location,
		LocationWarning: d.locationWarning,
	}
	if d.circle != nil {
		c := d.circle.Clone()
		st.Circle = &c
	}
	if d.plan != nil {
		p := *d.plan
		st.Plan = &p
	}
	return st
}

func (d *dashboard) SetView(v View) error {
	if !v.Valid() {
		return fmt.Errorf("service: unknown view %q: %w", v, ErrInvalidInput)
	}
	d.mu.Lock()
	d.view = v
	d.mu.Unlock()
	return nil
}

func (d *dashboard) SetCrisisTab(t CrisisTab) error {
	if !t.Valid() {
		return fmt.Errorf("service: unknown crisis tab %q: %w", t, ErrInvalidInput)
	}
	d.mu.Lock()
	d.tab = t
	d.mu.Unlock()
	return nil
}

// CreateCircle создает круг и запускает симуляцию для него
func (d *dashboard) CreateCircle(ctx context.Context, name string, seeds []circle.MemberSeed) (models.Circle, error) {
	log := d.log("CreateCircle").WithField("name", name)
	log.Info("Attempting to create a family circle")

	d.simMu.Lock()
	defer d.simMu.Unlock()

	d.stopSimulationLocked()
	c, err := d.store.Create(name, seeds)
	if err != nil {
		log.WithError(err).Warn("Failed to create family circle")
		if _, ok := d.store.Get(); ok {
			d.startSimulationLocked()
		}
		return models.Circle{}, fmt.Errorf("service: could not create circle: %w", err)
	}

	d.mu.Lock()
	displayed := c.Clone()
	d.circle = &displayed
	d.plan = nil
	d.planError = ""
	d.checkins = nil
	d.checkinError = ""
	d.mu.Unlock()

	d.persistCircle(ctx)
	if err := d.planState.Clear(ctx); err != nil {
		log.WithError(err).Warn("Failed to clear persisted plan")
	}
	d.startSimulationLocked()

	log.WithField("circle_id", c.ID).Info("Family circle created successfully")
	return c, nil
}

// Exit останавливает симуляцию и только затем очищает круг
func (d *dashboard) Exit(ctx context.Context) error {
	log := d.log("Exit")

	d.simMu.Lock()
	defer d.simMu.Unlock()

	d.stopSimulationLocked()
	d.store.Clear()

	d.mu.Lock()
	d.circle = nil
	d.plan = nil
	d.planError = ""
	d.checkins = nil
	d.checkinError = ""
	d.view = ViewCrisis
	d.tab = TabStatus
	d.mu.Unlock()

	var errs []error
	if err := d.circleState.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := d.planState.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		log.WithError(err).Error("Failed to clear persisted circle state")
		return fmt.Errorf("service: could not clear persisted state: %w", err)
	}

	log.Info("Family circle cleared")
	return nil
}

func (d *dashboard) UpdateMember(ctx context.Context, id string, patch circle.MemberPatch) (models.Member, error) {
	log := d.log("UpdateMember").WithField("member_id", id)

	if _, ok := d.store.Get(); !ok {
		return models.Member{}, userError(ErrNoCircle, noCircleMessage)
	}

	m, err := d.store.UpdateMember(id, patch)
	if err != nil {
		log.WithError(err).Error("Failed to update member")
		return models.Member{}, fmt.Errorf("service: could not update member: %w", err)
	}

	d.applyMembers(ctx, m)
	return m, nil
}

func (d *dashboard) ToggleLocationSharing(ctx context.Context, id string) (models.Member, error) {
	c, ok := d.store.Get()
	if !ok {
		return models.Member{}, userError(ErrNoCircle, noCircleMessage)
	}
	idx := c.FindMember(id)
	if idx < 0 {
		d.log("ToggleLocationSharing").WithField("member_id", id).Error("Toggle targets a missing member")
		return models.Member{}, fmt.Errorf("service: member %s: %w", id, circle.ErrNotFound)
	}
	shared := !c.Members[idx].LocationShared
	return d.UpdateMember(ctx, id, circle.MemberPatch{LocationShared: &shared})
}

func (d *dashboard) AddVoiceNote(ctx context.Context, memberID, url string) (models.Member, error) {
	log := d.log("AddVoiceNote").WithField("member_id", memberID)

	if !d.monitor.Online() {
		log.Warn("Voice note recording blocked while offline")
		return models.Member{}, userError(ErrOffline, voiceRecordOffline)
	}
	if _, ok := d.store.Get(); !ok {
		return models.Member{}, userError(ErrNoCircle, noCircleMessage)
	}

	m, note, err := d.store.AddVoiceNote(memberID, url)
	if err != nil {
		log.WithError(err).Error("Failed to add voice note")
		return models.Member{}, fmt.Errorf("service: could not add voice note: %w", err)
	}

	d.applyMembers(ctx, m)
	log.WithField("note_id", note.ID).Info("Voice note added")
	return m, nil
}

func (d *dashboard) DeleteVoiceNote(ctx context.Context, memberID, noteID string) (models.Member, error) {
	log := d.log("DeleteVoiceNote").WithFields(logrus.Fields{"member_id": memberID, "note_id": noteID})

	if !d.monitor.Online() {
		log.Warn("Voice note deletion blocked while offline")
		return models.Member{}, userError(ErrOffline, voiceDeleteOffline)
	}
	if _, ok := d.store.Get(); !ok {
		return models.Member{}, userError(ErrNoCircle, noCircleMessage)
	}

	m, err := d.store.DeleteVoiceNote(memberID, noteID)
	if err != nil {
		log.WithError(err).Error("Failed to delete voice note")
		return models.Member{}, fmt.Errorf("service: could not delete voice note: %w", err)
	}

	d.applyMembers(ctx, m)
	return m, nil
}

// SubmitCheckin разбирает SMS и выставляет участнику статус и краткое описание
func (d *dashboard) SubmitCheckin(ctx context.Context, memberID, message string) (models.Member, error) {
	log := d.log("SubmitCheckin").WithField("member_id", memberID)

	if strings.TrimSpace(memberID) == "" || strings.TrimSpace(message) == "" {
		return models.Member{}, userError(ErrInvalidInput, checkinInvalidMessage)
	}
	c, ok := d.store.Get()
	if !ok {
		return models.Member{}, userError(ErrNoCircle, noCircleMessage)
	}
	idx := c.FindMember(memberID)
	if idx < 0 {
		log.Error("Check-in targets a missing member")
		return models.Member{}, fmt.Errorf("service: member %s: %w", memberID, circle.ErrNotFound)
	}

	d.mu.Lock()
	d.loading.Checkin = true
	d.checkinError = ""
	d.mu.Unlock()

	res, err := d.planner.ParseCheckin(ctx, message)
	if err != nil {
		d.mu.Lock()
		d.loading.Checkin = false
		d.checkinError = ai.UserMessage(err)
		d.mu.Unlock()
		log.WithError(err).Warn("Failed to parse check-in")
		return models.Member{}, fmt.Errorf("service: could not parse check-in: %w", err)
	}

	status, summary := res.Status, res.Summary
	m, err := d.UpdateMember(ctx, memberID, circle.MemberPatch{Status: &status, Message: &summary})

	d.mu.Lock()
	d.loading.Checkin = false
	if err == nil {
		entry := CheckinEntry{
			MemberID:        m.ID,
			MemberName:      m.Name,
			OriginalMessage: message,
			Status:          status,
			Summary:         summary,
			At:              d.clock.Now().UTC(),
		}
		d.checkins = append([]CheckinEntry{entry}, d.checkins...)
		if len(d.checkins) > maxCheckinLog {
			d.checkins = d.checkins[:maxCheckinLog]
		}
	}
	d.mu.Unlock()

	if err != nil {
		return models.Member{}, err
	}
	log.WithField("status", status).Info("Check-in applied")
	return m, nil
}

// GeneratePlan допускает только одну генерацию одновременно
func (d *dashboard) GeneratePlan(ctx context.Context) (*models.MultiAgentPlan, error) {
	log := d.log("GeneratePlan")

	c, ok := d.store.Get()
	if !ok {
		return nil, userError(ErrNoCircle, noCircleMessage)
	}

	d.mu.Lock()
	if d.planInFlight {
		d.mu.Unlock()
		return nil, userError(ErrPlanInFlight, planInFlightMessage)
	}
	d.planInFlight = true
	d.loading.Plan = true
	d.planError = ""
	events := append([]models.CrisisEvent{}, d.events...)
	loc := d.location
	d.mu.Unlock()

	log.Info("Requesting AI plan")
	plan, err := d.planner.GeneratePlan(ctx, c, events, loc)

	d.mu.Lock()
	d.planInFlight = false
	d.loading.Plan = false
	if err != nil {
		d.planError = ai.UserMessage(err)
		d.mu.Unlock()
		log.WithError(err).Error("Failed to generate AI plan")
		return nil, fmt.Errorf("service: could not generate plan: %w", err)
	}
	if d.circle == nil || d.circle.ID != c.ID {
		// круг сменился, пока план генерировался
		d.mu.Unlock()
		log.Warn("Discarding plan for a circle that no longer exists")
		return plan, nil
	}
	d.plan = plan
	d.mu.Unlock()

	if err := d.planState.Save(ctx, plan); err != nil {
		log.WithError(err).Warn("Failed to persist AI plan")
	}
	log.Info("AI plan generated successfully")
	return plan, nil
}

func (d *dashboard) ClearPlan(ctx context.Context) error {
	d.mu.Lock()
	d.plan = nil
	d.planError = ""
	d.mu.Unlock()

	if err := d.planState.Clear(ctx); err != nil {
		return fmt.Errorf("service: could not clear plan: %w", err)
	}
	return nil
}

// AssessRoute оценивает путь участника до точки сбора текущего плана
func (d *dashboard) AssessRoute(ctx context.Context, memberID string, meetupRank int) (models.RouteInfo, error) {
	log := d.log("AssessRoute").WithFields(logrus.Fields{"member_id": memberID, "rank": meetupRank})

	c, ok := d.store.Get()
	if !ok {
		return models.RouteInfo{}, userError(ErrNoCircle, noCircleMessage)
	}
	idx := c.FindMember(memberID)
	if idx < 0 {
		log.Error("Route assessment targets a missing member")
		return models.RouteInfo{}, fmt.Errorf("service: member %s: %w", memberID, circle.ErrNotFound)
	}
	m := c.Members[idx]
	if !m.LocationShared || m.Location == nil {
		return models.RouteInfo{}, userError(ErrInvalidInput, locationHiddenMessage)
	}

	d.mu.Lock()
	var meetup *models.MeetupPoint
	if d.plan != nil && d.plan.LogisticsPlan != nil {
		for i := range d.plan.LogisticsPlan.MeetupPoints {
			if d.plan.LogisticsPlan.MeetupPoints[i].Rank == meetupRank {
				p := d.plan.LogisticsPlan.MeetupPoints[i]
				meetup = &p
				break
			}
		}
	}
	events := append([]models.CrisisEvent{}, d.events...)
	d.mu.Unlock()

	if meetup == nil {
		return models.RouteInfo{}, userError(ErrInvalidInput, unknownMeetupMessage)
	}

	route := d.planner.AssessRoute(ctx, m.Name, *m.Location, meetup.Coordinates, events)
	log.WithField("viable", route.Viable).Info("Route assessed")
	return route, nil
}

func (d *dashboard) RefreshCrisisData(ctx context.Context) crisis.Outcome {
	d.mu.Lock()
	loc := d.location
	d.mu.Unlock()
	return d.refresh(ctx, loc)
}

// ReportLocation принимает позицию от клиента; более ранние запросы данных отбрасываются
func (d *dashboard) ReportLocation(ctx context.Context, loc models.Coordinates) crisis.Outcome {
	if r, ok := d.locator.(locationReporter); ok {
		r.Report(loc)
	}
	d.locationGen.Add(1)

	d.mu.Lock()
	d.location = loc
	d.locationWarning = ""
	d.loading.Location = false
	d.mu.Unlock()

	return d.refresh(ctx, loc)
}

// DenyLocation сообщает об отказе клиента в геолокации; Mount сразу переходит на запасную точку
func (d *dashboard) DenyLocation() {
	if r, ok := d.locator.(locationReporter); ok {
		r.Fail(geo.ErrDenied)
	}
}

// refresh применяет результат только если за время запроса не был начат более новый
func (d *dashboard) refresh(ctx context.Context, loc models.Coordinates) crisis.Outcome {
	log := d.log("RefreshCrisisData")
	gen := d.crisisGen.Add(1)

	d.mu.Lock()
	d.loading.Crisis = true
	d.mu.Unlock()

	res := d.fetcher.Fetch(ctx, loc)

	d.mu.Lock()
	if gen != d.crisisGen.Load() {
		d.mu.Unlock()
		log.WithField("generation", gen).Debug("Discarding stale crisis data")
		return res.Outcome
	}
	d.loading.Crisis = false
	// вызывающий ушел; показанные данные остаются
	if res.Outcome == crisis.OutcomeOffline || ctx.Err() != nil {
		d.mu.Unlock()
		return res.Outcome
	}
	d.events = res.Events
	d.outcome = res.Outcome
	d.mu.Unlock()

	if res.Outcome != crisis.OutcomeFailed {
		snap := &CrisisSnapshot{Location: loc, FetchedAt: d.clock.Now().UTC(), Events: res.Events}
		if err := d.crisisState.Save(ctx, snap); err != nil {
			log.WithError(err).Warn("Failed to persist crisis data")
		}
	}
	return res.Outcome
}

// SetOnline применяет сигнал сети; при восстановлении связи данные перезагружаются
func (d *dashboard) SetOnline(ctx context.Context, online bool) bool {
	changed := d.monitor.SetOnline(online)
	if changed && online {
		d.RefreshCrisisData(ctx)
	}
	return changed
}

func (d *dashboard) onConnectivity(online bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if online {
		d.notifyLocked(LevelInfo, onlineNotice)
		return
	}
	d.notifyLocked(LevelWarning, OfflineBanner)
}

func (d *dashboard) Preparedness(ctx context.Context) (models.PreparednessPlan, error) {
	d.mu.Lock()
	d.loading.Preparedness = true
	d.mu.Unlock()

	plan, err := d.prep.Plan(ctx)

	d.mu.Lock()
	d.loading.Preparedness = false
	d.mu.Unlock()

	if err != nil {
		d.log("Preparedness").WithError(err).Error("Failed to load preparedness plan")
		return models.PreparednessPlan{}, fmt.Errorf("service: could not load preparedness plan: %w", err)
	}
	return plan, nil
}

func (d *dashboard) TogglePreparednessItem(ctx context.Context, id string, status models.ItemStatus) (models.PreparednessPlan, error) {
	if !d.monitor.Online() {
		return models.PreparednessPlan{}, userError(ErrOffline, preparednessOffline)
	}
	plan, err := d.prep.Toggle(ctx, id, status)
	if err != nil {
		d.mu.Lock()
		d.notifyLocked(LevelError, "Could not update the preparedness item. The change was reverted.")
		d.mu.Unlock()
		return plan, fmt.Errorf("service: could not toggle preparedness item: %w", err)
	}
	return plan, nil
}

// notifyLocked добавляет уведомление и планирует его скрытие; вызывается под mu
func (d *dashboard) notifyLocked(level NotificationLevel, msg string) {
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   msg,
		CreatedAt: d.clock.Now().UTC(),
	}
	d.notifications = append(d.notifications, n)
	d.timers[n.ID] = d.clock.AfterFunc(d.ttl, func() { d.DismissNotification(n.ID) })
}

func (d *dashboard) DismissNotification(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[id]; ok {
		t.Stop()
		delete(d.timers, id)
	}
	for i, n := range d.notifications {
		if n.ID == id {
			d.notifications = append(d.notifications[:i], d.notifications[i+1:]...)
			return true
		}
	}
	return false
}

func (d *dashboard) Theme() Theme {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.theme
}

func (d *dashboard) SetTheme(ctx context.Context, t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("service: unknown theme %q: %w", t, ErrInvalidInput)
	}
	d.mu.Lock()
	d.theme = t
	d.mu.Unlock()

	if err := d.themeState.Save(ctx, t); err != nil {
		return fmt.Errorf("service: could not save theme: %w", err)
	}
	return nil
}

func (d *dashboard) MapView() mapview.View {
	d.mu.Lock()
	var members []models.Member
	if d.circle != nil {
		members = d.circle.Clone().Members
	}
	events := append([]models.CrisisEvent{}, d.events...)
	var meetups []models.MeetupPoint
	if d.plan != nil && d.plan.LogisticsPlan != nil {
		meetups = d.plan.LogisticsPlan.MeetupPoints
	}
	d.mu.Unlock()

	view := mapview.Render(d.renderer, mapview.Compose(members, events, meetups))
	if view.Mode == mapview.ModeText {
		d.log("MapView").WithField("notice", view.Notice).Debug("Map unavailable, using text fallback")
	}
	return view
}

// Close останавливает симуляцию, таймеры и подписку на сеть
func (d *dashboard) Close() {
	d.simMu.Lock()
	d.stopSimulationLocked()
	d.simMu.Unlock()

	if d.unsubscribe != nil {
		d.unsubscribe()
	}

	d.mu.Lock()
	for id, t := range d.timers {
		t.Stop()
		delete(d.timers, id)
	}
	d.mu.Unlock()
}

// startSimulationLocked вызывается под simMu
func (d *dashboard) startSimulationLocked() {
	if d.sim == nil || d.stopSim != nil {
		return
	}
	d.stopSim = d.sim.Subscribe(d.onPush)
}

// stopSimulationLocked вызывается под simMu и без mu: stop ждет завершения onPush
func (d *dashboard) stopSimulationLocked() {
	if d.stopSim == nil {
		return
	}
	d.stopSim()
	d.stopSim = nil
}

func (d *dashboard) onPush(c models.Circle) {
	d.mu.Lock()
	if d.circle == nil || d.circle.ID != c.ID {
		d.mu.Unlock()
		return
	}
	alerts := d.mergeLocked(c.Members)
	d.mu.Unlock()

	ctx := context.Background()
	d.persistCircle(ctx)
	d.publish(ctx, alerts)
}

func (d *dashboard) applyMembers(ctx context.Context, members ...models.Member) {
	d.mu.Lock()
	alerts := d.mergeLocked(members)
	d.mu.Unlock()

	d.persistCircle(ctx)
	d.publish(ctx, alerts)
}

// mergeLocked заменяет отображаемых участников присланными, если те не старше.
// Остальные поля круга не трогаются.
func (d *dashboard) mergeLocked(members []models.Member) []webhook.StatusAlert {
	if d.circle == nil {
		return nil
	}
	var alerts []webhook.StatusAlert
	for _, m := range members {
		idx := d.circle.FindMember(m.ID)
		if idx < 0 {
			continue
		}
		shown := d.circle.Members[idx]
		if m.LastUpdate.Before(shown.LastUpdate) {
			continue
		}
		if m.Status != shown.Status && (m.Status == models.StatusHelp || m.Status == models.StatusInjured) {
			alerts = append(alerts, webhook.StatusAlert{
				CircleID:   d.circle.ID,
				MemberID:   m.ID,
				MemberName: m.Name,
				Status:     m.Status,
				Message:    m.Message,
				Location:   m.Clone().Location,
				Timestamp:  m.LastUpdate,
			})
		}
		d.circle.Members[idx] = m.Clone()
	}
	return alerts
}

func (d *dashboard) persistCircle(ctx context.Context) {
	c, ok := d.store.Get()
	var err error
	if ok {
		err = d.circleState.Save(ctx, &c)
	} else {
		err = d.circleState.Clear(ctx)
	}
	if err != nil {
		d.log("persistCircle").WithError(err).Warn("Failed to persist family circle")
	}
}

func (d *dashboard) publish(ctx context.Context, alerts []webhook.StatusAlert) {
	for _, a := range alerts {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := d.alerts.Publish(pctx, a); err != nil {
			d.log("publish").WithError(err).WithField("member_id", a.MemberID).Error("Failed to publish status alert")
		}
		cancel()
	}
}
