package service

import (
	"errors"
	"time"

	"github.com/shenikar/family_crisis_hub/internal/crisis"
	"github.com/shenikar/family_crisis_hub/internal/models"
)

type View string

const (
	ViewCrisis       View = "crisis"
	ViewPreparedness View = "preparedness"
)

func (v View) Valid() bool { return v == ViewCrisis || v == ViewPreparedness }

type CrisisTab string

const (
	TabStatus  CrisisTab = "status"
	TabMap     CrisisTab = "map"
	TabPlan    CrisisTab = "plan"
	TabCheckin CrisisTab = "checkin"
)

func (t CrisisTab) Valid() bool {
	switch t {
	case TabStatus, TabMap, TabPlan, TabCheckin:
		return true
	}
	return false
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Valid() bool { return t == ThemeDark || t == ThemeLight }

type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelWarning NotificationLevel = "warning"
	LevelError   NotificationLevel = "error"
)

type Notification struct {
	ID        string            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}

// Loading - флаги незавершенных асинхронных операций
type Loading struct {
	Circle       bool `json:"circle"`
	Location     bool `json:"location"`
	Crisis       bool `json:"crisis"`
	Plan         bool `json:"plan"`
	Checkin      bool `json:"checkin"`
	Preparedness bool `json:"preparedness"`
}

// CheckinEntry - запись журнала разобранных SMS, новые сверху
type CheckinEntry struct {
	MemberID        string        `json:"member_id"`
	MemberName      string        `json:"member_name"`
	OriginalMessage string        `json:"original_message"`
	Status          models.Status `json:"status"`
	Summary         string        `json:"summary"`
	At              time.Time     `json:"at"`
}

// DashboardState - снимок всего, что отображает панель
type DashboardState struct {
	Mounted         bool                   `json:"mounted"`
	View            View                   `json:"view"`
	CrisisTab       CrisisTab              `json:"crisis_tab"`
	Theme           Theme                  `json:"theme"`
	Online          bool                   `json:"online"`
	Loading         Loading                `json:"loading"`
	Notifications   []Notification         `json:"notifications"`
	Circle          *models.Circle         `json:"circle"`
	Events          []models.CrisisEvent   `json:"events"`
	CrisisOutcome   crisis.Outcome         `json:"crisis_outcome,omitempty"`
	Plan            *models.MultiAgentPlan `json:"plan"`
	PlanError       string                 `json:"plan_error,omitempty"`
	CheckinError    string                 `json:"checkin_error,omitempty"`
	Checkins        []CheckinEntry         `json:"checkins"`
	Location        models.Coordinates     `json:"location"`
	LocationWarning string                 `json:"location_warning,omitempty"`
}

// CrisisSnapshot - последние показанные события, переживают перезапуск
type CrisisSnapshot struct {
	Location  models.Coordinates   `json:"location"`
	FetchedAt time.Time            `json:"fetched_at"`
	Events    []models.CrisisEvent `json:"events"`
}

var (
	ErrOffline      = errors.New("unavailable offline")
	ErrPlanInFlight = errors.New("plan generation already in progress")
	ErrNoCircle     = errors.New("no family circle")
	ErrInvalidInput = errors.New("invalid input")
)

// UserError несет сообщение, которое можно показать пользователю как есть
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string { return e.Message }
func (e *UserError) Unwrap() error { return e.Kind }

func userError(kind error, msg string) error {
	return &UserError{Kind: kind, Message: msg}
}

const (
	OfflineBanner         = "You are currently offline. Some features may be unavailable."
	onlineNotice          = "Connection restored."
	voiceRecordOffline    = "Cannot record voice notes while offline."
	voiceDeleteOffline    = "Cannot delete voice notes while offline."
	preparednessOffline   = "Cannot update the preparedness plan while offline."
	planInFlightMessage   = "A plan is already being generated."
	noCircleMessage       = "Create a family circle first."
	checkinInvalidMessage = "Please select a member and enter a message."
	locationHiddenMessage = "This member is not sharing a location."
	unknownMeetupMessage  = "Choose a meetup point from the current plan."
	maxCheckinLog         = 50
)
