package v1

import (
	"github.com/shenikar/family_crisis_hub/internal/crisis"
	"github.com/shenikar/family_crisis_hub/internal/models"
)

// MemberSeedRequest DTO участника при создании круга
// @Description DTO участника при создании круга
type MemberSeedRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone,omitempty" validate:"max=32"`
}

// CreateCircleRequest DTO для создания семейного круга
// @Description DTO для создания семейного круга
type CreateCircleRequest struct {
	Name    string              `json:"name" validate:"required,max=100"`
	Members []MemberSeedRequest `json:"members" validate:"required,min=1,dive"`
}

// LocationRequest DTO координат
// @Description DTO координат
type LocationRequest struct {
	Lat      float64  `json:"lat" validate:"latitude"`
	Lng      float64  `json:"lng" validate:"longitude"`
	Accuracy *float64 `json:"accuracy,omitempty" validate:"omitempty,gte=0"`
}

// UpdateMemberRequest DTO для частичного обновления участника
// @Description DTO для частичного обновления участника; отсутствующие поля не меняются
type UpdateMemberRequest struct {
	Status         *string          `json:"status,omitempty" validate:"omitempty,oneof=SAFE HELP INJURED UNKNOWN"`
	Message        *string          `json:"message,omitempty" validate:"omitempty,max=1000"`
	LocationShared *bool            `json:"is_location_shared,omitempty"`
	Location       *LocationRequest `json:"location,omitempty"`
}

// VoiceNoteRequest DTO голосовой заметки
// @Description DTO голосовой заметки
type VoiceNoteRequest struct {
	URL string `json:"url" validate:"required,max=2048"`
}

// CheckinRequest DTO текстового сообщения участника
// @Description DTO текстового сообщения участника
type CheckinRequest struct {
	MemberID string `json:"member_id" validate:"required"`
	Message  string `json:"message" validate:"required,max=1000"`
}

// RouteRequest DTO оценки маршрута участника до точки сбора
// @Description DTO оценки маршрута участника до точки сбора
type RouteRequest struct {
	MemberID   string `json:"member_id" validate:"required"`
	MeetupRank int    `json:"meetup_rank" validate:"required,gte=1"`
}

// ReportLocationRequest DTO позиции устройства; Denied означает отказ в геолокации
// @Description DTO позиции устройства
type ReportLocationRequest struct {
	Lat      float64  `json:"lat" validate:"latitude"`
	Lng      float64  `json:"lng" validate:"longitude"`
	Accuracy *float64 `json:"accuracy,omitempty" validate:"omitempty,gte=0"`
	Denied   bool     `json:"denied,omitempty"`
}

// ConnectivityRequest DTO сигнала сети
// @Description DTO сигнала сети
type ConnectivityRequest struct {
	Online *bool `json:"online" validate:"required"`
}

// ViewRequest DTO выбора раздела
// @Description DTO выбора раздела
type ViewRequest struct {
	View string `json:"view" validate:"required,oneof=crisis preparedness"`
}

// TabRequest DTO выбора вкладки кризисного раздела
// @Description DTO выбора вкладки кризисного раздела
type TabRequest struct {
	Tab string `json:"tab" validate:"required,oneof=status map plan checkin"`
}

// ThemeRequest DTO темы оформления
// @Description DTO темы оформления
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=dark light"`
}

// ToggleItemRequest DTO переключения пункта плана готовности; пустой статус означает переключение
// @Description DTO переключения пункта плана готовности
type ToggleItemRequest struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=complete incomplete"`
}

// CrisisRefreshResponse DTO результата обновления кризисных данных
// @Description DTO результата обновления кризисных данных
type CrisisRefreshResponse struct {
	Outcome crisis.Outcome       `json:"outcome"`
	Events  []models.CrisisEvent `json:"events"`
}

// ConnectivityResponse DTO состояния сети
// @Description DTO состояния сети
type ConnectivityResponse struct {
	Online  bool `json:"online"`
	Changed bool `json:"changed"`
}

// PreparednessResponse DTO плана готовности со шкалой выполнения
// @Description DTO плана готовности
type PreparednessResponse struct {
	Plan  models.PreparednessPlan `json:"plan"`
	Score int                     `json:"score"`
}

// ThemeResponse DTO темы оформления
// @Description DTO темы оформления
type ThemeResponse struct {
	Theme string `json:"theme"`
}
