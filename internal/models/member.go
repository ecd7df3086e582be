package models

import "time"

// Status - состояние участника семейного круга
type Status string

const (
	StatusSafe    Status = "SAFE"
	StatusHelp    Status = "HELP"
	StatusInjured Status = "INJURED"
	StatusUnknown Status = "UNKNOWN"
)

// Valid сообщает, что статус входит в число допустимых
func (s Status) Valid() bool {
	switch s {
	case StatusSafe, StatusHelp, StatusInjured, StatusUnknown:
		return true
	}
	return false
}

// Coordinates - точка с необязательным радиусом точности в метрах
type Coordinates struct {
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Accuracy *float64 `json:"accuracy,omitempty"`
}

// VoiceNote - ссылка на голосовую запись участника
type VoiceNote struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type Member struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Phone          string       `json:"phone"`
	Status         Status       `json:"status"`
	Message        string       `json:"message,omitempty"`
	LocationShared bool         `json:"is_location_shared"`
	Location       *Coordinates `json:"location,omitempty"`
	VoiceNotes     []VoiceNote  `json:"voice_notes"`
	LastUpdate     time.Time    `json:"last_update"`
}

// Circle - семейный круг; порядок Members совпадает с порядком отображения
type Circle struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// Clone возвращает глубокую копию круга
func (c Circle) Clone() Circle {
	out := c
	out.Members = make([]Member, len(c.Members))
	for i, m := range c.Members {
		out.Members[i] = m.Clone()
	}
	return out
}

// FindMember возвращает индекс участника или -1
func (c Circle) FindMember(id string) int {
	for i := range c.Members {
		if c.Members[i].ID == id {
			return i
		}
	}
	return -1
}

func (m Member) Clone() Member {
	out := m
	if m.Location != nil {
		loc := *m.Location
		if m.Location.Accuracy != nil {
			acc := *m.Location.Accuracy
			loc.Accuracy = &acc
		}
		out.Location = &loc
	}
	out.VoiceNotes = make([]VoiceNote, len(m.VoiceNotes))
	copy(out.VoiceNotes, m.VoiceNotes)
	return out
}

// Touch обновляет LastUpdate, не отодвигая его назад
func (m *Member) Touch(now time.Time) {
	if now.Before(m.LastUpdate) {
		return
	}
	m.LastUpdate = now
}

// CheckinResult - результат разбора текстового сообщения участника
type CheckinResult struct {
	Status  Status `json:"status" validate:"required,oneof=SAFE HELP INJURED"`
	Summary string `json:"summary" validate:"required"`
}
