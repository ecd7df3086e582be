// Package mapview собирает маркеры карты и текстовое представление тех же
// координат на случай, если карту не удалось инициализировать.
package mapview

import (
	"fmt"
	"strings"

	"github.com/shenikar/family_crisis_hub/internal/models"
)

type Kind string

const (
	KindMember Kind = "member"
	KindCrisis Kind = "crisis"
	KindMeetup Kind = "meetup"
)

const meetupColor = "#1D4ED8"

var statusColors = map[models.Status]string{
	models.StatusSafe:    "#22C55E",
	models.StatusHelp:    "#F97316",
	models.StatusInjured: "#EF4444",
	models.StatusUnknown: "#6B7280",
}

var crisisColors = map[string]string{
	models.EventTypeEarthquake:   "#9333EA",
	models.EventTypeWeatherAlert: "#F59E0B",
	models.EventTypeFire:         "#DC2626",
	models.EventTypeFlood:        "#3B82F6",
}

const defaultCrisisColor = "#DC2626"

type Marker struct {
	Kind     Kind               `json:"kind"`
	ID       string             `json:"id"`
	Label    string             `json:"label"`
	Position models.Coordinates `json:"position"`
	Color    string             `json:"color"`
}

type MarkerSet struct {
	Members []Marker `json:"members"`
	Events  []Marker `json:"events"`
	Meetups []Marker `json:"meetups"`
}

// All возвращает маркеры в порядке: участники, события, точки сбора
func (s MarkerSet) All() []Marker {
	out := make([]Marker, 0, len(s.Members)+len(s.Events)+len(s.Meetups))
	out = append(out, s.Members...)
	out = append(out, s.Events...)
	return append(out, s.Meetups...)
}

// StatusColor возвращает цвет маркера участника
func StatusColor(s models.Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return statusColors[models.StatusUnknown]
}

// CrisisColor возвращает цвет маркера события
func CrisisColor(eventType string) string {
	if c, ok := crisisColors[eventType]; ok {
		return c
	}
	return defaultCrisisColor
}

// Compose строит маркеры; участники без включенного доступа к позиции не попадают на карту
func Compose(members []models.Member, events []models.CrisisEvent, meetups []models.MeetupPoint) MarkerSet {
	set := MarkerSet{
		Members: make([]Marker, 0, len(members)),
		Events:  make([]Marker, 0, len(events)),
		Meetups: make([]Marker, 0, len(meetups)),
	}
	for _, m := range members {
		if !m.LocationShared || m.Location == nil {
			continue
		}
		set.Members = append(set.Members, Marker{
			Kind:     KindMember,
			ID:       m.ID,
			Label:    fmt.Sprintf("%s (%s)", m.Name, m.Status),
			Position: *m.Location,
			Color:    StatusColor(m.Status),
		})
	}
	for _, e := range events {
		set.Events = append(set.Events, Marker{
			Kind:     KindCrisis,
			ID:       e.ID,
			Label:    e.Title,
			Position: e.Location,
			Color:    CrisisColor(e.Type),
		})
	}
	for _, p := range meetups {
		set.Meetups = append(set.Meetups, Marker{
			Kind:     KindMeetup,
			ID:       fmt.Sprintf("meetup_%d", p.Rank),
			Label:    fmt.Sprintf("Meetup #%d: %s", p.Rank, p.Name),
			Position: p.Coordinates,
			Color:    meetupColor,
		})
	}
	return set
}

// TextFallback перечисляет те же координаты построчно
func TextFallback(set MarkerSet) []string {
	all := set.All()
	lines := make([]string, 0, len(all))
	for _, m := range all {
		var b strings.Builder
		fmt.Fprintf(&b, "[%s] %s: %.5f, %.5f", m.Kind, m.Label, m.Position.Lat, m.Position.Lng)
		if m.Position.Accuracy != nil {
			fmt.Fprintf(&b, " (±%.0f m)", *m.Position.Accuracy)
		}
		lines = append(lines, b.String())
	}
	return lines
}
