package models

import "time"

const (
	EventTypeEarthquake   = "earthquake"
	EventTypeWeatherAlert = "weather_alert"
	EventTypeFire         = "fire"
	EventTypeFlood        = "flood"
	EventTypeOther        = "other"
)

const (
	SeverityMinor        = "minor"
	SeverityModerate     = "moderate"
	SeverityMajor        = "major"
	SeverityCatastrophic = "catastrophic"
)

// CrisisEvent - неизменяемое событие, полученное от внешнего источника
type CrisisEvent struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Severity string         `json:"severity"`
	Location Coordinates    `json:"location"`
	Time     time.Time      `json:"time"`
	Details  map[string]any `json:"details"`
}
