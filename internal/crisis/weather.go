package crisis

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/family_crisis_hub/internal/models"
)

const weatherTTL = 15 * time.Minute

// WeatherSource - заглушка погодных предупреждений NOAA/NWS
type WeatherSource struct {
	now func() time.Time
}

func NewWeatherSource() *WeatherSource {
	return &WeatherSource{now: time.Now}
}

func (s *WeatherSource) Name() string       { return "noaa" }
func (s *WeatherSource) TTL() time.Duration { return weatherTTL }

func (s *WeatherSource) Query(ctx context.Context, loc models.Coordinates) ([]models.CrisisEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	return []models.CrisisEvent{
		{
			ID:       fmt.Sprintf("noaa_%d", now.UnixMilli()),
			Type:     models.EventTypeWeatherAlert,
			Title:    "Severe Thunderstorm Warning",
			Severity: models.SeverityModerate,
			Location: models.Coordinates{Lat: loc.Lat + 0.1, Lng: loc.Lng - 0.1},
			Time:     now,
			Details: map[string]any{
				"event":       "Severe Thunderstorm Warning",
				"headline":    "A severe thunderstorm was located near your area, moving east at 30 mph.",
				"description": "Expect quarter-sized hail and wind gusts up to 60 mph. Seek shelter in a sturdy building.",
				"instruction": "Move to an interior room on the lowest floor of a building. Avoid windows.",
				"source":      "Mock NOAA/NWS Data",
			},
		},
	}, nil
}
