package crisis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shenikar/family_crisis_hub/internal/models"
)

const (
	DefaultUSGSURL      = "https://earthquake.usgs.gov/fdsnws/event/1/query"
	defaultRadiusKm     = 100
	defaultMinMagnitude = 4.0
	seismicTTL          = 5 * time.Minute
)

// USGSSource запрашивает землетрясения за последние 24 часа в радиусе от точки
type USGSSource struct {
	baseURL      string
	radiusKm     float64
	minMagnitude float64
	httpClient   *http.Client
	now          func() time.Time
}

func NewUSGSSource(baseURL string, httpClient *http.Client) *USGSSource {
	if baseURL == "" {
		baseURL = DefaultUSGSURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &USGSSource{
		baseURL:      baseURL,
		radiusKm:     defaultRadiusKm,
		minMagnitude: defaultMinMagnitude,
		httpClient:   httpClient,
		now:          time.Now,
	}
}

func (s *USGSSource) Name() string       { return "usgs" }
func (s *USGSSource) TTL() time.Duration { return seismicTTL }

type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string `json:"id"`
	Properties struct {
		Mag     float64 `json:"mag"`
		Title   string  `json:"title"`
		Time    int64   `json:"time"`
		Tsunami int     `json:"tsunami"`
		URL     string  `json:"url"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}

func (s *USGSSource) Query(ctx context.Context, loc models.Coordinates) ([]models.CrisisEvent, error) {
	q := url.Values{}
	q.Set("format", "geojson")
	q.Set("starttime", s.now().Add(-24*time.Hour).UTC().Format(time.RFC3339))
	q.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Lng, 'f', -1, 64))
	q.Set("maxradiuskm", strconv.FormatFloat(s.radiusKm, 'f', -1, 64))
	q.Set("minmagnitude", strconv.FormatFloat(s.minMagnitude, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating usgs request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usgs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usgs responded with status: %d", resp.StatusCode)
	}

	var body usgsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding usgs response: %w", err)
	}

	events := make([]models.CrisisEvent, 0, len(body.Features))
	for _, f := range body.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		var depth float64
		if len(f.Geometry.Coordinates) > 2 {
			depth = f.Geometry.Coordinates[2]
		}
		mag := f.Properties.Mag
		events = append(events, models.CrisisEvent{
			ID:       f.ID,
			Type:     models.EventTypeEarthquake,
			Title:    f.Properties.Title,
			Severity: SeverityFromMagnitude(mag),
			Location: models.Coordinates{
				Lat: f.Geometry.Coordinates[1],
				Lng: f.Geometry.Coordinates[0],
			},
			Time: time.UnixMilli(f.Properties.Time).UTC(),
			Details: map[string]any{
				"magnitude":                  mag,
				"depth_km":                   depth,
				"aftershock_probability_24h": AftershockRisk(mag),
				"tsunami_warning":            f.Properties.Tsunami == 1,
				"source_url":                 f.Properties.URL,
				"source":                     "USGS",
			},
		})
	}
	return events, nil
}

// SeverityFromMagnitude переводит магнитуду в уровень серьезности
func SeverityFromMagnitude(mag float64) string {
	switch {
	case mag < 4.5:
		return models.SeverityMinor
	case mag < 5.5:
		return models.SeverityModerate
	case mag < 6.5:
		return models.SeverityMajor
	default:
		return models.SeverityCatastrophic
	}
}

// AftershockRisk - упрощенная оценка вероятности афтершоков за 24 часа
func AftershockRisk(mag float64) string {
	switch {
	case mag < 5.0:
		return "Low (less than 30%)"
	case mag < 6.0:
		return "Moderate (30-60%)"
	case mag < 7.0:
		return "High (60-85%)"
	default:
		return "Very High (>85%)"
	}
}
