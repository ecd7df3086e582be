package crisis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usgsFixture = `{
  "type": "FeatureCollection",
  "features": [
    {
      "id": "nc75095651",
      "properties": {"mag": 5.1, "title": "M 5.1 - 10km NW of Daly City", "time": 1760443200000, "tsunami": 0, "url": "https://earthquake.usgs.gov/earthquakes/eventpage/nc75095651"},
      "geometry": {"coordinates": [-122.52, 37.73, 8.2]}
    },
    {
      "id": "broken",
      "properties": {"mag": 4.2},
      "geometry": {"coordinates": []}
    }
  ]
}`

func TestUSGSSource_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "geojson", q.Get("format"))
		assert.Equal(t, "37.7749", q.Get("latitude"))
		assert.Equal(t, "-122.4194", q.Get("longitude"))
		assert.Equal(t, "100", q.Get("maxradiuskm"))
		assert.Equal(t, "4", q.Get("minmagnitude"))
		assert.NotEmpty(t, q.Get("starttime"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(usgsFixture))
	}))
	defer srv.Close()

	src := NewUSGSSource(srv.URL, srv.Client())
	events, err := src.Query(context.Background(), models.Coordinates{Lat: 37.7749, Lng: -122.4194})

	require.NoError(t, err)
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "nc75095651", ev.ID)
	assert.Equal(t, models.EventTypeEarthquake, ev.Type)
	assert.Equal(t, models.SeverityModerate, ev.Severity)
	assert.InDelta(t, 37.73, ev.Location.Lat, 1e-9)
	assert.InDelta(t, -122.52, ev.Location.Lng, 1e-9)
	assert.Equal(t, time.UnixMilli(1760443200000).UTC(), ev.Time)
	assert.Equal(t, "Moderate (30-60%)", ev.Details["aftershock_probability_24h"])
	assert.Equal(t, false, ev.Details["tsunami_warning"])
	assert.Equal(t, 8.2, ev.Details["depth_km"])
}

func TestUSGSSource_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewUSGSSource(srv.URL, srv.Client()).Query(context.Background(), models.Coordinates{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestUSGSSource_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features": [`))
	}))
	defer srv.Close()

	_, err := NewUSGSSource(srv.URL, srv.Client()).Query(context.Background(), models.Coordinates{})
	require.Error(t, err)
}

func TestSeverityAndAftershockBands(t *testing.T) {
	tests := []struct {
		mag        float64
		severity   string
		aftershock string
	}{
		{4.0, models.SeverityMinor, "Low (less than 30%)"},
		{4.9, models.SeverityModerate, "Low (less than 30%)"},
		{5.7, models.SeverityMajor, "Moderate (30-60%)"},
		{6.8, models.SeverityCatastrophic, "High (60-85%)"},
		{7.4, models.SeverityCatastrophic, "Very High (>85%)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.severity, SeverityFromMagnitude(tt.mag), "mag %.1f", tt.mag)
		assert.Equal(t, tt.aftershock, AftershockRisk(tt.mag), "mag %.1f", tt.mag)
	}
}

func TestWeatherSource_OffsetsFromQueryLocation(t *testing.T) {
	src := NewWeatherSource()
	events, err := src.Query(context.Background(), models.Coordinates{Lat: 37.0, Lng: -122.0})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventTypeWeatherAlert, events[0].Type)
	assert.InDelta(t, 37.1, events[0].Location.Lat, 1e-9)
	assert.InDelta(t, -122.1, events[0].Location.Lng, 1e-9)
	assert.Equal(t, 15*time.Minute, src.TTL())
}
