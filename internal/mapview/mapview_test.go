package mapview

import (
	"errors"
	"net/url"
	"testing"

	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acc(v float64) *float64 { return &v }

var (
	testMembers = []models.Member{
		{ID: "m1", Name: "Mike", Status: models.StatusSafe, LocationShared: true, Location: &models.Coordinates{Lat: 37.79, Lng: -122.41, Accuracy: acc(15)}},
		{ID: "m2", Name: "Emma", Status: models.StatusHelp, LocationShared: false, Location: &models.Coordinates{Lat: 37.77, Lng: -122.45}},
		{ID: "m3", Name: "Leo", Status: models.StatusUnknown, LocationShared: true},
	}
	testEvents = []models.CrisisEvent{
		{ID: "e1", Type: models.EventTypeEarthquake, Title: "M 5.1", Location: models.Coordinates{Lat: 37.7, Lng: -122.5}},
		{ID: "e2", Type: "volcano", Title: "Ash", Location: models.Coordinates{Lat: 37.6, Lng: -122.6}},
	}
	testMeetups = []models.MeetupPoint{{Rank: 1, Name: "Civic Center", Coordinates: models.Coordinates{Lat: 37.779, Lng: -122.417}}}
)

func TestCompose(t *testing.T) {
	set := Compose(testMembers, testEvents, testMeetups)

	require.Len(t, set.Members, 1)
	assert.Equal(t, "m1", set.Members[0].ID)
	assert.Equal(t, "#22C55E", set.Members[0].Color)

	require.Len(t, set.Events, 2)
	assert.Equal(t, "#9333EA", set.Events[0].Color)
	assert.Equal(t, "#DC2626", set.Events[1].Color)

	require.Len(t, set.Meetups, 1)
	assert.Equal(t, "Meetup #1: Civic Center", set.Meetups[0].Label)
}

func TestTextFallback(t *testing.T) {
	lines := TextFallback(Compose(testMembers, testEvents, testMeetups))

	require.Len(t, lines, 4)
	assert.Equal(t, "[member] Mike (SAFE): 37.79000, -122.41000 (±15 m)", lines[0])
	assert.Equal(t, "[crisis] M 5.1: 37.70000, -122.50000", lines[1])
}

type failingRenderer struct{}

func (failingRenderer) Render(MarkerSet) (string, error) {
	return "", errors.New("unauthorized origin")
}

func TestRender_FallsBackToText(t *testing.T) {
	set := Compose(testMembers, testEvents, testMeetups)

	view := Render(failingRenderer{}, set)
	assert.Equal(t, ModeText, view.Mode)
	assert.Len(t, view.Fallback, 4)
	assert.Equal(t, "unauthorized origin", view.Notice)

	view = Render(nil, set)
	assert.Equal(t, ModeText, view.Mode)

	view = Render(NewStaticMapRenderer("YOUR_API_KEY"), set)
	assert.Equal(t, ModeText, view.Mode)
}

func TestStaticMapRenderer(t *testing.T) {
	set := Compose(testMembers, testEvents, testMeetups)

	view := Render(NewStaticMapRenderer("real-key"), set)
	require.Equal(t, ModeMap, view.Mode)
	assert.Empty(t, view.Fallback)

	u, err := url.Parse(view.MapURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "real-key", q.Get("key"))
	assert.Len(t, q["markers"], 4)
	assert.Equal(t, "color:0x22C55E|label:F|37.790000,-122.410000", q["markers"][0])
}
