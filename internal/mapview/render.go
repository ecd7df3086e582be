package mapview

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrMapUnavailable = errors.New("map renderer unavailable")

// Renderer превращает набор маркеров в представление карты
type Renderer interface {
	Render(set MarkerSet) (string, error)
}

type Mode string

const (
	ModeMap  Mode = "map"
	ModeText Mode = "text"
)

// View - то, что получает клиент: карта или текстовый список
type View struct {
	Mode     Mode      `json:"mode"`
	MapURL   string    `json:"map_url,omitempty"`
	Markers  MarkerSet `json:"markers"`
	Fallback []string  `json:"fallback,omitempty"`
	Notice   string    `json:"notice,omitempty"`
}

// Render никогда не возвращает ошибку: при сбое рендерера отдается текстовый список
func Render(r Renderer, set MarkerSet) View {
	if r != nil {
		mapURL, err := r.Render(set)
		if err == nil {
			return View{Mode: ModeMap, MapURL: mapURL, Markers: set}
		}
		return View{Mode: ModeText, Markers: set, Fallback: TextFallback(set), Notice: err.Error()}
	}
	return View{Mode: ModeText, Markers: set, Fallback: TextFallback(set), Notice: ErrMapUnavailable.Error()}
}

const staticMapsURL = "https://maps.googleapis.com/maps/api/staticmap"

// StaticMapRenderer строит ссылку на Google Static Maps
type StaticMapRenderer struct {
	apiKey string
	size   string
}

func NewStaticMapRenderer(apiKey string) *StaticMapRenderer {
	return &StaticMapRenderer{apiKey: strings.TrimSpace(apiKey), size: "640x480"}
}

func (r *StaticMapRenderer) Render(set MarkerSet) (string, error) {
	if r.apiKey == "" || strings.Contains(r.apiKey, "YOUR_API_KEY") || strings.Contains(r.apiKey, "ACTUAL_API_KEY") {
		return "", fmt.Errorf("%w: maps API key is missing or appears to be a placeholder", ErrMapUnavailable)
	}

	q := url.Values{}
	q.Set("size", r.size)
	for _, m := range set.All() {
		q.Add("markers", fmt.Sprintf("color:0x%s|label:%s|%.6f,%.6f",
			strings.TrimPrefix(m.Color, "#"), markerLabel(m.Kind), m.Position.Lat, m.Position.Lng))
	}
	q.Set("key", r.apiKey)
	return staticMapsURL + "?" + q.Encode(), nil
}

func markerLabel(k Kind) string {
	switch k {
	case KindMember:
		return "F"
	case KindCrisis:
		return "C"
	default:
		return "M"
	}
}
