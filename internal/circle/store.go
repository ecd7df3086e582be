// Package circle хранит единственный семейный круг процесса и
// симулирует живые обновления статусов участников.
package circle

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

const (
	initialMessage   = "Haven't heard anything yet."
	voiceNoteMessage = "Sent a voice note."
)

// Демонстрационные позиции в Сан-Франциско, раздаются участникам по кругу
var demoLocations = []models.Coordinates{
	{Lat: 37.79, Lng: -122.41, Accuracy: floatPtr(50)},
	{Lat: 37.77, Lng: -122.45, Accuracy: floatPtr(150)},
	{Lat: 37.75, Lng: -122.42, Accuracy: floatPtr(25)},
	{Lat: 37.80, Lng: -122.43, Accuracy: floatPtr(500)},
}

func floatPtr(v float64) *float64 { return &v }

// MemberSeed - данные участника, вводимые при создании круга
type MemberSeed struct {
	Name  string
	Phone string
}

// MemberPatch - набор изменяемых полей; nil означает "не менять"
type MemberPatch struct {
	Status         *models.Status
	Message        *string
	LocationShared *bool
	Location       *models.Coordinates
}

// Transform - чистое преобразование агрегата
type Transform func(models.Circle) (models.Circle, error)

// Store - авторитетное хранилище круга: отсутствует -> создан -> очищен
type Store struct {
	mu     sync.Mutex
	circle *models.Circle
	logger *logrus.Logger
	now    func() time.Time
	newID  func() string
}

func NewStore(logger *logrus.Logger) *Store {
	return &Store{
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Get возвращает копию текущего круга или false, если круг не создан
func (s *Store) Get() (models.Circle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.circle == nil {
		return models.Circle{}, false
	}
	return s.circle.Clone(), true
}

// Create создает новый круг и делает его текущим
func (s *Store) Create(name string, seeds []MemberSeed) (models.Circle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Circle{}, fmt.Errorf("circle: empty circle name: %w", ErrInvalidInput)
	}
	if len(seeds) == 0 {
		return models.Circle{}, fmt.Errorf("circle: at least one member is required: %w", ErrInvalidInput)
	}

	now := s.now().UTC()
	c := models.Circle{
		ID:      s.newID(),
		Name:    name,
		Members: make([]models.Member, 0, len(seeds)),
	}
	for i, seed := range seeds {
		seedName := strings.TrimSpace(seed.Name)
		if seedName == "" {
			return models.Circle{}, fmt.Errorf("circle: member %d has no name: %w", i+1, ErrInvalidInput)
		}
		loc := demoLocations[i%len(demoLocations)]
		c.Members = append(c.Members, models.Member{
			ID:             s.newID(),
			Name:           seedName,
			Phone:          strings.TrimSpace(seed.Phone),
			Status:         models.StatusUnknown,
			Message:        initialMessage,
			LocationShared: true,
			Location:       &models.Coordinates{Lat: loc.Lat, Lng: loc.Lng, Accuracy: floatPtr(*loc.Accuracy)},
			VoiceNotes:     []models.VoiceNote{},
			LastUpdate:     now,
		})
	}

	s.mu.Lock()
	s.circle = &c
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"component": "circle",
		"method":    "Create",
		"circle_id": c.ID,
		"members":   len(c.Members),
	}).Info("Family circle created")
	return c.Clone(), nil
}

// Restore устанавливает ранее сохраненный круг
func (s *Store) Restore(c models.Circle) {
	cp := c.Clone()
	for i := range cp.Members {
		if cp.Members[i].VoiceNotes == nil {
			cp.Members[i].VoiceNotes = []models.VoiceNote{}
		}
	}
	s.mu.Lock()
	s.circle = &cp
	s.mu.Unlock()
}

// Clear возвращает хранилище в состояние "круг отсутствует"
func (s *Store) Clear() {
	s.mu.Lock()
	s.circle = nil
	s.mu.Unlock()
}

// Apply читает последнюю версию круга, применяет fn и заменяет результат.
// Все изменения круга проходят через Apply.
func (s *Store) Apply(fn Transform) (models.Circle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.circle == nil {
		return models.Circle{}, fmt.Errorf("circle: no active circle: %w", ErrNotFound)
	}
	next, err := fn(s.circle.Clone())
	if err != nil {
		return models.Circle{}, err
	}
	stored := next.Clone()
	s.circle = &stored
	return next, nil
}

// UpdateMember применяет к участнику только заданные поля патча
func (s *Store) UpdateMember(id string, patch MemberPatch) (models.Member, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Member{}, fmt.Errorf("circle: unknown status %q: %w", *patch.Status, ErrInvalidInput)
	}
	return s.mutateMember("UpdateMember", id, func(m *models.Member) error {
		if patch.Status != nil {
			m.Status = *patch.Status
		}
		if patch.Message != nil {
			m.Message = *patch.Message
		}
		if patch.LocationShared != nil {
			m.LocationShared = *patch.LocationShared
		}
		if patch.Location != nil {
			loc := *patch.Location
			if patch.Location.Accuracy != nil {
				loc.Accuracy = floatPtr(*patch.Location.Accuracy)
			}
			m.Location = &loc
		}
		return nil
	})
}

// AddVoiceNote прикрепляет голосовую запись и заменяет текст сообщения
func (s *Store) AddVoiceNote(id, url string) (models.Member, models.VoiceNote, error) {
	if strings.TrimSpace(url) == "" {
		return models.Member{}, models.VoiceNote{}, fmt.Errorf("circle: empty voice note url: %w", ErrInvalidInput)
	}
	var note models.VoiceNote
	m, err := s.mutateMember("AddVoiceNote", id, func(m *models.Member) error {
		note = models.VoiceNote{ID: s.newID(), URL: url, CreatedAt: s.now().UTC()}
		m.VoiceNotes = append(m.VoiceNotes, note)
		m.Message = voiceNoteMessage
		return nil
	})
	if err != nil {
		return models.Member{}, models.VoiceNote{}, err
	}
	return m, note, nil
}

// DeleteVoiceNote удаляет голосовую запись участника
func (s *Store) DeleteVoiceNote(id, noteID string) (models.Member, error) {
	return s.mutateMember("DeleteVoiceNote", id, func(m *models.Member) error {
		for i, n := range m.VoiceNotes {
			if n.ID == noteID {
				m.VoiceNotes = append(m.VoiceNotes[:i], m.VoiceNotes[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("circle: voice note %s of member %s: %w", noteID, id, ErrNotFound)
	})
}

func (s *Store) mutateMember(method, id string, fn func(*models.Member) error) (models.Member, error) {
	var updated models.Member
	_, err := s.Apply(func(c models.Circle) (models.Circle, error) {
		idx := c.FindMember(id)
		if idx < 0 {
			return c, fmt.Errorf("circle: member %s: %w", id, ErrNotFound)
		}
		m := &c.Members[idx]
		if err := fn(m); err != nil {
			return c, err
		}
		m.Touch(s.now().UTC())
		updated = m.Clone()
		return c, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WithFields(logrus.Fields{
				"component": "circle",
				"method":    method,
				"member_id": id,
			}).WithError(err).Error("Update targets a missing circle entity")
		}
		return models.Member{}, err
	}
	return updated, nil
}
