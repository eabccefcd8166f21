// Package vision persists a user's four self-reflection answers and the
// optional summary image derived from them.
package vision

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"snapquest/internal/events"
	"snapquest/internal/models"
	"snapquest/internal/session"
	"snapquest/internal/store"
)

// ImageCost is debited from the user per generated vision image.
const ImageCost = 10

// Parameters carries the four free-text answers in their fixed order.
type Parameters struct {
	Passion    string `json:"passion"`
	Mission    string `json:"mission"`
	Profession string `json:"profession"`
	Vocation   string `json:"vocation"`
}

func (p Parameters) complete() bool {
	for _, d := range []string{p.Passion, p.Mission, p.Profession, p.Vocation} {
		if strings.TrimSpace(d) == "" {
			return false
		}
	}
	return true
}

type Service struct {
	store    store.Store
	sessions *session.Manager
	bus      *events.Bus
	now      func() time.Time
}

func NewService(st store.Store, sessions *session.Manager, bus *events.Bus) *Service {
	return &Service{store: st, sessions: sessions, bus: bus, now: time.Now}
}

// WithClock overrides the timestamp source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SaveParameters replaces the user's entire vision with four fresh records
// and notifies observers with the new set.
func (s *Service) SaveParameters(user *models.User, p Parameters) ([]models.VisionParameter, error) {
	if user == nil {
		return nil, models.ErrNotAuthenticated
	}
	now := s.now()
	records := []models.VisionParameter{
		{Type: models.VisionPassion, Description: p.Passion},
		{Type: models.VisionMission, Description: p.Mission},
		{Type: models.VisionProfession, Description: p.Profession},
		{Type: models.VisionVocation, Description: p.Vocation},
	}
	for i := range records {
		records[i].ID = uuid.NewString()
		records[i].UserID = user.ID
		records[i].UpdatedAt = now
	}
	if err := s.store.Write(store.VisionKey(user.ID), records); err != nil {
		return nil, fmt.Errorf("persist vision: %w", err)
	}
	s.bus.Publish(events.Event{Name: events.VisionUpdated, UserID: user.ID, Payload: records})
	return records, nil
}

// Parameters returns the user's saved vision, or nil when none exists yet.
func (s *Service) Parameters(userID string) ([]models.VisionParameter, error) {
	var records []models.VisionParameter
	if err := s.store.Read(store.VisionKey(userID), &records); err != nil {
		if err == store.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

// GenerateImage composes a summary from the four answers and stores the
// derived artifact, replacing any prior one. It requires a complete vision
// and debits ImageCost tokens.
func (s *Service) GenerateImage(user *models.User, p Parameters) (*models.VisionImage, error) {
	if user == nil {
		return nil, models.ErrNotAuthenticated
	}
	if !p.complete() {
		return nil, models.ErrIncompleteVision
	}
	if user.Tokens < ImageCost {
		return nil, models.ErrInsufficientTokens
	}

	summary := fmt.Sprintf("A life built around %s, serving a world that needs %s, drawing on a talent for %s, and valued for %s.",
		strings.TrimSpace(p.Passion), strings.TrimSpace(p.Mission),
		strings.TrimSpace(p.Profession), strings.TrimSpace(p.Vocation))
	img := &models.VisionImage{
		ImageURL:  "https://placehold.co/600x400?text=" + url.QueryEscape(user.Name+"'s Vision"),
		Summary:   summary,
		CreatedAt: s.now(),
	}
	// debit before storing the artifact, refunding on a failed write,
	// so the balance only moves when an image actually exists
	user.Tokens -= ImageCost
	if err := s.sessions.UpdateUser(user); err != nil {
		user.Tokens += ImageCost
		return nil, err
	}
	if err := s.store.Write(store.VisionImageKey(user.ID), img); err != nil {
		user.Tokens += ImageCost
		_ = s.sessions.UpdateUser(user)
		return nil, fmt.Errorf("persist vision image: %w", err)
	}
	s.bus.Publish(events.Event{Name: events.VisionImageCreated, UserID: user.ID, Payload: img})
	return img, nil
}

// Image returns the user's vision image, or nil when none was generated.
func (s *Service) Image(userID string) (*models.VisionImage, error) {
	var img models.VisionImage
	if err := s.store.Read(store.VisionImageKey(userID), &img); err != nil {
		if err == store.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}
