package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"aman-backend/internal/editor"
	"aman-backend/internal/models"
	"aman-backend/pkg/logger"
)

var ErrSessionNotFound = errors.New("edit session not found")

type sessionEntry struct {
	session  *editor.Session
	lastUsed time.Time
}

// EditSessionService holds the server-side edit sessions the dashboard drives.
// One session per opened section; the map is the only shared state, each
// session is used by a single operator at a time.
type EditSessionService struct {
	sections *SectionService
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewEditSessionService(sections *SectionService, ttl time.Duration) *EditSessionService {
	if sections == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &EditSessionService{
		sections: sections,
		ttl:      ttl,
		sessions: make(map[string]*sessionEntry),
	}
}

// Open loads the section, creates a session in Editing state and returns its
// id together with the projected form.
func (s *EditSessionService) Open(sectionID uint) (string, *editor.Session, error) {
	section, err := s.sections.GetByID(sectionID)
	if err != nil {
		return "", nil, err
	}

	session := editor.NewSession(*section, SlotConfig(section.Slot))
	session.StartEdit()

	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &sessionEntry{session: session, lastUsed: time.Now()}
	s.mu.Unlock()

	return id, session, nil
}

// Get returns the live session for id, refreshing its TTL.
func (s *EditSessionService) Get(id string) (*editor.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.lastUsed = time.Now()
	return entry.session, nil
}

// Save pushes the session's form through the section service. The session is
// kept either way: on success it is back in Viewing (the operator may edit
// again), on failure it stays in Editing with the form intact.
func (s *EditSessionService) Save(id string) (*editor.Session, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := session.Save(s.sections); err != nil {
		return session, err
	}
	return session, nil
}

// Close cancels and drops a session. Unknown ids are fine; closing is
// idempotent from the dashboard's point of view.
func (s *EditSessionService) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.sessions[id]; ok {
		entry.session.Cancel()
		delete(s.sessions, id)
	}
}

// Sweep drops sessions idle longer than the TTL. Abandoned edits lose their
// uncommitted form state, same as navigating away in the dashboard.
func (s *EditSessionService) Sweep() int {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.sessions {
		if entry.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logger.Debug("Swept idle edit sessions", map[string]interface{}{"count": removed})
	}
	return removed
}

// RunSweeper starts the background TTL sweep; it stops when done is closed.
func (s *EditSessionService) RunSweeper(done <-chan struct{}) {
	ticker := time.NewTicker(s.ttl / 2)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// SessionView is the wire representation of a session's current state.
type SessionView struct {
	ID      string         `json:"id"`
	State   editor.State   `json:"state"`
	Section models.Section `json:"section"`
	Form    *FormView      `json:"form,omitempty"`
}

type FormView struct {
	TitleEn       string                `json:"title_en"`
	TitleAr       string                `json:"title_ar"`
	DescriptionEn string                `json:"description_en"`
	DescriptionAr string                `json:"description_ar"`
	Images        []string              `json:"images"`
	Features      []models.FeatureEntry `json:"features"`
	Draft         *models.FeatureEntry  `json:"draft,omitempty"`
	Active        int                   `json:"active"`
}

func NewSessionView(id string, session *editor.Session) SessionView {
	view := SessionView{ID: id, State: session.State(), Section: session.Source()}
	if form := session.Form(); form != nil {
		view.Form = &FormView{
			TitleEn:       form.TitleEn,
			TitleAr:       form.TitleAr,
			DescriptionEn: form.DescriptionEn,
			DescriptionAr: form.DescriptionAr,
			Images:        form.Images,
			Features:      form.Features.Entries(),
			Draft:         form.Features.Draft(),
			Active:        form.Features.Active(),
		}
	}
	return view
}
