package editor

import (
	"errors"
	"strings"

	"aman-backend/internal/models"
)

type State string

const (
	StateViewing State = "viewing"
	StateEditing State = "editing"
	StateSaving  State = "saving"
)

var (
	ErrNotEditing   = errors.New("session is not in editing state")
	ErrSaveInFlight = errors.New("save already in progress")
)

// Store is the persistence contract a session saves through. Updates are
// always full-object: title, description, images and features are rewritten
// together, never partially patched.
type Store interface {
	UpdateSection(id uint, title, description models.BilingualText, images []string, features []models.FeatureEntry) (*models.Section, error)
}

// Form is the flat editable projection of a section. Mutations during an edit
// session target the form only; the source record stays untouched until a
// save succeeds.
type Form struct {
	TitleEn       string   `json:"title_en"`
	TitleAr       string   `json:"title_ar"`
	DescriptionEn string   `json:"description_en"`
	DescriptionAr string   `json:"description_ar"`
	Images        []string `json:"images"`

	Features *List `json:"-"`
}

// Session drives one section through Viewing -> Editing -> Saving. Each
// section being edited gets its own session instance; nothing is shared.
type Session struct {
	cfg    Config
	state  State
	source models.Section
	form   *Form
	saving bool
}

func NewSession(source models.Section, cfg Config) *Session {
	return &Session{cfg: cfg, state: StateViewing, source: source}
}

func (s *Session) State() State           { return s.state }
func (s *Session) Source() models.Section { return s.source }

// Form returns the live editable form, or nil outside an edit session.
func (s *Session) Form() *Form { return s.form }

// StartEdit projects the loaded section into a fresh flat form and enters
// Editing. Calling it again while editing re-projects, discarding any
// uncommitted changes.
func (s *Session) StartEdit() *Form {
	s.form = project(s.source, s.cfg)
	s.state = StateEditing
	return s.form
}

// Cancel discards the form and returns to Viewing. It is equivalent to
// re-running the projection, not a field-by-field undo.
func (s *Session) Cancel() {
	s.form = nil
	s.state = StateViewing
}

// SetScalar updates one flat text field of the form.
func (s *Session) SetScalar(field, value string) error {
	if s.state != StateEditing || s.form == nil {
		return ErrNotEditing
	}
	switch field {
	case "title_en":
		s.form.TitleEn = value
	case "title_ar":
		s.form.TitleAr = value
	case "description_en":
		s.form.DescriptionEn = value
	case "description_ar":
		s.form.DescriptionAr = value
	default:
		return errors.New("unknown form field " + field)
	}
	return nil
}

func (s *Session) SetImages(images []string) error {
	if s.state != StateEditing || s.form == nil {
		return ErrNotEditing
	}
	s.form.Images = append([]string(nil), images...)
	return nil
}

// Save serializes the form and issues a single full-object update. On success
// the session re-loads from the returned record and returns to Viewing. On
// failure the form is preserved untouched and the session stays in Editing,
// so the operator's input is not lost.
func (s *Session) Save(store Store) error {
	if s.state != StateEditing || s.form == nil {
		return ErrNotEditing
	}
	if s.saving {
		return ErrSaveInFlight
	}
	s.saving = true
	s.state = StateSaving
	defer func() { s.saving = false }()

	title := models.BilingualText{En: strings.TrimSpace(s.form.TitleEn), Ar: strings.TrimSpace(s.form.TitleAr)}
	description := models.BilingualText{En: strings.TrimSpace(s.form.DescriptionEn), Ar: strings.TrimSpace(s.form.DescriptionAr)}
	features := s.form.Features.SerializeForSave()

	updated, err := store.UpdateSection(s.source.ID, title, description, s.form.Images, features)
	if err != nil {
		s.state = StateEditing
		return err
	}

	s.source = *updated
	s.form = nil
	s.state = StateViewing
	return nil
}

func project(source models.Section, cfg Config) *Form {
	return &Form{
		TitleEn:       source.Title.En,
		TitleAr:       source.Title.Ar,
		DescriptionEn: source.Description.En,
		DescriptionAr: source.Description.Ar,
		Images:        append([]string(nil), source.Images...),
		Features:      NewList(source.Features, cfg),
	}
}
