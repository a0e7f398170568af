// Package editor implements the dashboard's section editing core: an ordered
// feature-list with draft semantics and the edit-session lifecycle around it.
package editor

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"aman-backend/internal/models"
)

type Field string

const (
	FieldIcon          Field = "icon"
	FieldNameEn        Field = "name.en"
	FieldNameAr        Field = "name.ar"
	FieldDescriptionEn Field = "description.en"
	FieldDescriptionAr Field = "description.ar"
)

type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

var (
	ErrListFull        = errors.New("feature list is full")
	ErrNoDraft         = errors.New("no draft in progress")
	ErrIndexOutOfRange = errors.New("feature index out of range")
)

// Config carries the per-section constraints. MaxEntries of zero means
// unlimited. RequireBilingual drops entries missing an icon or either name
// locale when the list is serialized for persistence.
type Config struct {
	MaxEntries       int
	RequireBilingual bool
}

// List is the editable projection of a section's feature array. Entries are
// held in display rank order (stable sort by Order ascending); all indices
// taken by the mutation methods are rank positions, not raw storage
// positions. A List is owned by a single edit session and is not safe for
// concurrent use.
type List struct {
	cfg     Config
	entries []models.FeatureEntry
	draft   *models.FeatureEntry
	active  int
}

func NewList(entries []models.FeatureEntry, cfg Config) *List {
	sorted := models.FeatureList(entries).Sorted()
	return &List{cfg: cfg, entries: sorted, active: -1}
}

// Entries returns the committed entries in display rank order. The in-progress
// draft is never included.
func (l *List) Entries() []models.FeatureEntry {
	out := make([]models.FeatureEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *List) Len() int { return len(l.entries) }

// Active reports the rank of the expanded entry, or -1 when none is selected.
func (l *List) Active() int { return l.active }

// Draft returns a copy of the in-progress draft, or nil.
func (l *List) Draft() *models.FeatureEntry {
	if l.draft == nil {
		return nil
	}
	copied := *l.draft
	return &copied
}

// StartDraft opens a new draft entry with the next free order value. It
// collapses any active entry; draft editing and existing-entry editing are
// mutually exclusive. When the configured maximum is reached the list is left
// unchanged and ErrListFull is returned.
func (l *List) StartDraft() error {
	if l.cfg.MaxEntries > 0 && len(l.entries) >= l.cfg.MaxEntries {
		return fmt.Errorf("%w: at most %d entries allowed", ErrListFull, l.cfg.MaxEntries)
	}
	order := 0
	if len(l.entries) > 0 {
		for _, entry := range l.entries {
			if entry.Order >= order {
				order = entry.Order + 1
			}
		}
	}
	l.draft = &models.FeatureEntry{Order: order}
	l.active = -1
	return nil
}

// UpdateDraftField sets one field of the draft. No validation happens here;
// transiently empty values are fine, requirements are enforced only when the
// list is serialized for saving.
func (l *List) UpdateDraftField(field Field, value string) error {
	if l.draft == nil {
		return ErrNoDraft
	}
	return setField(l.draft, field, value)
}

// CommitDraft appends the draft to the committed entries in whatever partial
// state it is in. A draft with no content at all is silently discarded, which
// is a no-op rather than an error.
func (l *List) CommitDraft() error {
	if l.draft == nil {
		return ErrNoDraft
	}
	draft := *l.draft
	l.draft = nil
	if draft.Empty() {
		return nil
	}
	l.entries = append(l.entries, draft)
	l.resort()
	return nil
}

// DiscardDraft clears the draft slot. Committed entries are never touched.
func (l *List) DiscardDraft() {
	l.draft = nil
}

// SelectActive expands the entry at rank index. Selecting the already active
// entry toggles it closed. Any draft in progress is discarded.
func (l *List) SelectActive(index int) error {
	if index < 0 || index >= len(l.entries) {
		return ErrIndexOutOfRange
	}
	l.draft = nil
	if l.active == index {
		l.active = -1
		return nil
	}
	l.active = index
	return nil
}

func (l *List) ClearActive() {
	l.active = -1
}

// UpdateField mutates one field of the committed entry at rank index.
func (l *List) UpdateField(index int, field Field, value string) error {
	if index < 0 || index >= len(l.entries) {
		return ErrIndexOutOfRange
	}
	return setField(&l.entries[index], field, value)
}

// Remove deletes the entry at rank index. Order values of the survivors are
// left as they are; gaps are acceptable because ordering is by value, not by
// density. The active selection follows the logical entry it pointed at.
func (l *List) Remove(index int) error {
	if index < 0 || index >= len(l.entries) {
		return ErrIndexOutOfRange
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	switch {
	case l.active == index:
		l.active = -1
	case l.active > index:
		l.active--
	}
	return nil
}

// Move swaps the entry at rank index with its neighbour in the given
// direction by exchanging their Order values. Moves at a boundary are no-ops.
func (l *List) Move(index int, dir Direction) error {
	if index < 0 || index >= len(l.entries) {
		return ErrIndexOutOfRange
	}
	var neighbour int
	switch dir {
	case MoveUp:
		if index == 0 {
			return nil
		}
		neighbour = index - 1
	case MoveDown:
		if index == len(l.entries)-1 {
			return nil
		}
		neighbour = index + 1
	default:
		return fmt.Errorf("unknown move direction %q", dir)
	}
	l.entries[index].Order, l.entries[neighbour].Order = l.entries[neighbour].Order, l.entries[index].Order
	l.resort()
	return nil
}

// SerializeForSave produces the persistable feature array: the draft is
// dropped (drafts must be committed explicitly), entries failing the
// bilingual requirement are filtered out when configured, every string field
// is trimmed, and Order is renumbered densely to 0..n-1 in rank order.
func (l *List) SerializeForSave() []models.FeatureEntry {
	out := make([]models.FeatureEntry, 0, len(l.entries))
	for _, entry := range l.entries {
		entry.Icon = strings.TrimSpace(entry.Icon)
		entry.Name = entry.Name.Trimmed()
		entry.Description = entry.Description.Trimmed()
		if l.cfg.RequireBilingual {
			if entry.Icon == "" || entry.Name.En == "" || entry.Name.Ar == "" {
				continue
			}
		}
		entry.Order = len(out)
		out = append(out, entry)
	}
	return out
}

func (l *List) resort() {
	sort.SliceStable(l.entries, func(i, j int) bool { return l.entries[i].Order < l.entries[j].Order })
}

func setField(entry *models.FeatureEntry, field Field, value string) error {
	switch field {
	case FieldIcon:
		entry.Icon = value
	case FieldNameEn:
		entry.Name.En = value
	case FieldNameAr:
		entry.Name.Ar = value
	case FieldDescriptionEn:
		entry.Description.En = value
	case FieldDescriptionAr:
		entry.Description.Ar = value
	default:
		return fmt.Errorf("unknown feature field %q", field)
	}
	return nil
}
