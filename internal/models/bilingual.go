package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// BilingualText pairs the English and Arabic rendition of one value. Both keys
// are always present on the wire; empty strings are allowed. The core never
// falls back between locales, callers pick a side explicitly.
type BilingualText struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

func (t BilingualText) Trimmed() BilingualText {
	return BilingualText{En: strings.TrimSpace(t.En), Ar: strings.TrimSpace(t.Ar)}
}

func (t BilingualText) Empty() bool {
	return strings.TrimSpace(t.En) == "" && strings.TrimSpace(t.Ar) == ""
}

func (t BilingualText) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *BilingualText) Scan(value interface{}) error {
	if value == nil {
		*t = BilingualText{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan BilingualText")
	}
	return json.Unmarshal(bytes, t)
}

// FeatureEntry is one item of an ordered feature list. Icon is opaque to the
// backend: depending on the owning section it carries an icon key, a numeric
// rating or percentage, or an image URL.
type FeatureEntry struct {
	Icon        string        `json:"icon"`
	Name        BilingualText `json:"name"`
	Description BilingualText `json:"description"`
	Order       int           `json:"order"`
}

func (e FeatureEntry) Empty() bool {
	return strings.TrimSpace(e.Icon) == "" && e.Name.Empty() && e.Description.Empty()
}

type FeatureList []FeatureEntry

// Sorted returns the entries ordered by Order ascending. The sort is stable:
// equal Order values keep their stored relative position.
func (l FeatureList) Sorted() FeatureList {
	out := make(FeatureList, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (l FeatureList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return json.Marshal(FeatureList{})
	}
	return json.Marshal(l)
}

func (l *FeatureList) Scan(value interface{}) error {
	if value == nil {
		*l = FeatureList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan FeatureList")
	}
	return json.Unmarshal(bytes, l)
}

type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if len(s) == 0 {
		return json.Marshal(StringList{})
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan StringList")
	}
	return json.Unmarshal(bytes, s)
}

type PhaseList []ProjectPhase

func (p PhaseList) Value() (driver.Value, error) {
	if len(p) == 0 {
		return json.Marshal(PhaseList{})
	}
	return json.Marshal(p)
}

func (p *PhaseList) Scan(value interface{}) error {
	if value == nil {
		*p = PhaseList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan PhaseList")
	}
	return json.Unmarshal(bytes, p)
}
