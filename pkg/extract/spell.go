// Package extract turns a plain-text dump of a rulebook's spell descriptions
// into structured spell records.
package extract

import (
	"strings"
)

// APIBasePath prefixes every spell URL.
const APIBasePath = "/api/spells/"

// NamedRef is a structured reference to a named entity such as a school or class.
type NamedRef struct {
	Name string `json:"name"`
}

// DamageTable maps a spell slot level to the scaled dice expressions cast at that level.
type DamageTable map[int][]string

// Spell represents a single parsed spell description.
type Spell struct {
	Name          string      `json:"name"`
	Index         string      `json:"index"`
	Desc          []string    `json:"desc"`
	HigherLevel   []string    `json:"higher_level"`
	Range         string      `json:"range"`
	Components    []string    `json:"components"`
	Material      string      `json:"material"`
	Ritual        bool        `json:"ritual"`
	Duration      string      `json:"duration"`
	Concentration bool        `json:"concentration"`
	CastingTime   string      `json:"casting_time"`
	Level         int         `json:"level"`
	AttackType    string      `json:"attack_type"`
	Damage        DamageTable `json:"damage"`
	School        NamedRef    `json:"school"`
	Classes       []NamedRef  `json:"classes"`
	Subclasses    []NamedRef  `json:"subclasses"`
	URL           string      `json:"url"`
	UpdatedAt     *string     `json:"updated_at"`

	// FieldsFound counts the preamble field lines seen while the spell was open.
	FieldsFound int `json:"-"`
}

// newSpell returns an open record for the given header name.
func newSpell(name string) *Spell {
	return &Spell{
		Name:        name,
		Index:       Slug(name),
		Desc:        []string{},
		HigherLevel: []string{},
		Components:  []string{},
		Damage:      DamageTable{},
		Classes:     []NamedRef{},
		Subclasses:  []NamedRef{},
	}
}

// seal finalizes a record so it can be emitted.
func (s *Spell) seal() {
	s.URL = SpellURL(s.Index)
}

// IsCantrip reports whether the spell is level 0.
func (s *Spell) IsCantrip() bool {
	return s.Level == 0
}

// ClassNames returns the class names in order of appearance.
func (s *Spell) ClassNames() []string {
	names := make([]string, len(s.Classes))
	for i, class := range s.Classes {
		names[i] = class.Name
	}
	return names
}

// HasClass reports whether the spell lists the class, ignoring case.
func (s *Spell) HasClass(name string) bool {
	for _, class := range s.Classes {
		if strings.EqualFold(class.Name, name) {
			return true
		}
	}
	return false
}

// Slug derives the spell index from its name: lowercase, spaces replaced by hyphens.
// Two spells with the same name produce the same slug.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// SpellURL returns the API path for a spell index.
func SpellURL(index string) string {
	return APIBasePath + index
}
