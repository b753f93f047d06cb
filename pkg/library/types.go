package library

import (
	"errors"
)

// ErrSpellNotFound is returned when no spell has the requested index.
var ErrSpellNotFound = errors.New("spell not found")

// SpellSummary is the short form of a spell used in listings.
type SpellSummary struct {
	Name  string `json:"name"`
	Index string `json:"index"`
	URL   string `json:"url"`
}

// Filter narrows a catalog listing. Zero values match everything.
type Filter struct {
	// Level restricts to one spell level when non-nil.
	Level *int

	// Class restricts to spells listing the class, ignoring case.
	Class string

	// ConcentrationOnly restricts to concentration spells.
	ConcentrationOnly bool
}

// CatalogStats aggregates counts across the catalog.
type CatalogStats struct {
	TotalSpells      int            `json:"total_spells"`
	Cantrips         int            `json:"cantrips"`
	Ritual           int            `json:"ritual"`
	Concentration    int            `json:"concentration"`
	WithDamageTables int            `json:"with_damage_tables"`
	DuplicateIndexes int            `json:"duplicate_indexes"`
	ByLevel          map[int]int    `json:"by_level"`
	BySchool         map[string]int `json:"by_school"`
	ByClass          map[string]int `json:"by_class"`
}
