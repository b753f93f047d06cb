// Package library stores parsed spells as JSON and serves lookups over them.
package library

import (
	"sort"
	"sync"

	"github.com/coolbeans/spellbook/pkg/extract"
)

// Catalog is a read-mostly index over a sealed spell list.
type Catalog struct {
	mu      sync.RWMutex
	spells  []*extract.Spell
	byIndex map[string]*extract.Spell
}

// NewCatalog indexes spells in encounter order. When two spells share an
// index the first one wins lookups; both remain in listings.
func NewCatalog(spells []*extract.Spell) *Catalog {
	catalog := &Catalog{}
	catalog.Replace(spells)
	return catalog
}

// Open loads a spells.json file into a new catalog.
func Open(path string) (*Catalog, error) {
	spells, err := LoadSpells(path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(spells), nil
}

// Replace swaps the catalog contents.
func (c *Catalog) Replace(spells []*extract.Spell) {
	byIndex := make(map[string]*extract.Spell, len(spells))
	for _, spell := range spells {
		if _, exists := byIndex[spell.Index]; !exists {
			byIndex[spell.Index] = spell
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.spells = spells
	c.byIndex = byIndex
}

// Len returns the number of spells, duplicates included.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.spells)
}

// Get returns the spell with the given index.
func (c *Catalog) Get(index string) (*extract.Spell, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	spell, ok := c.byIndex[index]
	if !ok {
		return nil, ErrSpellNotFound
	}
	return spell, nil
}

// All returns every spell in encounter order.
func (c *Catalog) All() []*extract.Spell {
	return c.List(Filter{})
}

// List returns the spells matching filter in encounter order.
func (c *Catalog) List(filter Filter) []*extract.Spell {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*extract.Spell, 0, len(c.spells))
	for _, spell := range c.spells {
		if filter.matches(spell) {
			result = append(result, spell)
		}
	}
	return result
}

// ByClass returns spells available to the class, ignoring case.
func (c *Catalog) ByClass(class string) []*extract.Spell {
	return c.List(Filter{Class: class})
}

// ByLevel returns spells of one level.
func (c *Catalog) ByLevel(level int) []*extract.Spell {
	return c.List(Filter{Level: &level})
}

// Concentration returns spells that require concentration.
func (c *Catalog) Concentration() []*extract.Spell {
	return c.List(Filter{ConcentrationOnly: true})
}

// Summaries converts spells to their listing form.
func Summaries(spells []*extract.Spell) []SpellSummary {
	summaries := make([]SpellSummary, len(spells))
	for i, spell := range spells {
		summaries[i] = SpellSummary{Name: spell.Name, Index: spell.Index, URL: spell.URL}
	}
	return summaries
}

// Stats returns aggregate counts over the catalog.
func (c *Catalog) Stats() *CatalogStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := &CatalogStats{
		TotalSpells: len(c.spells),
		ByLevel:     make(map[int]int),
		BySchool:    make(map[string]int),
		ByClass:     make(map[string]int),
	}
	stats.DuplicateIndexes = len(c.spells) - len(c.byIndex)

	for _, spell := range c.spells {
		if spell.IsCantrip() {
			stats.Cantrips++
		}
		if spell.Ritual {
			stats.Ritual++
		}
		if spell.Concentration {
			stats.Concentration++
		}
		if len(spell.Damage) > 0 {
			stats.WithDamageTables++
		}
		stats.ByLevel[spell.Level]++
		if spell.School.Name != "" {
			stats.BySchool[spell.School.Name]++
		}
		for _, class := range spell.Classes {
			stats.ByClass[class.Name]++
		}
	}

	return stats
}

// SortedKeys returns map keys in ascending order for stable printing.
func SortedKeys[K int | string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (f Filter) matches(spell *extract.Spell) bool {
	if f.Level != nil && spell.Level != *f.Level {
		return false
	}
	if f.Class != "" && !spell.HasClass(f.Class) {
		return false
	}
	if f.ConcentrationOnly && !spell.Concentration {
		return false
	}
	return true
}
