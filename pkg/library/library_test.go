package library

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/spellbook/pkg/extract"
)

func TestCatalog_Get(t *testing.T) {
	catalog := NewCatalog(sampleSpells())

	spell, err := catalog.Get("acid-arrow")
	require.NoError(t, err)
	assert.Equal(t, "Acid Arrow", spell.Name)

	_, err = catalog.Get("wish")
	assert.ErrorIs(t, err, ErrSpellNotFound)
}

func TestCatalog_DuplicateIndexFirstWins(t *testing.T) {
	first := &extract.Spell{Name: "Light", Index: "light", Level: 0}
	second := &extract.Spell{Name: "Light", Index: "light", Level: 3}
	catalog := NewCatalog([]*extract.Spell{first, second})

	got, err := catalog.Get("light")
	require.NoError(t, err)
	assert.Same(t, first, got)
	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, 1, catalog.Stats().DuplicateIndexes)
}

func TestCatalog_Filters(t *testing.T) {
	catalog := NewCatalog(sampleSpells())

	assert.Len(t, catalog.All(), 3)
	assert.Len(t, catalog.ByClass("bard"), 1)
	assert.Len(t, catalog.ByClass("Wizard"), 3)
	assert.Len(t, catalog.ByLevel(0), 1)
	assert.Empty(t, catalog.ByLevel(9))

	concentration := catalog.Concentration()
	require.Len(t, concentration, 1)
	assert.Equal(t, "Mordenkainen's Sword", concentration[0].Name)

	level := 7
	combined := catalog.List(Filter{Level: &level, Class: "wizard", ConcentrationOnly: true})
	assert.Len(t, combined, 1)
}

func TestCatalog_Stats(t *testing.T) {
	stats := NewCatalog(sampleSpells()).Stats()

	assert.Equal(t, 3, stats.TotalSpells)
	assert.Equal(t, 1, stats.Cantrips)
	assert.Equal(t, 1, stats.Concentration)
	assert.Equal(t, 1, stats.WithDamageTables)
	assert.Equal(t, 0, stats.DuplicateIndexes)
	assert.Equal(t, map[int]int{0: 1, 2: 1, 7: 1}, stats.ByLevel)
	assert.Equal(t, 3, stats.BySchool["Evocation"])
	assert.Equal(t, 3, stats.ByClass["Wizard"])
	assert.Equal(t, []int{0, 2, 7}, SortedKeys(stats.ByLevel))
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spells.json")
	require.NoError(t, SaveSpells(path, sampleSpells()))

	catalog, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 3, catalog.Len())

	_, err = Open(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestSummaries(t *testing.T) {
	summaries := Summaries(sampleSpells()[:1])
	assert.Equal(t, []SpellSummary{{Name: "Acid Arrow", Index: "acid-arrow", URL: "/api/spells/acid-arrow"}}, summaries)
}
