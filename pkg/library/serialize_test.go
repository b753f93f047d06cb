package library

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/spellbook/pkg/extract"
)

func sampleSpells() []*extract.Spell {
	lines := []string{
		"Acid Arrow",
		"Level 2 Evocation (Wizard)",
		"Casting Time: Action",
		"Range: 90 feet",
		"Components: V, S, M (powdered rhubarb leaf)",
		"Duration: Instantaneous",
		"On a hit, the target takes 4d4 Acid damage.",
		"Using a Higher-Level Spell Slot. The damage increases by 1d4 for each spell slot level above 2.",
		"",
		"Mordenkainen's Sword",
		"Level 7 Evocation (Bard, Wizard)",
		"Casting Time: Action",
		"Range: 90 feet",
		"Components: V, S, M (a miniature sword worth 250+ GP)",
		"Duration: Concentration, up to 1 minute",
		"You create a spectral sword – it hovers & strikes for 4d12 Force damage. Épée.",
		"Fire Bolt",
		"Evocation Cantrip (Sorcerer, Wizard)",
		"Casting Time: Action",
		"Range: 120 feet",
		"Components: V, S",
		"Duration: Instantaneous",
		"You hurl a mote of fire for 1d10 Fire damage.",
	}
	return extract.NewParser().ParseLines(lines)
}

func TestEncodeSpells_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeSpells(&buf, sampleSpells()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[\n  {\n    \"name\": \"Acid Arrow\""))
	assert.Contains(t, out, "Épée")
	assert.Contains(t, out, "250+ GP")
	assert.Contains(t, out, "hovers & strikes")
	assert.Contains(t, out, "sword - it hovers")
	assert.Contains(t, out, "\"2\": [\n")
}

func TestEncodeSpells_NilWritesEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeSpells(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestSaveAndLoadSpells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "spells.json")
	spells := sampleSpells()

	require.NoError(t, SaveSpells(path, spells))
	loaded, err := LoadSpells(path)
	require.NoError(t, err)

	require.Len(t, loaded, len(spells))
	for i := range spells {
		assert.Equal(t, spells[i].Name, loaded[i].Name)
		assert.Equal(t, spells[i].Damage, loaded[i].Damage)
		assert.Equal(t, spells[i].Classes, loaded[i].Classes)
		assert.Equal(t, spells[i].URL, loaded[i].URL)
	}
}

func TestLoadSpells_Errors(t *testing.T) {
	_, err := LoadSpells(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name": "not an array"}`), 0644))
	_, err = LoadSpells(bad)
	assert.Error(t, err)
}
