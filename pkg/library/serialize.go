package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/coolbeans/spellbook/pkg/extract"
)

// jsonIndent matches the two-space indentation of the published spells.json.
const jsonIndent = "  "

// EncodeSpells writes spells as an indented JSON array in slice order.
// Non-ASCII text and HTML characters are written literally.
func EncodeSpells(w io.Writer, spells []*extract.Spell) error {
	if spells == nil {
		spells = []*extract.Spell{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", jsonIndent)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(spells); err != nil {
		return fmt.Errorf("failed to encode spells: %w", err)
	}
	return nil
}

// DecodeSpells reads a JSON array of spells.
func DecodeSpells(r io.Reader) ([]*extract.Spell, error) {
	var spells []*extract.Spell
	if err := json.NewDecoder(r).Decode(&spells); err != nil {
		return nil, fmt.Errorf("failed to decode spells: %w", err)
	}
	return spells, nil
}

// SaveSpells writes spells to path, creating parent directories.
func SaveSpells(path string, spells []*extract.Spell) error {
	var buf bytes.Buffer
	if err := EncodeSpells(&buf, spells); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadSpells reads a spells.json file written by SaveSpells.
func LoadSpells(path string) ([]*extract.Spell, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return DecodeSpells(file)
}
