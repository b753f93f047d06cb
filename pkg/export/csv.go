// Package export writes spell lists as CSV files and Excel workbooks.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/coolbeans/spellbook/pkg/extract"
)

// BOM is the UTF-8 byte order mark Excel needs to read CSV as UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// listSeparator joins list fields inside one cell.
const listSeparator = "; "

// columns is the header row shared by CSV and XLSX exports.
var columns = []string{
	"Name",
	"Index",
	"Level",
	"School",
	"Classes",
	"Casting Time",
	"Range",
	"Components",
	"Material",
	"Duration",
	"Concentration",
	"Ritual",
	"Description",
	"Higher Level",
	"URL",
}

// WriteCSV writes a BOM, the header row and one row per spell.
func WriteCSV(w io.Writer, spells []*extract.Spell) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, spell := range spells {
		if err := writer.Write(spellToRow(spell)); err != nil {
			return fmt.Errorf("failed to write %s: %w", spell.Name, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func spellToRow(spell *extract.Spell) []string {
	return []string{
		spell.Name,
		spell.Index,
		strconv.Itoa(spell.Level),
		spell.School.Name,
		strings.Join(spell.ClassNames(), listSeparator),
		spell.CastingTime,
		spell.Range,
		strings.Join(spell.Components, listSeparator),
		spell.Material,
		spell.Duration,
		strconv.FormatBool(spell.Concentration),
		strconv.FormatBool(spell.Ritual),
		strings.Join(spell.Desc, " "),
		strings.Join(spell.HigherLevel, " "),
		spell.URL,
	}
}
