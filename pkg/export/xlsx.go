package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/coolbeans/spellbook/pkg/extract"
	"github.com/coolbeans/spellbook/pkg/library"
)

const (
	spellsSheet = "Spells"
	damageSheet = "Damage"
)

var damageColumns = []string{"Spell", "Index", "Level", "Dice"}

// WriteXLSX writes a workbook with a Spells sheet and a Damage sheet holding
// one row per spell, level and dice expression.
func WriteXLSX(w io.Writer, spells []*extract.Spell) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", spellsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(damageSheet); err != nil {
		return fmt.Errorf("create damage sheet: %w", err)
	}

	if err := writeRow(f, spellsSheet, 1, columns); err != nil {
		return err
	}
	for i, spell := range spells {
		if err := writeRow(f, spellsSheet, i+2, spellToRow(spell)); err != nil {
			return err
		}
	}

	if err := writeRow(f, damageSheet, 1, damageColumns); err != nil {
		return err
	}
	row := 2
	for _, spell := range spells {
		for _, level := range library.SortedKeys(map[int][]string(spell.Damage)) {
			for _, dice := range spell.Damage[level] {
				if err := writeRow(f, damageSheet, row, []string{spell.Name, spell.Index, fmt.Sprint(level), dice}); err != nil {
					return err
				}
				row++
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	cells := make([]interface{}, len(values))
	for i, value := range values {
		cells[i] = value
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
