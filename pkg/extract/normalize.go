package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// dashReplacer maps typographic dashes to a plain hyphen so patterns only
// have to match "-".
var dashReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
)

// NormalizeLine applies canonical Unicode composition and dash folding.
func NormalizeLine(line string) string {
	return dashReplacer.Replace(norm.NFC.String(line))
}

// NormalizeLines normalizes every line, preserving order.
func NormalizeLines(lines []string) []string {
	normalized := make([]string, len(lines))
	for i, line := range lines {
		normalized[i] = NormalizeLine(line)
	}
	return normalized
}
