package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	// DefaultFooterPhrase identifies the document's running footer.
	DefaultFooterPhrase = "System Reference Document"

	// DefaultSectionHeader is the running section header repeated on every page.
	DefaultSectionHeader = "Spell Descriptions"

	// DefaultPageNumberFloor is the largest standalone number kept as content.
	// Page numbers in the spell section are all above it.
	DefaultPageNumberFloor = 50
)

// standalonePageNumberPattern matches lines containing only a number.
var standalonePageNumberPattern = regexp.MustCompile(`^\d+$`)

// SanitizePolicy configures which layout lines are stripped from the dump.
type SanitizePolicy struct {
	// FooterPhrase drops any line containing it. Empty disables the check.
	FooterPhrase string

	// SectionHeader drops lines whose trimmed text equals it. Empty disables the check.
	SectionHeader string

	// PageNumberFloor drops digits-only lines whose value exceeds it.
	PageNumberFloor int
}

// DefaultSanitizePolicy returns the policy for the spell-description section.
func DefaultSanitizePolicy() SanitizePolicy {
	return SanitizePolicy{
		FooterPhrase:    DefaultFooterPhrase,
		SectionHeader:   DefaultSectionHeader,
		PageNumberFloor: DefaultPageNumberFloor,
	}
}

// Sanitize removes page numbers, running footers and section headers from
// PDF-extracted lines. Kept lines lose trailing whitespace only.
func Sanitize(lines []string, policy SanitizePolicy) []string {
	cleanedLines := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		if policy.isPageNumber(trimmedLine) {
			continue
		}

		if policy.FooterPhrase != "" && strings.Contains(line, policy.FooterPhrase) {
			continue
		}

		if policy.SectionHeader != "" && trimmedLine == policy.SectionHeader {
			continue
		}

		cleanedLines = append(cleanedLines, strings.TrimRightFunc(line, unicode.IsSpace))
	}

	return cleanedLines
}

// isPageNumber reports whether a trimmed line is a standalone page number.
// Numbers too large to parse are always above the floor.
func (p SanitizePolicy) isPageNumber(trimmedLine string) bool {
	if !standalonePageNumberPattern.MatchString(trimmedLine) {
		return false
	}
	value, err := strconv.Atoi(trimmedLine)
	if err != nil {
		return true
	}
	return value > p.PageNumberFloor
}
