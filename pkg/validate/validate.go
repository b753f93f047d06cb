// Package validate reports extraction quality problems in parsed spell records.
// It never modifies the records it inspects.
package validate

import (
	"strings"

	"github.com/coolbeans/spellbook/pkg/extract"
)

// ValidationStatus is the overall outcome of a validation run.
type ValidationStatus string

const (
	StatusPass ValidationStatus = "PASS"
	StatusFail ValidationStatus = "FAIL"
	StatusWarn ValidationStatus = "WARN"
)

// Severity ranks a single issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue codes.
const (
	CodeMissingSchool    = "missing_school"
	CodeMissingClasses   = "missing_classes"
	CodeIncompleteFields = "incomplete_fields"
	CodeEmptyDescription = "empty_description"
	CodeUnscaledDamage   = "unscaled_damage"
	CodeDuplicateIndex   = "duplicate_index"
)

// Issue is one problem found on one spell.
type Issue struct {
	Spell    string   `json:"spell"`
	Index    string   `json:"index"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// ValidationResult holds every issue plus per-severity counts.
type ValidationResult struct {
	Status      ValidationStatus `json:"status"`
	TotalSpells int              `json:"total_spells"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Infos       int              `json:"infos"`
	Issues      []Issue          `json:"issues"`
}

// Validate checks each spell and aggregates the findings.
// Errors fail the run; warnings alone downgrade it to WARN.
func Validate(spells []*extract.Spell) *ValidationResult {
	result := &ValidationResult{
		TotalSpells: len(spells),
		Issues:      []Issue{},
	}

	seen := make(map[string]bool, len(spells))
	for _, spell := range spells {
		for _, issue := range checkSpell(spell) {
			result.add(issue)
		}
		if seen[spell.Index] {
			result.add(newIssue(spell, SeverityInfo, CodeDuplicateIndex,
				"index collides with an earlier spell of the same name"))
		}
		seen[spell.Index] = true
	}

	switch {
	case result.Errors > 0:
		result.Status = StatusFail
	case result.Warnings > 0:
		result.Status = StatusWarn
	default:
		result.Status = StatusPass
	}
	return result
}

// IssuesBySeverity returns the issues with one severity, in report order.
func (r *ValidationResult) IssuesBySeverity(severity Severity) []Issue {
	var filtered []Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

func (r *ValidationResult) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
	switch issue.Severity {
	case SeverityError:
		r.Errors++
	case SeverityWarning:
		r.Warnings++
	default:
		r.Infos++
	}
}

func checkSpell(spell *extract.Spell) []Issue {
	var issues []Issue

	// A level line that matched neither shape leaves school and classes empty.
	if spell.School.Name == "" {
		issues = append(issues, newIssue(spell, SeverityError, CodeMissingSchool,
			"level line was not recognized; level, school and classes are defaults"))
	}
	if len(spell.Classes) == 0 {
		issues = append(issues, newIssue(spell, SeverityError, CodeMissingClasses,
			"no classes listed"))
	}

	if fieldsSeen(spell) != extract.RequiredFieldCount {
		issues = append(issues, newIssue(spell, SeverityWarning, CodeIncompleteFields,
			"preamble did not yield exactly 4 fields; body text was dropped"))
	}

	if len(spell.Desc) == 0 {
		issues = append(issues, newIssue(spell, SeverityWarning, CodeEmptyDescription,
			"description is empty"))
	}

	if len(spell.Damage) == 0 && mentionsSlotScaling(spell.HigherLevel) {
		issues = append(issues, newIssue(spell, SeverityWarning, CodeUnscaledDamage,
			"higher-level text scales by slot but no damage table was produced"))
	}

	return issues
}

// fieldsSeen uses the parser's count when available. Records decoded from
// JSON lose it, so populated fields are counted instead.
func fieldsSeen(spell *extract.Spell) int {
	if spell.FieldsFound > 0 {
		return spell.FieldsFound
	}
	count := 0
	for _, value := range []string{spell.CastingTime, spell.Range, strings.Join(spell.Components, ""), spell.Duration} {
		if value != "" {
			count++
		}
	}
	return count
}

func mentionsSlotScaling(higherLevel []string) bool {
	text := strings.ToLower(strings.Join(higherLevel, " "))
	return strings.Contains(text, "increases by") && strings.Contains(text, "slot level above")
}

func newIssue(spell *extract.Spell, severity Severity, code, message string) Issue {
	return Issue{
		Spell:    spell.Name,
		Index:    spell.Index,
		Severity: severity,
		Code:     code,
		Message:  message,
	}
}
