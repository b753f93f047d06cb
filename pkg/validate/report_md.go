package validate

import (
	"fmt"
	"strings"
)

// ToMarkdown renders the validation result as a Markdown report.
func (validationResult *ValidationResult) ToMarkdown() string {
	var markdownBuilder strings.Builder

	statusBadge := statusToMarkdownBadge(validationResult.Status)
	markdownBuilder.WriteString(fmt.Sprintf("# Spell Extraction Report %s\n\n", statusBadge))

	markdownBuilder.WriteString("## Summary\n\n")
	markdownBuilder.WriteString("| Metric | Value |\n")
	markdownBuilder.WriteString("|--------|-------|\n")
	markdownBuilder.WriteString(fmt.Sprintf("| **Spells** | %d |\n", validationResult.TotalSpells))
	markdownBuilder.WriteString(fmt.Sprintf("| **Errors** | %d |\n", validationResult.Errors))
	markdownBuilder.WriteString(fmt.Sprintf("| **Warnings** | %d |\n", validationResult.Warnings))
	markdownBuilder.WriteString(fmt.Sprintf("| **Info** | %d |\n", validationResult.Infos))
	markdownBuilder.WriteString(fmt.Sprintf("| **Status** | %s %s |\n", statusBadge, validationResult.Status))
	markdownBuilder.WriteString("\n")

	for _, section := range []struct {
		title    string
		severity Severity
	}{
		{"Errors", SeverityError},
		{"Warnings", SeverityWarning},
		{"Info", SeverityInfo},
	} {
		issues := validationResult.IssuesBySeverity(section.severity)
		if len(issues) == 0 {
			continue
		}
		markdownBuilder.WriteString(fmt.Sprintf("## %s\n\n", section.title))
		markdownBuilder.WriteString("| Spell | Code | Message |\n")
		markdownBuilder.WriteString("|-------|------|---------|\n")
		for _, issue := range issues {
			markdownBuilder.WriteString(fmt.Sprintf("| %s | `%s` | %s |\n",
				escapeMarkdownCell(issue.Spell), issue.Code, escapeMarkdownCell(issue.Message)))
		}
		markdownBuilder.WriteString("\n")
	}

	return markdownBuilder.String()
}

// String renders a plain-text report, one issue per line.
func (validationResult *ValidationResult) String() string {
	var textBuilder strings.Builder
	textBuilder.WriteString(fmt.Sprintf("Status: %s (%d spells, %d errors, %d warnings, %d info)\n",
		validationResult.Status, validationResult.TotalSpells,
		validationResult.Errors, validationResult.Warnings, validationResult.Infos))
	for _, issue := range validationResult.Issues {
		textBuilder.WriteString(fmt.Sprintf("  [%s] %s: %s (%s)\n", issue.Severity, issue.Spell, issue.Message, issue.Code))
	}
	return textBuilder.String()
}

func statusToMarkdownBadge(status ValidationStatus) string {
	switch status {
	case StatusPass:
		return "`PASS`"
	case StatusFail:
		return "`FAIL`"
	case StatusWarn:
		return "`WARN`"
	default:
		return fmt.Sprintf("`%s`", status)
	}
}

func escapeMarkdownCell(text string) string {
	return strings.ReplaceAll(text, "|", "\\|")
}
