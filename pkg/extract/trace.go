package extract

import (
	"strings"
)

// traceContextBefore and traceContextAfter size the line window printed around
// a traced spell's first mention.
const (
	traceContextBefore = 5
	traceContextAfter  = 25
)

func (p *Parser) tracing() bool {
	return p.config.TraceLogger != nil && p.config.TraceSpell != ""
}

// traceWindow logs the sanitized lines around the first mention of the traced spell.
func (p *Parser) traceWindow(lines []string) {
	if !p.tracing() {
		return
	}
	logger := p.config.TraceLogger

	for idx, line := range lines {
		if !strings.Contains(line, p.config.TraceSpell) {
			continue
		}
		logger.Printf("=== trace: lines around %s ===", p.config.TraceSpell)
		for j := max(idx-traceContextBefore, 0); j < min(idx+traceContextAfter, len(lines)); j++ {
			logger.Printf("%04d: %q", j, lines[j])
		}
		return
	}
	logger.Printf("=== trace: %s not found in sanitized input ===", p.config.TraceSpell)
}

// traceDamage logs the text and dice the inferrer saw for the traced spell.
func (p *Parser) traceDamage(spell *Spell) {
	if !p.tracing() || spell.Name != p.config.TraceSpell {
		return
	}
	logger := p.config.TraceLogger

	logger.Printf("=== trace: %s description ===", spell.Name)
	for _, line := range spell.Desc {
		logger.Print(line)
	}
	logger.Printf("=== trace: %s higher level ===", spell.Name)
	for _, line := range spell.HigherLevel {
		logger.Print(line)
	}

	logger.Printf("base dice: %v", p.inferrer.BaseDice(spell.Desc))
	if rule, ok := p.inferrer.Scaling(spell.HigherLevel); ok {
		logger.Printf("scaling: %s above level %d", rule.Increment, rule.BaseLevel)
	} else {
		logger.Print("scaling: none")
	}
	logger.Printf("fields found: %d, damage levels: %d", spell.FieldsFound, len(spell.Damage))
}
