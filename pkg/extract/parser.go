package extract

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultHeaderLookahead bounds how many lines after a candidate name are
// searched for its level line, blank lines included. Rulebook layout sets it.
const DefaultHeaderLookahead = 5

// RequiredFieldCount is the number of preamble field lines that must be seen
// before body text is collected.
const RequiredFieldCount = 4

// maxLineSize caps the scanner buffer for a single input line.
const maxLineSize = 1024 * 1024

// Preamble field labels, tested in this order.
const (
	labelCastingTime = "Casting Time:"
	labelRange       = "Range:"
	labelComponents  = "Components:"
	labelDuration    = "Duration:"
)

// parseState is the segmenter's position within the current spell.
//
//	state        | header      | field line | blank        | trigger line     | other line
//	-------------|-------------|------------|--------------|------------------|-----------------------
//	scanning     | open/fields | drop       | drop         | drop             | drop
//	fields       | seal/fields | count      | drop         | body if count==4 | body if count==4
//	description  | seal/fields | count      | drop         | higher           | append desc
//	higherLevel  | seal/fields | append hl  | description  | append hl        | append hl
//
// "body" re-dispatches the line in the description state.
type parseState int

const (
	stateScanning parseState = iota
	stateFields
	stateDescription
	stateHigherLevel
)

func (s parseState) String() string {
	switch s {
	case stateScanning:
		return "scanning"
	case stateFields:
		return "fields"
	case stateDescription:
		return "description"
	case stateHigherLevel:
		return "higher-level"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ParserConfig holds the tunable parts of spell extraction.
type ParserConfig struct {
	// Sanitize controls which layout lines are stripped before segmentation.
	Sanitize SanitizePolicy

	// HeaderLookahead bounds the search for a spell's level line.
	HeaderLookahead int

	// TraceSpell names a spell whose intermediate state is logged. Empty disables tracing.
	TraceSpell string

	// TraceLogger receives trace output. Nil disables tracing.
	TraceLogger *log.Logger
}

// DefaultParserConfig returns the configuration for the spell-description section.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		Sanitize:        DefaultSanitizePolicy(),
		HeaderLookahead: DefaultHeaderLookahead,
	}
}

// Parser extracts spell records from a spell-description text dump.
type Parser struct {
	config ParserConfig

	levelPattern   *regexp.Regexp
	cantripPattern *regexp.Regexp

	inferrer *DamageInferrer
}

// NewParser creates a Parser with the default configuration.
func NewParser() *Parser {
	return NewParserWithConfig(DefaultParserConfig())
}

// NewParserWithConfig creates a Parser with the given configuration.
// A non-positive lookahead falls back to DefaultHeaderLookahead.
func NewParserWithConfig(config ParserConfig) *Parser {
	if config.HeaderLookahead <= 0 {
		config.HeaderLookahead = DefaultHeaderLookahead
	}
	return &Parser{
		config:         config,
		levelPattern:   regexp.MustCompile(`^Level (\d+) ([A-Za-z]+) \((.+)\)`),
		cantripPattern: regexp.MustCompile(`^([A-Za-z]+) Cantrip \((.+)\)`),
		inferrer:       NewDamageInferrer(),
	}
}

// Parse reads the whole dump from r and returns the spells in encounter order.
// Only read failures are reported; malformed content degrades silently.
func (p *Parser) Parse(r io.Reader) ([]*Spell, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return p.ParseLines(lines), nil
}

// ParseLines runs sanitization, segmentation and damage inference over raw lines.
func (p *Parser) ParseLines(rawLines []string) []*Spell {
	lines := NormalizeLines(Sanitize(rawLines, p.config.Sanitize))
	p.traceWindow(lines)

	spells := p.Segment(lines)
	for _, spell := range spells {
		p.inferrer.Apply(spell)
		p.traceDamage(spell)
	}
	return spells
}

// Segment groups sanitized, normalized lines into sealed spell records.
// Damage tables are left empty.
func (p *Parser) Segment(lines []string) []*Spell {
	seg := &segmenter{parser: p, lines: lines}
	return seg.run()
}

// segmenter holds the cursor state for one Segment call.
type segmenter struct {
	parser *Parser
	lines  []string

	spells  []*Spell
	current *Spell
	state   parseState
}

func (s *segmenter) run() []*Spell {
	for i := 0; i < len(s.lines); i++ {
		if levelLine, last, ok := s.parser.matchHeader(s.lines, i); ok {
			s.openSpell(strings.TrimSpace(s.lines[i]), levelLine)
			i = last
			continue
		}
		s.step(strings.TrimSpace(s.lines[i]))
	}
	s.sealCurrent()
	return s.spells
}

// openSpell seals any open record, then starts a new one from a confirmed header.
func (s *segmenter) openSpell(name, levelLine string) {
	s.sealCurrent()
	s.current = newSpell(name)
	s.parser.applyLevelLine(s.current, levelLine)
	s.state = stateFields
}

func (s *segmenter) sealCurrent() {
	if s.current == nil {
		return
	}
	s.current.seal()
	s.spells = append(s.spells, s.current)
	s.current = nil
}

// step classifies one trimmed non-header line against the current state.
func (s *segmenter) step(line string) {
	switch s.state {
	case stateScanning:
		return

	case stateHigherLevel:
		if line == "" {
			s.state = stateDescription
			return
		}
		s.current.HigherLevel = append(s.current.HigherLevel, line)
		return
	}

	if applyField(s.current, line) {
		return
	}

	if s.state == stateFields {
		if s.current.FieldsFound != RequiredFieldCount {
			return
		}
		s.state = stateDescription
	}

	if isHigherLevelTrigger(line) {
		s.current.HigherLevel = append(s.current.HigherLevel, line)
		s.state = stateHigherLevel
		return
	}

	if line != "" {
		s.current.Desc = append(s.current.Desc, line)
	}
}

// matchHeader reports whether lines[i] starts a spell header. On success it
// returns the assembled level line and the index of its last physical line.
func (p *Parser) matchHeader(lines []string, i int) (levelLine string, last int, ok bool) {
	if !isNameCandidate(lines[i]) {
		return "", 0, false
	}

	j := nextNonBlank(lines, i+1)
	if j >= len(lines) || !looksLikeLevelLine(strings.TrimSpace(lines[j])) {
		return "", 0, false
	}

	window := min(i+p.config.HeaderLookahead, len(lines)-1)
	if j > window {
		return "", 0, false
	}

	combined := strings.TrimSpace(lines[j])
	if strings.HasSuffix(combined, ")") {
		return combined, j, true
	}

	for k := j + 1; k <= window; k++ {
		next := strings.TrimSpace(lines[k])
		if next == "" {
			continue
		}
		combined += " " + next
		if strings.HasSuffix(next, ")") {
			return combined, k, true
		}
	}

	return "", 0, false
}

// applyLevelLine fills level, school and classes. Unrecognized shapes leave defaults.
func (p *Parser) applyLevelLine(spell *Spell, levelLine string) {
	if strings.HasPrefix(levelLine, "Level ") {
		m := p.levelPattern.FindStringSubmatch(levelLine)
		if m == nil {
			return
		}
		level, err := strconv.Atoi(m[1])
		if err != nil {
			return
		}
		spell.Level = level
		spell.School = NamedRef{Name: m[2]}
		spell.Classes = splitClasses(m[3])
		return
	}

	m := p.cantripPattern.FindStringSubmatch(levelLine)
	if m == nil {
		return
	}
	spell.Level = 0
	spell.School = NamedRef{Name: m[1]}
	spell.Classes = splitClasses(m[2])
}

func splitClasses(list string) []NamedRef {
	parts := strings.Split(list, ",")
	classes := make([]NamedRef, len(parts))
	for i, part := range parts {
		classes[i] = NamedRef{Name: strings.TrimSpace(part)}
	}
	return classes
}

// applyField assigns a labeled preamble line and counts it.
// Repeated labels count again and overwrite the earlier value.
func applyField(spell *Spell, line string) bool {
	switch {
	case strings.HasPrefix(line, labelCastingTime):
		spell.CastingTime = fieldValue(line)

	case strings.HasPrefix(line, labelRange):
		spell.Range = fieldValue(line)

	case strings.HasPrefix(line, labelComponents):
		spell.Components, spell.Material = parseComponents(fieldValue(line))

	case strings.HasPrefix(line, labelDuration):
		duration := fieldValue(line)
		spell.Duration = duration
		spell.Concentration = strings.Contains(duration, "Concentration")
		spell.Ritual = strings.Contains(duration, "Ritual")

	default:
		return false
	}

	spell.FieldsFound++
	return true
}

// fieldValue returns the trimmed text after the first colon.
func fieldValue(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}

// parseComponents splits "V, S, M (a pinch of sulfur)" into its component
// letters and the parenthesized material text.
func parseComponents(raw string) (components []string, material string) {
	open := strings.Index(raw, "(")
	closing := strings.Index(raw, ")")
	if open >= 0 && closing > open {
		material = raw[open+1 : closing]
	}

	list := raw
	if open >= 0 {
		list = raw[:open]
	}

	parts := strings.Split(strings.TrimSpace(list), ",")
	components = make([]string, len(parts))
	for i, part := range parts {
		components[i] = strings.TrimSpace(part)
	}
	return components, material
}

// isNameCandidate reports whether a line can be a spell name: non-empty and
// starting with an uppercase letter.
func isNameCandidate(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(trimmed)
	return unicode.IsUpper(first)
}

func looksLikeLevelLine(line string) bool {
	return strings.HasPrefix(line, "Level ") || strings.Contains(line, "Cantrip (")
}

// isHigherLevelTrigger reports whether a trimmed line opens a higher-level or
// cantrip-upgrade block.
func isHigherLevelTrigger(line string) bool {
	lower := strings.ToLower(line)
	return strings.HasPrefix(lower, "using a higher-level") ||
		(strings.Contains(lower, "higher-level") && strings.Contains(lower, "slot")) ||
		strings.HasPrefix(lower, "cantrip upgrade")
}

func nextNonBlank(lines []string, from int) int {
	j := from
	for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
		j++
	}
	return j
}
