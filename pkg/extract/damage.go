package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxSpellLevel is the highest spell level in the rulebook; damage tables stop here.
const MaxSpellLevel = 9

// Dice is an "NdM" expression.
type Dice struct {
	Count int
	Size  int
}

func (d Dice) String() string {
	return fmt.Sprintf("%dd%d", d.Count, d.Size)
}

// ParseDice parses "NdM", accepting an upper-case "D".
func ParseDice(expr string) (Dice, error) {
	countText, sizeText, ok := strings.Cut(strings.ToLower(strings.TrimSpace(expr)), "d")
	if !ok {
		return Dice{}, fmt.Errorf("invalid dice expression %q", expr)
	}
	count, err := strconv.Atoi(countText)
	if err != nil {
		return Dice{}, fmt.Errorf("invalid dice count in %q: %w", expr, err)
	}
	size, err := strconv.Atoi(sizeText)
	if err != nil {
		return Dice{}, fmt.Errorf("invalid dice size in %q: %w", expr, err)
	}
	return Dice{Count: count, Size: size}, nil
}

// DamageDice is a base damage roll found in a description, e.g. 4d4 Acid.
type DamageDice struct {
	Dice Dice
	Type string
}

// ScalingRule describes "increases by 1d4 for each spell slot level above 2".
type ScalingRule struct {
	Increment Dice
	BaseLevel int
}

// DamageInferrer derives per-level damage tables from spell prose.
type DamageInferrer struct {
	damagePattern  *regexp.Regexp
	scalingPattern *regexp.Regexp
}

// NewDamageInferrer creates a DamageInferrer with the rulebook's phrasing.
func NewDamageInferrer() *DamageInferrer {
	return &DamageInferrer{
		damagePattern:  regexp.MustCompile(`(\d+d\d+)\s+([A-Za-z]+)(?:\s+damage)?`),
		scalingPattern: regexp.MustCompile(`(?i)increases by (\d+d\d+) for each spell slot level above (\d+)`),
	}
}

// Apply fills spell.Damage when both base dice and a scaling rule are found.
// Otherwise the table is left empty.
func (d *DamageInferrer) Apply(spell *Spell) {
	base := d.BaseDice(spell.Desc)
	if len(base) == 0 {
		return
	}
	rule, ok := d.Scaling(spell.HigherLevel)
	if !ok {
		return
	}
	spell.Damage = ScaleDamage(base, rule)
}

// BaseDice returns every "NdM type" roll in the description, in order,
// duplicates included.
func (d *DamageInferrer) BaseDice(desc []string) []DamageDice {
	matches := d.damagePattern.FindAllStringSubmatch(joinWrapped(desc), -1)
	found := make([]DamageDice, 0, len(matches))
	for _, m := range matches {
		dice, err := ParseDice(m[1])
		if err != nil {
			continue
		}
		found = append(found, DamageDice{Dice: dice, Type: m[2]})
	}
	return found
}

// Scaling returns the first slot-level scaling rule in the higher-level text.
func (d *DamageInferrer) Scaling(higherLevel []string) (ScalingRule, bool) {
	m := d.scalingPattern.FindStringSubmatch(joinWrapped(higherLevel))
	if m == nil {
		return ScalingRule{}, false
	}
	increment, err := ParseDice(m[1])
	if err != nil {
		return ScalingRule{}, false
	}
	baseLevel, err := strconv.Atoi(m[2])
	if err != nil {
		return ScalingRule{}, false
	}
	return ScalingRule{Increment: increment, BaseLevel: baseLevel}, true
}

// ScaleDamage computes the dice at every level from rule.BaseLevel through
// MaxSpellLevel. Only the increment's count scales; base die sizes are kept.
func ScaleDamage(base []DamageDice, rule ScalingRule) DamageTable {
	table := DamageTable{}
	for level := rule.BaseLevel; level <= MaxSpellLevel; level++ {
		extra := (level - rule.BaseLevel) * rule.Increment.Count
		row := make([]string, len(base))
		for i, roll := range base {
			row[i] = fmt.Sprintf("%dd%d %s", roll.Dice.Count+extra, roll.Dice.Size, roll.Type)
		}
		table[level] = row
	}
	return table
}

// joinWrapped joins lines with spaces and undoes line-wrap hyphenation ("dam- age").
func joinWrapped(lines []string) string {
	return strings.ReplaceAll(strings.Join(lines, " "), "- ", "")
}
