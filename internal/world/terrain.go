package world

import (
	"fmt"
	"math"
)

// RuleKind selects how a Rule interprets a sample.
type RuleKind uint8

const (
	// RuleThreshold matches normalized heights strictly below an upper bound.
	RuleThreshold RuleKind = iota + 1
	// RuleLevelRange matches integer levels within an inclusive range.
	RuleLevelRange
)

func (k RuleKind) String() string {
	switch k {
	case RuleThreshold:
		return "threshold"
	case RuleLevelRange:
		return "levels"
	default:
		return fmt.Sprintf("RuleKind(%d)", uint8(k))
	}
}

// Rule is the classification rule of a Terrain.
type Rule struct {
	kind       RuleKind
	height     float64
	start, end int
}

// Threshold matches samples strictly below height.
func Threshold(height float64) Rule {
	return Rule{kind: RuleThreshold, height: height}
}

// LevelRange matches levels in [start, end].
func LevelRange(start, end int) Rule {
	return Rule{kind: RuleLevelRange, start: start, end: end}
}

func (r Rule) Kind() RuleKind { return r.kind }

// Matches reports whether sample falls under the rule.
func (r Rule) Matches(sample float64) bool {
	switch r.kind {
	case RuleThreshold:
		return sample < r.height
	case RuleLevelRange:
		return sample >= float64(r.start) && sample <= float64(r.end)
	}
	return false
}

// Key orders rules inside a ColorMap: the threshold, or the range start.
func (r Rule) Key() float64 {
	if r.kind == RuleLevelRange {
		return float64(r.start)
	}
	return r.height
}

// Levels returns the inclusive range of a level rule.
func (r Rule) Levels() (start, end int) { return r.start, r.end }

// Bound returns the upper bound of a threshold rule.
func (r Rule) Bound() float64 { return r.height }

func (r Rule) String() string {
	if r.kind == RuleLevelRange {
		return fmt.Sprintf("levels[%d,%d]", r.start, r.end)
	}
	return fmt.Sprintf("below(%g)", r.height)
}

// Terrain is a band of the terrain table. Name only identifies the band.
type Terrain struct {
	Name       string
	ColorIndex uint8 // 1..255, 0 means unassigned
	Rule       Rule
}

// NewTerrain returns a Terrain painted with the given palette index.
func NewTerrain(name string, colorIndex uint8, rule Rule) Terrain {
	return Terrain{Name: name, ColorIndex: colorIndex, Rule: rule}
}

func (t Terrain) validate() error {
	if t.ColorIndex == 0 {
		return configErrorf("terrain."+t.Name, "color index 0 is reserved")
	}
	switch t.Rule.kind {
	case RuleThreshold:
		if math.IsNaN(t.Rule.height) {
			return configErrorf("terrain."+t.Name, "threshold is NaN")
		}
	case RuleLevelRange:
		if t.Rule.start > t.Rule.end {
			return configErrorf("terrain."+t.Name, "level range [%d,%d] is inverted", t.Rule.start, t.Rule.end)
		}
	default:
		return configErrorf("terrain."+t.Name, "missing classification rule")
	}
	return nil
}
