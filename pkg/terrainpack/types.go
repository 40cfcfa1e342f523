package terrainpack

import (
	"encoding/json"
	"fmt"
)

// Pack is a terrain table with its display colors.
type Pack struct {
	Parent string `json:"parent"`
	// Palette maps color names to "#rrggbb", an SVG color name, or
	// "#other" to reuse another palette entry.
	Palette  map[string]string `json:"palette"`
	Terrains []TerrainDef      `json:"terrains"`
}

// TerrainDef is one band of a pack. Exactly one of Levels and Threshold
// must be set.
type TerrainDef struct {
	Name      string     `json:"name"`
	Index     uint8      `json:"index"`
	Color     string     `json:"color"`
	Levels    *LevelSpan `json:"levels,omitempty"`
	Threshold *float64   `json:"threshold,omitempty"`
}

// LevelSpan is an inclusive level range. In JSON it is either [start, end]
// or a single level.
type LevelSpan [2]int

func (s *LevelSpan) UnmarshalJSON(data []byte) error {
	// First, try a [start, end] pair
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err == nil {
		*s = pair
		return nil
	}

	var single int
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("levels must be [start, end] or a single level: %w", err)
	}
	*s = LevelSpan{single, single}
	return nil
}
