// Package terrainpack loads terrain tables from JSON packs. A pack may name
// a parent pack and inherit its palette and terrains.
package terrainpack

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"tellus/internal/vox"
	"tellus/internal/world"
)

// BuiltinName is the name under which the built-in pack is available.
const BuiltinName = "builtin/default"

type Loader struct {
	packDir   string
	packCache map[string]*Pack
	loading   map[string]bool
}

func NewLoader(packDir string) *Loader {
	return &Loader{
		packDir:   packDir,
		packCache: make(map[string]*Pack),
		loading:   make(map[string]bool),
	}
}

// Builtin returns the pack of the demo landscape: water, dirt, grass and
// snow by level above ground.
func Builtin() *Pack {
	return &Pack{
		Palette: map[string]string{
			"water": "#5b7693",
			"dirt":  "#c7bfa8",
			"grass": "#536042",
			"snow":  "#d9d5dd",
		},
		Terrains: []TerrainDef{
			{Name: "water", Index: 1, Color: "#water", Levels: &LevelSpan{0, 2}},
			{Name: "dirt", Index: 2, Color: "#dirt", Levels: &LevelSpan{3, 3}},
			{Name: "grass", Index: 3, Color: "#grass", Levels: &LevelSpan{4, 8}},
			{Name: "snow", Index: 4, Color: "#snow", Levels: &LevelSpan{9, 15}},
		},
	}
}

// LoadPack reads <packDir>/<name>.json, merging parents.
func (l *Loader) LoadPack(name string) (*Pack, error) {
	if name == BuiltinName || name == "" {
		return Builtin(), nil
	}
	if pack, ok := l.packCache[name]; ok {
		return pack, nil
	}

	if l.loading[name] {
		return nil, fmt.Errorf("terrain pack '%s' inherits from itself", name)
	}
	l.loading[name] = true
	defer delete(l.loading, name)

	path := filepath.Join(l.packDir, name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read terrain pack: %w", err)
	}

	var pack Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("could not unmarshal terrain pack json: %w", err)
	}
	if pack.Palette == nil {
		pack.Palette = make(map[string]string)
	}

	if pack.Parent != "" {
		parent, err := l.LoadPack(pack.Parent)
		if err != nil {
			return nil, fmt.Errorf("could not load parent pack '%s': %w", pack.Parent, err)
		}
		if len(pack.Terrains) == 0 {
			pack.Terrains = parent.Terrains
		}
		for key, val := range parent.Palette {
			if _, ok := pack.Palette[key]; !ok {
				pack.Palette[key] = val
			}
		}
	}

	l.packCache[name] = &pack
	return &pack, nil
}

// ResolveColor follows "#name" references through the palette and returns
// the final color string.
func (p *Pack) ResolveColor(ref string) string {
	for i := 0; i < 10 && strings.HasPrefix(ref, "#"); i++ {
		key := strings.TrimPrefix(ref, "#")
		resolved, ok := p.Palette[key]
		if !ok {
			break
		}
		ref = resolved
	}
	return ref
}

// Table converts the pack into world terrains and the palette colors
// they use.
func (p *Pack) Table() ([]world.Terrain, map[uint8]color.RGBA, error) {
	terrains := make([]world.Terrain, 0, len(p.Terrains))
	colors := make(map[uint8]color.RGBA, len(p.Terrains))
	for _, def := range p.Terrains {
		var rule world.Rule
		switch {
		case def.Levels != nil && def.Threshold != nil:
			return nil, nil, fmt.Errorf("terrain '%s': both levels and threshold set", def.Name)
		case def.Levels != nil:
			rule = world.LevelRange(def.Levels[0], def.Levels[1])
		case def.Threshold != nil:
			rule = world.Threshold(*def.Threshold)
		default:
			return nil, nil, fmt.Errorf("terrain '%s': needs levels or threshold", def.Name)
		}

		c, err := vox.ParseColor(p.ResolveColor(def.Color))
		if err != nil {
			return nil, nil, fmt.Errorf("terrain '%s': %w", def.Name, err)
		}
		if prev, ok := colors[def.Index]; ok && prev != c {
			return nil, nil, fmt.Errorf("terrain '%s': palette index %d already has another color", def.Name, def.Index)
		}
		colors[def.Index] = c
		terrains = append(terrains, world.NewTerrain(def.Name, def.Index, rule))
	}
	return terrains, colors, nil
}

// ColorMap builds a width x height color map holding the pack's terrains.
func (p *Pack) ColorMap(width, height int) (*world.ColorMap, map[uint8]color.RGBA, error) {
	terrains, colors, err := p.Table()
	if err != nil {
		return nil, nil, err
	}
	cm := world.NewColorMap(width, height)
	for _, t := range terrains {
		if err := cm.Add(t); err != nil {
			return nil, nil, err
		}
	}
	return cm, colors, nil
}
