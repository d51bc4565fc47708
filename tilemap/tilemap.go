// Package tilemap turns Tiled TMX maps into actor specs.
//
// Object groups are named after a role (heroes, enemies, obstacles,
// goodies, destinations) and each object becomes one actor of that role.
// Custom properties map onto actor.Spec fields by their YAML names. Tile
// layers whose name starts with "solid" become static obstacles, one per
// horizontal run of tiles.
package tilemap

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
	"github.com/milk9111/stagehand/actor"
	"github.com/milk9111/stagehand/common"
)

// Placement is one actor to spawn.
type Placement struct {
	Role actor.Role
	Spec actor.Spec
}

// Layout is the content of a map in pixels.
type Layout struct {
	Width  float64
	Height float64
	Actors []Placement
}

// Load reads the TMX at path from fsys.
func Load(fsys fs.FS, path string) (*Layout, error) {
	m, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", path, err)
	}

	logger := common.Logger("tilemap")
	out := &Layout{
		Width:  float64(m.Width * m.TileWidth),
		Height: float64(m.Height * m.TileHeight),
	}

	for _, layer := range m.Layers {
		if !strings.HasPrefix(strings.ToLower(layer.Name), "solid") {
			continue
		}
		out.Actors = append(out.Actors, solidRuns(m, layer)...)
	}

	for _, og := range m.ObjectGroups {
		role, ok := actor.ParseRole(og.Name)
		if !ok || role == actor.RoleProjectile {
			logger.Warn("skipping object group", "map", path, "group", og.Name)
			continue
		}
		for _, o := range og.Objects {
			spec, err := objectSpec(o)
			if err != nil {
				return nil, fmt.Errorf("%s: object %d in %s: %w", path, o.ID, og.Name, err)
			}
			out.Actors = append(out.Actors, Placement{Role: role, Spec: spec})
		}
	}
	return out, nil
}

// solidRuns merges horizontally adjacent tiles into single obstacles.
func solidRuns(m *tiled.Map, layer *tiled.Layer) []Placement {
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	var out []Placement
	for y := 0; y < m.Height; y++ {
		start := -1
		flush := func(end int) {
			if start < 0 {
				return
			}
			out = append(out, Placement{Role: actor.RoleObstacle, Spec: actor.Spec{
				X: float64(start) * tw,
				Y: float64(y) * th,
				W: float64(end-start) * tw,
				H: th,
			}})
			start = -1
		}
		for x := 0; x < m.Width; x++ {
			i := y*m.Width + x
			if i >= len(layer.Tiles) || layer.Tiles[i].IsNil() {
				flush(x)
				continue
			}
			if start < 0 {
				start = x
			}
		}
		flush(m.Width)
	}
	return out
}

func objectSpec(o *tiled.Object) (actor.Spec, error) {
	raw := make(map[string]any, len(o.Properties)+5)
	for _, p := range o.Properties {
		raw[p.Name] = propertyValue(p)
	}
	y := o.Y
	if o.GID != 0 {
		// tile objects are anchored at their bottom-left corner
		y -= o.Height
	}
	raw["x"] = o.X
	raw["y"] = y
	raw["w"] = o.Width
	raw["h"] = o.Height
	if _, ok := raw["shape"]; !ok && len(o.Ellipses) > 0 {
		raw["shape"] = "circle"
	}
	return actor.DecodeSpec(raw)
}

func propertyValue(p *tiled.Property) any {
	switch p.Type {
	case "bool":
		return p.Value == "true"
	case "int":
		if n, err := strconv.Atoi(p.Value); err == nil {
			return n
		}
	case "float":
		if f, err := strconv.ParseFloat(p.Value, 64); err == nil {
			return f
		}
	}
	return p.Value
}
