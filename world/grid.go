package world

import (
	"math"
	"sort"

	"github.com/hupe1980/agentville/core"
)

// Grid is the loaded world: an immutable tile array plus the reverse
// address index. Only the tiles' event sets mutate after construction.
type Grid struct {
	name              string
	width, height     int
	tileSize          int
	specialConstraint string

	tiles [][]core.Tile // indexed [y][x]

	// index is built once during New and never mutated afterwards: the
	// static address fields of a tile cannot change post-load.
	index map[core.Address]map[core.Coord]struct{}
}

// New builds the grid from a validated configuration bundle. Layer size
// mismatches are fatal; codes missing from a legend resolve to the empty
// string and simply produce a tile without that address level.
func New(cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		name:              cfg.Name,
		width:             cfg.Width,
		height:            cfg.Height,
		tileSize:          cfg.TileSize,
		specialConstraint: cfg.SpecialConstraint,
		tiles:             make([][]core.Tile, cfg.Height),
		index:             make(map[core.Address]map[core.Coord]struct{}),
	}

	for y := 0; y < cfg.Height; y++ {
		row := make([]core.Tile, cfg.Width)
		for x := 0; x < cfg.Width; x++ {
			i := y*cfg.Width + x
			t := core.Tile{
				World:            cfg.Name,
				Sector:           cfg.Legends.Sector[cfg.Layers.Sector[i]],
				Arena:            cfg.Legends.Arena[cfg.Layers.Arena[i]],
				GameObject:       cfg.Legends.Object[cfg.Layers.Object[i]],
				SpawningLocation: cfg.Legends.Spawn[cfg.Layers.Spawn[i]],
				Collision:        cfg.Layers.Collision[i] != "0" && cfg.Layers.Collision[i] != "",
				Events:           make(map[core.WorldEvent]struct{}),
			}
			if t.GameObject != "" {
				t.Events[core.NewIdleEvent(t.Addr(core.LevelObject))] = struct{}{}
			}
			g.indexTile(&t, core.Coord{X: x, Y: y})
			row[x] = t
		}
		g.tiles[y] = row
	}

	return g, nil
}

// indexTile inserts the tile under every address granularity it carries.
func (g *Grid) indexTile(t *core.Tile, c core.Coord) {
	if t.Sector != "" {
		g.indexAdd(t.Addr(core.LevelSector), c)
	}
	if t.Arena != "" {
		g.indexAdd(t.Addr(core.LevelArena), c)
	}
	if t.GameObject != "" {
		g.indexAdd(t.Addr(core.LevelObject), c)
	}
	if t.SpawningLocation != "" {
		g.indexAdd(core.SpawnAddress(t.SpawningLocation), c)
	}
}

func (g *Grid) indexAdd(a core.Address, c core.Coord) {
	set, ok := g.index[a]
	if !ok {
		set = make(map[core.Coord]struct{})
		g.index[a] = set
	}
	set[c] = struct{}{}
}

// Name returns the global world name.
func (g *Grid) Name() string { return g.name }

// Width returns the grid width in tiles.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in tiles.
func (g *Grid) Height() int { return g.height }

// TileSize returns the pixel edge length of one tile.
func (g *Grid) TileSize() int { return g.tileSize }

// SpecialConstraint returns the pass-through constraint value from the bundle.
func (g *Grid) SpecialConstraint() string { return g.specialConstraint }

// InBounds reports whether c lies inside the grid extents.
func (g *Grid) InBounds(c core.Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// TileFromPixel converts a continuous pixel position to a tile coordinate
// using ceiling division per axis. A pixel exactly on a tile boundary maps
// to the tile above it, not the tile it sits inside; renderers depend on
// this boundary behavior, so it must not be changed to floor division.
func (g *Grid) TileFromPixel(p core.Pixel) core.Coord {
	return core.Coord{
		X: int(math.Ceil(p.X / float64(g.tileSize))),
		Y: int(math.Ceil(p.Y / float64(g.tileSize))),
	}
}

// TileAt returns the tile at c. Out-of-bounds access is a programmer error
// and is always surfaced, never clamped.
func (g *Grid) TileAt(c core.Coord) (*core.Tile, error) {
	if !g.InBounds(c) {
		return nil, &core.OutOfBoundsError{Coord: c, Width: g.width, Height: g.height}
	}
	return &g.tiles[c.Y][c.X], nil
}

// AddressOf returns the address of the tile at c truncated at the given
// level. Empty intermediate fields still produce their segment.
func (g *Grid) AddressOf(c core.Coord, level core.AddressLevel) (core.Address, error) {
	t, err := g.TileAt(c)
	if err != nil {
		return "", err
	}
	return t.Addr(level), nil
}

// TilesNear returns all coordinates of the axis-aligned square of the given
// radius around center, clipped to the grid bounds (never wrapped). The
// center itself is included whenever it is in bounds. Coordinates are
// emitted row-major for determinism.
func (g *Grid) TilesNear(center core.Coord, radius int) []core.Coord {
	if radius < 0 {
		radius = 0
	}
	xMin, xMax := max(0, center.X-radius), min(g.width-1, center.X+radius)
	yMin, yMax := max(0, center.Y-radius), min(g.height-1, center.Y+radius)

	var out []core.Coord
	for y := yMin; y <= yMax; y++ {
		for x := xMin; x <= xMax; x++ {
			out = append(out, core.Coord{X: x, Y: y})
		}
	}
	return out
}

// TilesForAddress returns the indexed coordinates carrying the address, in
// sorted order. An address that was never indexed yields an empty slice.
func (g *Grid) TilesForAddress(a core.Address) []core.Coord {
	set := g.index[a]
	out := make([]core.Coord, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

var _ core.WorldReader = (*Grid)(nil)
