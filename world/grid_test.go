package world_test

import (
	"errors"
	"testing"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/internal/testutil"
	"github.com/hupe1980/agentville/world"
)

func TestTownScenario(t *testing.T) {
	g := testutil.TownGrid(t)

	addr, err := g.AddressOf(core.Coord{X: 1, Y: 1}, core.LevelArena)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != "Town:park:bench" {
		t.Fatalf("arena address = %q, want Town:park:bench", addr)
	}

	tiles := g.TilesForAddress("Town:park:bench")
	if len(tiles) != 1 || tiles[0] != (core.Coord{X: 1, Y: 1}) {
		t.Fatalf("TilesForAddress = %v, want [(1,1)]", tiles)
	}

	tile, err := g.TileAt(core.Coord{X: 1, Y: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tile.GameObject != "chessboard" {
		t.Fatalf("game object = %q, want chessboard", tile.GameObject)
	}

	events := tile.EventList()
	if len(events) != 1 {
		t.Fatalf("initial event count = %d, want 1", len(events))
	}
	want := core.NewIdleEvent("Town:park:bench:chessboard")
	if events[0] != want {
		t.Fatalf("initial event = %v, want %v", events[0], want)
	}
}

func TestSectorIndexCoversAllTiles(t *testing.T) {
	g := testutil.TownGrid(t)
	tiles := g.TilesForAddress("Town:park")
	if len(tiles) != 9 {
		t.Fatalf("sector index size = %d, want 9", len(tiles))
	}
}

func TestSpawnNamespaceDisjoint(t *testing.T) {
	g := testutil.TownGrid(t)

	tiles := g.TilesForAddress(core.SpawnAddress("sp-A"))
	if len(tiles) != 1 || tiles[0] != (core.Coord{X: 0, Y: 0}) {
		t.Fatalf("spawn index = %v, want [(0,0)]", tiles)
	}
	if got := g.TilesForAddress("sp-A"); len(got) != 0 {
		t.Fatalf("bare spawn name should not be indexed, got %v", got)
	}
}

func TestUnknownAddressEmpty(t *testing.T) {
	g := testutil.TownGrid(t)
	if got := g.TilesForAddress("Town:harbor"); len(got) != 0 {
		t.Fatalf("unknown address should be empty, got %v", got)
	}
}

func TestTileAtOutOfBounds(t *testing.T) {
	g := testutil.TownGrid(t)

	for _, c := range []core.Coord{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 3, Y: 0}, {X: 0, Y: 3}} {
		_, err := g.TileAt(c)
		if !errors.Is(err, core.ErrOutOfBounds) {
			t.Fatalf("TileAt(%s) err = %v, want ErrOutOfBounds", c, err)
		}
		var oob *core.OutOfBoundsError
		if !errors.As(err, &oob) || oob.Coord != c {
			t.Fatalf("TileAt(%s) should carry the coordinate, got %v", c, err)
		}
	}
}

func TestAddressOfEmptySegments(t *testing.T) {
	g := testutil.TownGrid(t)

	// (0,0) has no arena/object mapping; segments stay positional.
	addr, err := g.AddressOf(core.Coord{X: 0, Y: 0}, core.LevelObject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != "Town:park::" {
		t.Fatalf("object address = %q, want Town:park::", addr)
	}
}

func TestTileFromPixelCeiling(t *testing.T) {
	cfg := testutil.TownConfig()
	cfg.TileSize = 32
	g, err := world.New(cfg)
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}

	cases := []struct {
		px   core.Pixel
		want core.Coord
	}{
		{core.Pixel{X: 0, Y: 0}, core.Coord{X: 0, Y: 0}},
		{core.Pixel{X: 1, Y: 1}, core.Coord{X: 1, Y: 1}},
		// Exactly on a boundary maps to the tile above, not inside.
		{core.Pixel{X: 32, Y: 32}, core.Coord{X: 1, Y: 1}},
		{core.Pixel{X: 33, Y: 32}, core.Coord{X: 2, Y: 1}},
		{core.Pixel{X: 64, Y: 95}, core.Coord{X: 2, Y: 3}},
	}
	for _, tc := range cases {
		if got := g.TileFromPixel(tc.px); got != tc.want {
			t.Fatalf("TileFromPixel(%v) = %s, want %s", tc.px, got, tc.want)
		}
	}
}

func TestTileFromPixelMonotonic(t *testing.T) {
	cfg := testutil.TownConfig()
	cfg.TileSize = 32
	g, err := world.New(cfg)
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}

	prev := g.TileFromPixel(core.Pixel{X: 0, Y: 0})
	for px := 1.0; px <= 256; px++ {
		curr := g.TileFromPixel(core.Pixel{X: px, Y: px})
		if curr.X < prev.X || curr.Y < prev.Y {
			t.Fatalf("conversion not monotonic at pixel %v: %s < %s", px, curr, prev)
		}
		prev = curr
	}
}

func TestTilesNear(t *testing.T) {
	g := testutil.TownGrid(t)

	center := core.Coord{X: 1, Y: 1}
	near := g.TilesNear(center, 1)
	if len(near) != 9 {
		t.Fatalf("unclipped square size = %d, want 9", len(near))
	}
	found := false
	for _, c := range near {
		if c == center {
			found = true
		}
	}
	if !found {
		t.Fatalf("TilesNear must include the center")
	}

	// Clipped at the corner: only the in-bounds quadrant remains.
	corner := g.TilesNear(core.Coord{X: 0, Y: 0}, 1)
	if len(corner) != 4 {
		t.Fatalf("clipped square size = %d, want 4", len(corner))
	}
	for _, c := range corner {
		if !g.InBounds(c) {
			t.Fatalf("clipped result contains out-of-bounds coord %s", c)
		}
	}

	// A radius larger than the grid returns the whole grid, never wraps.
	all := g.TilesNear(center, 10)
	if len(all) != 9 {
		t.Fatalf("oversized radius size = %d, want 9", len(all))
	}
}
