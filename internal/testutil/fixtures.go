package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/agentville/world"
)

// TownConfig returns the canonical 3x3 test world: world "Town", sector
// "park" covering every cell, arena "bench" and object "chessboard" only at
// (1,1), spawning location "sp-A" at (0,0), no collisions, tile size 1.
func TownConfig() world.Config {
	return world.Config{
		Name:     "Town",
		Width:    3,
		Height:   3,
		TileSize: 1,
		Layers: world.Layers{
			Collision: []string{"0", "0", "0", "0", "0", "0", "0", "0", "0"},
			Sector:    []string{"1", "1", "1", "1", "1", "1", "1", "1", "1"},
			Arena:     []string{"0", "0", "0", "0", "2", "0", "0", "0", "0"},
			Object:    []string{"0", "0", "0", "0", "3", "0", "0", "0", "0"},
			Spawn:     []string{"4", "0", "0", "0", "0", "0", "0", "0", "0"},
		},
		Legends: world.Legends{
			Sector: map[string]string{"1": "park"},
			Arena:  map[string]string{"2": "bench"},
			Object: map[string]string{"3": "chessboard"},
			Spawn:  map[string]string{"4": "sp-A"},
		},
	}
}

// TownGrid builds the canonical test world, failing the test on error.
func TownGrid(tb testing.TB) *world.Grid {
	tb.Helper()
	g, err := world.New(TownConfig())
	if err != nil {
		tb.Fatalf("build town grid: %v", err)
	}
	return g
}

// WriteSnapshot creates a minimal valid agent snapshot folder under dir
// and returns its path.
func WriteSnapshot(tb testing.TB, dir string) string {
	tb.Helper()

	writeJSON(tb, filepath.Join(dir, "scratch.json"), map[string]any{
		"curr_tile":     map[string]int{"x": 0, "y": 0},
		"vision_radius": 4,
		"att_bandwidth": 3,
		"retention":     5,
	})
	writeJSON(tb, filepath.Join(dir, "spatial_memory.json"), map[string]any{
		"tree": map[string]any{},
	})
	if err := os.MkdirAll(filepath.Join(dir, "associative_memory"), 0o755); err != nil {
		tb.Fatalf("write snapshot: %v", err)
	}
	writeJSON(tb, filepath.Join(dir, "associative_memory", "nodes.json"), []any{})

	return dir
}

func writeJSON(tb testing.TB, path string, v any) {
	tb.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		tb.Fatalf("encode %s: %v", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
}
