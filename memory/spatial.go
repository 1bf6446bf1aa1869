package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hupe1980/agentville/core"
)

// SpatialTree is the agent's map of known places: world → sector → arena →
// game objects. Perception grows it as the agent moves around; the planner
// reads it to ground plans in places the agent actually knows.
type SpatialTree struct {
	Tree map[string]map[string]map[string][]string `json:"tree"`
}

// NewSpatialTree returns an empty tree.
func NewSpatialTree() *SpatialTree {
	return &SpatialTree{Tree: make(map[string]map[string]map[string][]string)}
}

// LoadSpatialTree reads the tree from a JSON file.
func LoadSpatialTree(path string) (*SpatialTree, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spatial memory: %w", err)
	}
	t := NewSpatialTree()
	if err := json.Unmarshal(b, t); err != nil {
		return nil, fmt.Errorf("decode spatial memory: %w", err)
	}
	if t.Tree == nil {
		t.Tree = make(map[string]map[string]map[string][]string)
	}
	return t, nil
}

// Save writes the tree to a JSON file.
func (t *SpatialTree) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save spatial memory: %w", err)
	}
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encode spatial memory: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("save spatial memory: %w", err)
	}
	return nil
}

// AddAddress records the address into the tree, creating missing levels.
// Empty segments end the descent: an address without an arena adds only
// the sector, and so on.
func (t *SpatialTree) AddAddress(a core.Address) {
	seg := a.Segments()
	if len(seg) == 0 || seg[0] == "" {
		return
	}
	world := seg[0]
	if _, ok := t.Tree[world]; !ok {
		t.Tree[world] = make(map[string]map[string][]string)
	}
	if len(seg) < 2 || seg[1] == "" {
		return
	}
	sector := seg[1]
	if _, ok := t.Tree[world][sector]; !ok {
		t.Tree[world][sector] = make(map[string][]string)
	}
	if len(seg) < 3 || seg[2] == "" {
		return
	}
	arena := seg[2]
	objects := t.Tree[world][sector][arena]
	if len(seg) < 4 || seg[3] == "" {
		if objects == nil {
			t.Tree[world][sector][arena] = []string{}
		}
		return
	}
	object := seg[3]
	for _, o := range objects {
		if o == object {
			return
		}
	}
	t.Tree[world][sector][arena] = append(objects, object)
}

// Sectors lists the known sectors of a world, sorted.
func (t *SpatialTree) Sectors(world string) []string {
	return sortedKeys(t.Tree[world])
}

// Arenas lists the known arenas of a sector, sorted.
func (t *SpatialTree) Arenas(world, sector string) []string {
	return sortedKeys(t.Tree[world][sector])
}

// Objects lists the known game objects of an arena, sorted.
func (t *SpatialTree) Objects(world, sector, arena string) []string {
	objects := append([]string(nil), t.Tree[world][sector][arena]...)
	sort.Strings(objects)
	return objects
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ core.SpatialMemory = (*SpatialTree)(nil)
