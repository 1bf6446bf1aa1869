package agent

import (
	"path/filepath"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/memory"
)

// Snapshot layout: one folder per agent, one sub-resource per store.
const (
	spatialFile    = "spatial_memory.json"
	associativeDir = "associative_memory"
	scratchFile    = "scratch.json"
)

// Stores bundles one agent's three memory stores.
type Stores struct {
	Spatial     core.SpatialMemory
	Associative core.AssociativeMemory
	Scratch     core.WorkingMemory
}

// LoadStores loads all three stores from an agent's snapshot folder. Any
// store that fails to load makes the whole snapshot corrupt; the agent must
// not be constructed from a partial load.
func LoadStores(dir string) (Stores, error) {
	spatial, err := memory.LoadSpatialTree(filepath.Join(dir, spatialFile))
	if err != nil {
		return Stores{}, &core.SnapshotError{Store: "spatial", Path: filepath.Join(dir, spatialFile), Err: err}
	}
	associative, err := memory.LoadAssociative(filepath.Join(dir, associativeDir))
	if err != nil {
		return Stores{}, &core.SnapshotError{Store: "associative", Path: filepath.Join(dir, associativeDir), Err: err}
	}
	scratch, err := memory.LoadScratch(filepath.Join(dir, scratchFile))
	if err != nil {
		return Stores{}, &core.SnapshotError{Store: "scratch", Path: filepath.Join(dir, scratchFile), Err: err}
	}
	return Stores{Spatial: spatial, Associative: associative, Scratch: scratch}, nil
}

// NewStores returns empty in-memory stores for agents bootstrapped without
// a snapshot.
func NewStores() Stores {
	return Stores{
		Spatial:     memory.NewSpatialTree(),
		Associative: memory.NewAssociativeStream(),
		Scratch:     memory.NewScratch(),
	}
}
