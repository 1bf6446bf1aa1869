package cognition

import (
	"context"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/memory"
)

// Executor grounds a plan into a concrete action: it resolves the plan's
// address through the reverse index, picks the closest walkable coordinate,
// and emits the agent's event for the driver to place. Path interpolation
// between the current tile and the target is left to the driver.
type Executor struct {
	name    string
	scratch *memory.Scratch
}

// Execute implements core.Executor.
func (e *Executor) Execute(
	ctx context.Context,
	world core.WorldReader,
	peers map[string]core.Peer,
	plan core.Plan,
) (core.Action, error) {
	if err := ctx.Err(); err != nil {
		return core.Action{}, err
	}

	curr := e.scratch.CurrentTile()
	target := e.pickTarget(world, curr, plan.Address, peers)

	seg := plan.Address.Segments()
	object := seg[len(seg)-1]

	return core.Action{
		Target:  target,
		Address: plan.Address,
		Event: core.WorldEvent{
			Subject:     core.Address(e.name),
			Predicate:   "at",
			Object:      object,
			Description: plan.Description,
		},
		Emoji:       plan.Emoji,
		Description: plan.Description,
	}, nil
}

// pickTarget chooses the closest indexed, walkable, unoccupied coordinate
// for the address. An unresolvable address keeps the agent in place.
func (e *Executor) pickTarget(world core.WorldReader, curr core.Coord, addr core.Address, peers map[string]core.Peer) core.Coord {
	occupied := make(map[core.Coord]struct{}, len(peers))
	for name, peer := range peers {
		if name == e.name {
			continue
		}
		occupied[peer.CurrentTile()] = struct{}{}
	}

	best := curr
	bestDist := -1
	for _, c := range world.TilesForAddress(addr) {
		if _, taken := occupied[c]; taken {
			continue
		}
		if t, err := world.TileAt(c); err != nil || t.Collision {
			continue
		}
		if d := curr.Manhattan(c); bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

var _ core.Executor = (*Executor)(nil)
