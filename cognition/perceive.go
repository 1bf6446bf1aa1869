package cognition

import (
	"context"
	"sort"
	"strings"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/memory"
)

// Poignancy assigned to perceived events. Idle surroundings barely
// register; anything actually happening is worth remembering.
const (
	poignancyIdle  = 1
	poignancyEvent = 4
)

// Perceiver scans the tiles around the agent, grows spatial memory with the
// places it sees, and returns the nearest non-self events up to the agent's
// attention bandwidth. Novel events (not among the last retention stored
// ones) are appended to the associative stream.
type Perceiver struct {
	name    string
	scratch *memory.Scratch
	spatial *memory.SpatialTree
	stream  *memory.AssociativeStream
}

// Perceive implements core.Perceiver.
func (p *Perceiver) Perceive(ctx context.Context, world core.WorldReader) ([]core.PerceivedEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	curr := p.scratch.CurrentTile()
	nearby := world.TilesNear(curr, p.scratch.VisionRadius)

	var candidates []core.PerceivedEvent
	seen := make(map[core.WorldEvent]struct{})

	for _, c := range nearby {
		t, err := world.TileAt(c)
		if err != nil {
			return nil, err
		}

		// Remember the layout regardless of events.
		if t.Arena != "" {
			p.spatial.AddAddress(t.Addr(core.LevelArena))
		}
		if t.GameObject != "" {
			p.spatial.AddAddress(t.Addr(core.LevelObject))
		}

		for _, e := range t.EventList() {
			if e.Subject == core.Address(p.name) {
				continue
			}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			candidates = append(candidates, core.PerceivedEvent{
				Event:    e,
				Tile:     c,
				Distance: curr.Manhattan(c),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})
	if len(candidates) > p.scratch.AttBandwidth {
		candidates = candidates[:p.scratch.AttBandwidth]
	}

	p.remember(candidates)

	return candidates, nil
}

// remember appends events the agent has not recently stored.
func (p *Perceiver) remember(perceived []core.PerceivedEvent) {
	recent := make(map[core.WorldEvent]struct{})
	for _, r := range p.stream.Latest("event", p.scratch.Retention) {
		recent[r.Event] = struct{}{}
	}

	for _, pe := range perceived {
		if _, ok := recent[pe.Event]; ok {
			continue
		}
		poignancy := float64(poignancyEvent)
		if pe.Event.IsIdle() {
			poignancy = poignancyIdle
		}
		p.stream.AddRecord(core.MemoryRecord{
			Kind:        "event",
			Event:       pe.Event,
			Description: pe.Event.String(),
			Keywords:    eventKeywords(pe.Event),
			Poignancy:   poignancy,
		})
	}
}

// eventKeywords derives retrieval keywords from an event: the tail segment
// of the subject plus the object, lowercased.
func eventKeywords(e core.WorldEvent) []string {
	var kws []string
	seg := e.Subject.Segments()
	if tail := seg[len(seg)-1]; tail != "" {
		kws = append(kws, strings.ToLower(tail))
	}
	if e.Object != "" {
		kws = append(kws, strings.ToLower(e.Object))
	}
	return kws
}

var _ core.Perceiver = (*Perceiver)(nil)
