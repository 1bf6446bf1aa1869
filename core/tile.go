package core

import "sort"

// Tile is one grid cell. The five address fields and the collision flag are
// fixed at load time; only the event set mutates afterwards, and only
// through the world grid's event operations. Events is keyed by the full
// event value so membership, idling and removal follow structural equality.
type Tile struct {
	World            string `json:"world"`
	Sector           string `json:"sector"`
	Arena            string `json:"arena"`
	GameObject       string `json:"game_object"`
	SpawningLocation string `json:"spawning_location"`
	Collision        bool   `json:"collision"`

	Events map[WorldEvent]struct{} `json:"-"`
}

// HasEvent reports set membership by structural equality.
func (t *Tile) HasEvent(e WorldEvent) bool {
	_, ok := t.Events[e]
	return ok
}

// EventList returns the tile's events as a sorted slice. The order is
// stable (subject, then predicate/object/description) so callers iterating
// events behave deterministically across runs.
func (t *Tile) EventList() []WorldEvent {
	out := make([]WorldEvent, 0, len(t.Events))
	for e := range t.Events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Predicate != b.Predicate {
			return a.Predicate < b.Predicate
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Description < b.Description
	})
	return out
}

// Addr returns the tile's address truncated at the requested level.
func (t *Tile) Addr(level AddressLevel) Address {
	switch level {
	case LevelWorld:
		return JoinAddress(t.World)
	case LevelSector:
		return JoinAddress(t.World, t.Sector)
	case LevelArena:
		return JoinAddress(t.World, t.Sector, t.Arena)
	default:
		return JoinAddress(t.World, t.Sector, t.Arena, t.GameObject)
	}
}
