package world

import "github.com/hupe1980/agentville/core"

// Event mutation operates on a single tile's event set with set semantics:
// membership is full structural equality over all four event fields. None
// of these methods lock; the driver guarantees at most one writer per tile.

// AddEvent inserts the event into the tile's set. Inserting an event that
// is already present is a no-op.
func (g *Grid) AddEvent(e core.WorldEvent, c core.Coord) error {
	t, err := g.TileAt(c)
	if err != nil {
		return err
	}
	t.Events[e] = struct{}{}
	return nil
}

// RemoveEvent removes the event from the tile's set. Removing an absent
// event is a no-op.
func (g *Grid) RemoveEvent(e core.WorldEvent, c core.Coord) error {
	t, err := g.TileAt(c)
	if err != nil {
		return err
	}
	delete(t.Events, e)
	return nil
}

// IdleEvent replaces a stored event structurally equal to e with its idle
// variant. Absent events are left alone, and idling an already-idle match
// does not insert a duplicate.
func (g *Grid) IdleEvent(e core.WorldEvent, c core.Coord) error {
	t, err := g.TileAt(c)
	if err != nil {
		return err
	}
	if _, ok := t.Events[e]; !ok {
		return nil
	}
	delete(t.Events, e)
	t.Events[e.Idle()] = struct{}{}
	return nil
}

// RemoveSubjectEvents removes every event on the tile whose subject equals
// subject, regardless of the other fields. Events of other subjects are
// untouched.
func (g *Grid) RemoveSubjectEvents(subject core.Address, c core.Coord) error {
	t, err := g.TileAt(c)
	if err != nil {
		return err
	}
	for e := range t.Events {
		if e.Subject == subject {
			delete(t.Events, e)
		}
	}
	return nil
}
