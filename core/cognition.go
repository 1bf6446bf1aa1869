package core

import (
	"context"
	"time"
)

// WorldReader is the read-only view of the world grid exposed to cognitive
// modules and the orchestrator. The concrete grid in the world package
// implements it; tests substitute lightweight fakes.
type WorldReader interface {
	// TileFromPixel converts a continuous pixel position to a tile coordinate.
	TileFromPixel(p Pixel) Coord
	// TileAt returns the tile at c or an out-of-bounds error.
	TileAt(c Coord) (*Tile, error)
	// AddressOf returns the address of the tile at c truncated at level.
	AddressOf(c Coord, level AddressLevel) (Address, error)
	// TilesNear returns the in-bounds coordinates of the square of the given
	// radius centered on c.
	TilesNear(c Coord, radius int) []Coord
	// TilesForAddress returns every coordinate indexed under the address.
	TilesForAddress(a Address) []Coord
}

// Peer is the view of another agent a cognitive module may consult during
// planning and execution.
type Peer interface {
	Name() string
	CurrentTile() Coord
}

// ConvoMode selects the conversation style opened on an agent.
type ConvoMode int

const (
	// ConvoAnalysis opens a free-form interview-style session.
	ConvoAnalysis ConvoMode = iota
	// ConvoWhisper plants a directed thought into the agent.
	ConvoWhisper
)

// String returns the mode name.
func (m ConvoMode) String() string {
	switch m {
	case ConvoAnalysis:
		return "analysis"
	case ConvoWhisper:
		return "whisper"
	default:
		return "unknown"
	}
}

// The six cognitive-module contracts. Every call is blocking from the
// orchestrator's point of view; timeout, retry and cancellation policy
// belong to the implementation behind the interface, not to the caller.
// The context is passed through untouched so remote reasoning backends can
// honor deadlines set by the driver.

// Perceiver turns the agent's surroundings into perceived events.
type Perceiver interface {
	Perceive(ctx context.Context, world WorldReader) ([]PerceivedEvent, error)
}

// Retriever surfaces stored memories related to what was just perceived.
type Retriever interface {
	Retrieve(ctx context.Context, perceived []PerceivedEvent) ([]Retrieved, error)
}

// Planner produces the agent's plan for this tick. The day signal tells it
// whether a fresh daily schedule is needed.
type Planner interface {
	Plan(ctx context.Context, world WorldReader, peers map[string]Peer, day DaySignal, retrieved []Retrieved) (Plan, error)
}

// Reflector distills recent memories into higher-level thoughts. It runs
// after every plan and mutates associative memory as a side effect.
type Reflector interface {
	Reflect(ctx context.Context) error
}

// Executor grounds a plan into a concrete action the driver can apply.
type Executor interface {
	Execute(ctx context.Context, world WorldReader, peers map[string]Peer, plan Plan) (Action, error)
}

// ConversationEngine opens an out-of-band conversation with the agent. It
// may mutate associative memory as a side effect.
type ConversationEngine interface {
	Open(ctx context.Context, mode ConvoMode) error
}

// MemoryStore is the persistence contract shared by all memory stores. A
// store serializes itself to the given path (file or directory, store's
// choice); there is no cross-store atomicity.
type MemoryStore interface {
	Save(path string) error
}

// WorkingMemory is the tick-scoped scratch state the orchestrator itself
// reads and writes: the agent's tile and clock. Everything else in the
// store is owned by the planner/executor and opaque here.
type WorkingMemory interface {
	MemoryStore
	CurrentTile() Coord
	SetCurrentTile(c Coord)
	// CurrentTime reports the stored simulation time; ok is false before the
	// first tick ever recorded one.
	CurrentTime() (t time.Time, ok bool)
	SetCurrentTime(t time.Time)
}

// SpatialMemory is the agent's tree of known places.
type SpatialMemory interface {
	MemoryStore
	// AddAddress records that the agent knows about the given address.
	AddAddress(a Address)
	Sectors(world string) []string
	Arenas(world, sector string) []string
	Objects(world, sector, arena string) []string
}

// AssociativeMemory is the agent's long-term event/thought/chat stream.
type AssociativeMemory interface {
	MemoryStore
	// AddRecord appends a record, assigning its ID, and returns it.
	AddRecord(rec MemoryRecord) MemoryRecord
	// ByKeyword returns up to limit records of the given kind indexed under
	// the keyword, newest first.
	ByKeyword(kind, keyword string, limit int) []MemoryRecord
	// Latest returns the n most recent records of the given kind.
	Latest(kind string, n int) []MemoryRecord
	Len() int
}
