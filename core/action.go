package core

// PerceivedEvent is a world event seen by an agent during perception,
// annotated with where it was seen and how far away that tile is.
type PerceivedEvent struct {
	Event    WorldEvent `json:"event"`
	Tile     Coord      `json:"tile"`
	Distance int        `json:"distance"`
}

// MemoryRecord is one stored memory surfaced by retrieval. Kind separates
// observed events from generated thoughts and chats.
type MemoryRecord struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"` // "event", "thought" or "chat"
	Event       WorldEvent `json:"event"`
	Description string     `json:"description"`
	Keywords    []string   `json:"keywords,omitempty"`
	Poignancy   float64    `json:"poignancy"`
}

// Retrieved groups the memories related to one focal perceived event.
type Retrieved struct {
	Focal    PerceivedEvent `json:"focal"`
	Events   []MemoryRecord `json:"events"`
	Thoughts []MemoryRecord `json:"thoughts"`
}

// Plan is the planner's output for one tick: the address the agent intends
// to act at, with a human-readable description and its emoji shorthand.
type Plan struct {
	Address     Address `json:"address"`
	Description string  `json:"description"`
	Emoji       string  `json:"emoji"`
	// DurationMin is how long the planned activity is expected to last.
	DurationMin int `json:"duration_min"`
}

// Action is the concrete outcome of a tick, returned to the driver. The
// orchestrator never mutates the world itself: the driver is expected to
// place Event at the agent's tile (and clear the previous one) when it
// applies the step.
type Action struct {
	// Target is the tile the agent should move to (or stay on) this step.
	Target Coord `json:"target"`
	// Address is the resolved location the action takes place at.
	Address Address `json:"address"`
	// Event describes what the agent is now doing, subject = agent name.
	Event WorldEvent `json:"event"`
	// Emoji is the pronunciatio shown by renderers.
	Emoji string `json:"emoji"`
	// Description restates the activity in prose.
	Description string `json:"description"`
	// Utterance carries speech when the action is conversational.
	Utterance string `json:"utterance,omitempty"`
}
