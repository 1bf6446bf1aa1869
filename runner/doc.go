// Package runner provides the simulation driver. A Runner owns the world
// grid and the registered agent orchestrators, advances the simulated clock
// one tick at a time, and applies each agent's action back into the world.
//
// Agents are stepped strictly one after another within a tick. That
// sequencing is what guarantees the world grid's unsynchronized event
// operations ever see at most one writer per tile.
package runner
