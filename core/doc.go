// Package core defines the shared contracts of the simulation: grid
// coordinates and hierarchical addresses, world events, the per-tick day
// signal, the action returned by an agent turn, the cognitive-module and
// memory-store interfaces, and the error taxonomy.
//
// Interfaces live here so that the world, agent, memory and cognition
// packages can depend on a single stable package instead of on each other.
// Implementations are intentionally kept in sibling packages.
package core
