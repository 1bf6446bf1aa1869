// Package world implements the simulation's spatial model: a width×height
// grid of semantically addressed tiles built once from a configuration
// bundle, a reverse index from addresses to tile coordinates, and the
// per-tile event ledger that is the grid's only runtime-mutable state.
//
// The grid performs no internal locking. Reads may run concurrently, but
// the driver must serialize event mutation so that at most one writer
// touches a tile at a time.
package world
