// Package memory provides the reference implementations of the three agent
// memory stores: Scratch (tick-scoped working state), SpatialTree (the tree
// of known places) and AssociativeStream (the long-term event/thought/chat
// stream), plus an optional SQLite mirror of placed world events for replay
// and ad-hoc querying.
//
// Each store loads from and saves to its own file or folder inside an
// agent's snapshot directory. Saves are independent per store; there is no
// cross-store atomicity.
package memory
