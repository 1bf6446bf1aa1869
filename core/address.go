package core

import "strings"

// Address is a hierarchical, colon-delimited path identifying a location or
// entity at up to four levels: "world:sector:arena:object". Trailing levels
// may be empty segments when a tile carries no mapping at that depth.
type Address string

// AddressLevel selects the truncation depth of an address.
type AddressLevel int

const (
	// LevelWorld truncates an address to the world segment only.
	LevelWorld AddressLevel = iota
	// LevelSector truncates an address to world:sector.
	LevelSector
	// LevelArena truncates an address to world:sector:arena.
	LevelArena
	// LevelObject keeps the full world:sector:arena:object path.
	LevelObject
)

// String returns the level name used in logs and errors.
func (l AddressLevel) String() string {
	switch l {
	case LevelWorld:
		return "world"
	case LevelSector:
		return "sector"
	case LevelArena:
		return "arena"
	case LevelObject:
		return "object"
	default:
		return "unknown"
	}
}

// JoinAddress builds an address from its segments. Empty segments are kept
// in place so the colon structure stays positional.
func JoinAddress(segments ...string) Address {
	return Address(strings.Join(segments, ":"))
}

// Segments splits the address back into its colon-delimited parts.
func (a Address) Segments() []string { return strings.Split(string(a), ":") }

// spawnPrefix keys spawn-location addresses into a namespace disjoint from
// normal world addresses. The angle brackets cannot appear in layer legends.
const spawnPrefix = "<spawn_loc>"

// SpawnAddress returns the reverse-index key for a named spawning location.
func SpawnAddress(name string) Address { return Address(spawnPrefix + name) }

// IsSpawn reports whether the address lives in the spawn-location namespace.
func (a Address) IsSpawn() bool { return strings.HasPrefix(string(a), spawnPrefix) }
