package core

import "fmt"

// Coord is a discrete tile coordinate on the world grid. X grows to the
// right, Y grows downward, both zero-based.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns the coordinate in "(x,y)" form.
func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Manhattan returns the L1 distance between two coordinates.
func (c Coord) Manhattan(o Coord) int {
	dx := c.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := c.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Pixel is a continuous pixel-space position as produced by a renderer or
// movement interpolation. Conversion to a Coord is owned by the world grid
// since it depends on the configured tile size.
type Pixel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
