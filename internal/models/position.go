package models

// Position is a point in scene space. Positions are value types: moving an
// object produces a new Position, the coordinates of an existing one are never
// mutated in place.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewPosition creates a position from its three coordinates.
func NewPosition(x, y, z float64) Position {
	return Position{X: x, Y: y, Z: z}
}

// ZeroPosition returns the scene origin.
func ZeroPosition() Position {
	return Position{}
}

// Array returns the coordinates in x, y, z order.
func (p Position) Array() [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}
