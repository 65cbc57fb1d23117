package core

import "fmt"

// Position is a cell on the grid: X is the column, Y is the row
type Position struct {
	X, Y int
}

// FromIndex creates a position from a grid index using row-major ordering
func FromIndex(idx, width int) Position {
	return Position{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the position is within the given bounds
func (p Position) IsValid(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// ToIndex converts the position to a grid index using row-major ordering
func (p Position) ToIndex(width int) int {
	return p.Y*width + p.X
}

// DistanceTo calculates the Manhattan distance to another position
func (p Position) DistanceTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// IsAdjacentTo checks if this position is orthogonally adjacent to another
func (p Position) IsAdjacentTo(other Position) bool {
	return p.DistanceTo(other) == 1
}

// Neighbors returns the four orthogonal neighbors in reading order:
// up, left, right, down.
func (p Position) Neighbors() [4]Position {
	var out [4]Position
	for i, d := range readingDirections {
		out[i] = p.Move(d)
	}
	return out
}

// CompareReading orders positions by row, then column.
// It returns -1, 0 or +1 like cmp.Compare.
func (p Position) CompareReading(other Position) int {
	switch {
	case p.Y < other.Y:
		return -1
	case p.Y > other.Y:
		return 1
	case p.X < other.X:
		return -1
	case p.X > other.X:
		return 1
	default:
		return 0
	}
}

// ReadingLess reports whether p comes before other in reading order
func (p Position) ReadingLess(other Position) bool {
	return p.CompareReading(other) < 0
}

// Add returns a new position that is the sum of this position and another
func (p Position) Add(other Position) Position {
	return Position{
		X: p.X + other.X,
		Y: p.Y + other.Y,
	}
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is a single orthogonal step
type Direction int

// Declared in reading order
const (
	North Direction = iota
	West
	East
	South
)

var readingDirections = [4]Direction{North, West, East, South}

// DirectionVectors provides position offsets for each direction
var DirectionVectors = map[Direction]Position{
	North: {X: 0, Y: -1},
	West:  {X: -1, Y: 0},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: 1},
}

// Move returns a new position moved one step in the given direction
func (p Position) Move(direction Direction) Position {
	if offset, ok := DirectionVectors[direction]; ok {
		return p.Add(offset)
	}
	return p
}

// DirectionTo returns the direction from this position to an adjacent one.
// Returns -1 if the positions are not adjacent.
func (p Position) DirectionTo(other Position) Direction {
	if !p.IsAdjacentTo(other) {
		return -1
	}

	dx := other.X - p.X
	dy := other.Y - p.Y

	switch {
	case dy == -1:
		return North
	case dx == -1:
		return West
	case dx == 1:
		return East
	case dy == 1:
		return South
	default:
		return -1
	}
}

// String returns the lowercase name of the direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case West:
		return "west"
	case East:
		return "east"
	case South:
		return "south"
	default:
		return "none"
	}
}
