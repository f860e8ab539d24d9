package grid

import "fmt"

// Direction is a player move. The numeric codes are part of the saved
// state and input contracts: 0=up, 1=right, 2=down, 3=left.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the four moves in code order.
var Directions = [4]Direction{Up, Right, Down, Left}

// Vector is a unit step on the board.
type Vector struct {
	X, Y int
}

var vectors = [4]Vector{
	Up:    {X: 0, Y: -1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

// Vector returns the unit step for d.
func (d Direction) Vector() (Vector, error) {
	if !d.Valid() {
		return Vector{}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return vectors[d], nil
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts a name ("up", "right", "down", "left") to a
// Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
