package turn

import "github.com/jakecoffman/cp"

// MoveEvent is the phase of a pointer gesture.
type MoveEvent int

const (
	MoveNone MoveEvent = iota
	MoveStart
	MoveMoving
	MoveEnd
)

func (m MoveEvent) String() string {
	switch m {
	case MoveStart:
		return "start"
	case MoveMoving:
		return "moving"
	case MoveEnd:
		return "end"
	default:
		return "none"
	}
}

// Input is the pointer state polled once per frame. Position is in board
// pixels with the origin at the bottom-left corner and y growing upwards;
// Offset is the displacement since the gesture started.
type Input struct {
	Event    MoveEvent
	Position cp.Vector
	Offset   cp.Vector
}
