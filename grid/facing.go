package grid

import (
	"fmt"
	"strings"
)

// Facing is the direction a pawn looks at.
type Facing int

const (
	Right Facing = iota
	Up
	Left
	Down
)

var facingNames = [...]string{"right", "up", "left", "down"}

func (f Facing) String() string {
	if f < Right || f > Down {
		return fmt.Sprintf("facing(%d)", int(f))
	}
	return facingNames[f]
}

// ParseFacing accepts the lower-case facing names. The empty string is Right.
func ParseFacing(s string) (Facing, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Right, nil
	}
	for i, name := range facingNames {
		if name == s {
			return Facing(i), nil
		}
	}
	return Right, fmt.Errorf("grid: unknown facing %q", s)
}

// Delta is the unit step for f.
func (f Facing) Delta() Point {
	switch f {
	case Up:
		return Point{Y: 1}
	case Left:
		return Point{X: -1}
	case Down:
		return Point{Y: -1}
	default:
		return Point{X: 1}
	}
}

func (f Facing) Reverse() Facing {
	return (f + 2) % 4
}

// Axis returns the axis f moves along.
func (f Facing) Axis() Axis {
	if f == Up || f == Down {
		return Column
	}
	return Row
}

// Toward returns the facing of a single orthogonal step from p to q, picking
// the axis with the larger distance first and x on ties.
func Toward(p, q Point) (Facing, bool) {
	dx, dy := q.X-p.X, q.Y-p.Y
	if dx == 0 && dy == 0 {
		return Right, false
	}
	if abs(dx) >= abs(dy) {
		if dx > 0 {
			return Right, true
		}
		return Left, true
	}
	if dy > 0 {
		return Up, true
	}
	return Down, true
}

// Step moves p one cell along f. A step that would leave b turns the pawn
// around and takes the step in the reversed direction instead; on a line one
// cell long the pawn stays put.
func Step(f Facing, b Bounds, p Point) (Point, Facing) {
	next := p.Add(f.Delta())
	if b.Contains(next) {
		return next, f
	}
	f = f.Reverse()
	next = p.Add(f.Delta())
	if b.Contains(next) {
		return next, f
	}
	return p, f
}

// Advance repeats Step up to dist times. When blocked reports the next cell as
// occupied the pawn turns around and stops.
func Advance(f Facing, b Bounds, p Point, dist int, blocked func(Point) bool) (Point, Facing) {
	for i := 0; i < dist; i++ {
		next, nf := Step(f, b, p)
		if next == p {
			return p, nf
		}
		if blocked != nil && blocked(next) {
			return p, f.Reverse()
		}
		p, f = next, nf
	}
	return p, f
}
