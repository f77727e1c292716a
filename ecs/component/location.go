package component

import "github.com/ncskier/CapriciousCroissants-sub000/grid"

// Location places a pawn on the board. X == -1 marks a pawn that has left the
// board for good.
type Location struct {
	X           int
	Y           int
	Facing      grid.Facing
	IsMoving    bool
	IsAttacking bool
}

var LocationComponent = NewComponent[Location](LocationID)

func (l Location) Point() grid.Point {
	return grid.Point{X: l.X, Y: l.Y}
}

// OnBoard reports whether the pawn has not been killed.
func (l Location) OnBoard() bool {
	return l.X != -1
}

// MoveTo returns a copy of l at p.
func (l Location) MoveTo(p grid.Point) Location {
	l.X = p.X
	l.Y = p.Y
	return l
}
