package grid

import "fmt"

// Point is a board cell coordinate with the origin at the bottom-left.
type Point struct {
	X int
	Y int
}

// Off is the coordinate used for pawns that have left the board.
var Off = Point{X: -1, Y: -1}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Manhattan returns |dx| + |dy| between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Bounds is the size of a board.
type Bounds struct {
	Width  int
	Height int
}

func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Index converts p to the row-major cell index x + y*width.
func (b Bounds) Index(p Point) int {
	return p.X + p.Y*b.Width
}

// Point converts a cell index back to a coordinate.
func (b Bounds) Point(idx int) Point {
	return Point{X: idx % b.Width, Y: idx / b.Width}
}

// Cells returns Width*Height.
func (b Bounds) Cells() int {
	return b.Width * b.Height
}

// Axis selects a row or a column.
type Axis int

const (
	Row Axis = iota
	Column
)

func (a Axis) String() string {
	if a == Column {
		return "column"
	}
	return "row"
}

// Length returns how many cells a line along a has on a board of size b.
func (b Bounds) Length(a Axis) int {
	if a == Column {
		return b.Height
	}
	return b.Width
}

// Lines returns how many rows or columns a board of size b has.
func (b Bounds) Lines(a Axis) int {
	if a == Column {
		return b.Width
	}
	return b.Height
}

// OnLine reports whether p lies on row/column index of axis a.
func OnLine(a Axis, index int, p Point) bool {
	if a == Column {
		return p.X == index
	}
	return p.Y == index
}

// Wrap normalises v into [0, n).
func Wrap(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Shift moves p cyclically by offset cells along axis a. Positive offsets move
// towards increasing coordinates.
func (b Bounds) Shift(a Axis, p Point, offset int) Point {
	if a == Column {
		p.Y = Wrap(p.Y+offset, b.Height)
		return p
	}
	p.X = Wrap(p.X+offset, b.Width)
	return p
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
