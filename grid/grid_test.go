package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	cases := []struct {
		v, n, want int
	}{
		{0, 5, 0},
		{5, 5, 0},
		{6, 5, 1},
		{-1, 5, 4},
		{-11, 5, 4},
		{3, 0, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Wrap(c.v, c.n), "Wrap(%d,%d)", c.v, c.n)
	}
}

func TestShiftRoundTrip(t *testing.T) {
	b := Bounds{Width: 4, Height: 3}
	for _, axis := range []Axis{Row, Column} {
		for offset := -7; offset <= 7; offset++ {
			for idx := 0; idx < b.Cells(); idx++ {
				p := b.Point(idx)
				got := b.Shift(axis, b.Shift(axis, p, offset), -offset)
				require.Equal(t, p, got, "axis=%v offset=%d", axis, offset)
			}
		}
	}
}

func TestStep(t *testing.T) {
	b := Bounds{Width: 3, Height: 3}
	cases := []struct {
		name       string
		facing     Facing
		from       Point
		want       Point
		wantFacing Facing
	}{
		{"forward", Right, Point{0, 1}, Point{1, 1}, Right},
		{"bounce_right_wall", Right, Point{2, 1}, Point{1, 1}, Left},
		{"bounce_floor", Down, Point{1, 0}, Point{1, 1}, Up},
		{"up", Up, Point{1, 1}, Point{1, 2}, Up},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, f := Step(c.facing, b, c.from)
			assert.Equal(t, c.want, p)
			assert.Equal(t, c.wantFacing, f)
		})
	}

	t.Run("single_cell_line", func(t *testing.T) {
		p, f := Step(Right, Bounds{Width: 1, Height: 3}, Point{0, 1})
		assert.Equal(t, Point{0, 1}, p)
		assert.Equal(t, Left, f)
	})
}

func TestAdvance(t *testing.T) {
	b := Bounds{Width: 5, Height: 1}

	p, f := Advance(Right, b, Point{3, 0}, 3, nil)
	assert.Equal(t, Point{2, 0}, p)
	assert.Equal(t, Left, f)

	blocked := func(q Point) bool { return q == Point{2, 0} }
	p, f = Advance(Right, b, Point{0, 0}, 3, blocked)
	assert.Equal(t, Point{1, 0}, p)
	assert.Equal(t, Left, f)
}

func TestToward(t *testing.T) {
	f, ok := Toward(Point{0, 0}, Point{2, 2})
	require.True(t, ok)
	assert.Equal(t, Right, f)

	f, ok = Toward(Point{0, 0}, Point{1, -3})
	require.True(t, ok)
	assert.Equal(t, Down, f)

	_, ok = Toward(Point{1, 1}, Point{1, 1})
	assert.False(t, ok)
}

func TestParseFacing(t *testing.T) {
	f, err := ParseFacing("Left")
	require.NoError(t, err)
	assert.Equal(t, Left, f)

	_, err = ParseFacing("sideways")
	assert.Error(t, err)
}
