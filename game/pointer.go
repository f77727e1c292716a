package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/ncskier/CapriciousCroissants-sub000/grid"
	"github.com/ncskier/CapriciousCroissants-sub000/turn"
)

// layout places the board on screen. Board space has its origin at the
// bottom-left corner of cell (0,0) with y growing upwards.
type layout struct {
	originX, originY float64 // top-left corner of the board on screen
	tile             float64
	width, height    int
}

func newLayout(screenW, screenH int, tile float64, b grid.Bounds) layout {
	w := float64(b.Width) * tile
	h := float64(b.Height) * tile
	return layout{
		originX: (float64(screenW) - w) / 2,
		originY: (float64(screenH) - h) / 2,
		tile:    tile,
		width:   b.Width,
		height:  b.Height,
	}
}

func (l layout) toBoard(x, y int) cp.Vector {
	return cp.Vector{
		X: float64(x) - l.originX,
		Y: l.originY + float64(l.height)*l.tile - float64(y),
	}
}

// cell returns the screen position of the top-left corner of p.
func (l layout) cell(p grid.Point) (float64, float64) {
	return l.originX + float64(p.X)*l.tile, l.originY + float64(l.height-1-p.Y)*l.tile
}

// gesture turns pointer state into the three-phase move events the player
// controller expects. Only one pointer is followed at a time.
type gesture struct {
	active  bool
	byTouch bool
	touch   ebiten.TouchID
	start   cp.Vector
}

func (g *gesture) step(pressed, down, released bool, pos cp.Vector) turn.Input {
	switch {
	case pressed && !g.active:
		g.active = true
		g.start = pos
		return turn.Input{Event: turn.MoveStart, Position: pos}
	case released && g.active:
		g.active = false
		return turn.Input{Event: turn.MoveEnd, Position: pos, Offset: pos.Sub(g.start)}
	case down && g.active:
		return turn.Input{Event: turn.MoveMoving, Position: pos, Offset: pos.Sub(g.start)}
	}
	return turn.Input{}
}

func (g *gesture) cancel() {
	*g = gesture{}
}

// poll reads this frame's mouse and touch state.
func (g *gesture) poll(l layout) turn.Input {
	if g.active && g.byTouch {
		if inpututil.IsTouchJustReleased(g.touch) {
			x, y := inpututil.TouchPositionInPreviousTick(g.touch)
			return g.step(false, false, true, l.toBoard(x, y))
		}
		x, y := ebiten.TouchPosition(g.touch)
		return g.step(false, true, false, l.toBoard(x, y))
	}
	if !g.active {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			g.byTouch = true
			g.touch = ids[0]
			x, y := ebiten.TouchPosition(ids[0])
			return g.step(true, false, false, l.toBoard(x, y))
		}
		g.byTouch = false
	}
	x, y := ebiten.CursorPosition()
	return g.step(
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		l.toBoard(x, y),
	)
}
