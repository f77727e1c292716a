package game

import (
	"hash/fnv"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/ncskier/CapriciousCroissants-sub000/grid"
	"github.com/ncskier/CapriciousCroissants-sub000/render"
	"github.com/ncskier/CapriciousCroissants-sub000/turn"
)

var tilePalette = []color.RGBA{
	colornames.Tomato,
	colornames.Gold,
	colornames.Mediumseagreen,
	colornames.Dodgerblue,
	colornames.Orchid,
	colornames.Darkorange,
	colornames.Turquoise,
	colornames.Slategray,
}

var enemyPalette = []color.RGBA{
	colornames.Darkred,
	colornames.Indigo,
	colornames.Darkolivegreen,
	colornames.Saddlebrown,
	colornames.Midnightblue,
}

func tileColor(c int) color.RGBA {
	if c < 0 {
		return colornames.Black
	}
	return tilePalette[c%len(tilePalette)]
}

// enemyColor keeps the colour of an enemy sprite stable across runs.
func enemyColor(name string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return enemyPalette[h.Sum32()%uint32(len(enemyPalette))]
}

func fade(c color.RGBA, a float64) color.RGBA {
	a = math.Max(0, math.Min(1, a))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// alpha fades sprites in and out while their appear, remove and fade
// animations run.
func alpha(tl *render.Timeline, h render.Handle) float64 {
	a := 1.0
	for _, key := range tl.Playing(h) {
		switch key {
		case render.AnimAppear:
			a = math.Min(a, tl.Progress(h, key))
		case render.AnimRemove, render.AnimFade:
			a = math.Min(a, 1-tl.Progress(h, key))
		}
	}
	return a
}

// dragged shifts a sprite on the line being dragged, wrapping around the
// board edge.
func (l layout) dragged(x, y float64, p grid.Point, drag turn.Drag) (float64, float64) {
	switch {
	case drag.Axis == grid.Row && p.Y == drag.Index:
		span := float64(l.width) * l.tile
		x = l.originX + math.Mod(math.Mod(x-l.originX+drag.Pixels, span)+span, span)
	case drag.Axis == grid.Column && p.X == drag.Index:
		span := float64(l.height) * l.tile
		y = l.originY + math.Mod(math.Mod(y-l.originY-drag.Pixels, span)+span, span)
	}
	return x, y
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	l := g.layout
	vector.FillRect(screen, float32(l.originX), float32(l.originY),
		float32(float64(l.width)*l.tile), float32(float64(l.height)*l.tile), colornames.Darkslategray, false)

	drag, dragging := g.mode.Drag()
	inset := float32(l.tile * 0.06)
	size := float32(l.tile)
	for _, h := range g.timeline.Handles() {
		s, ok := g.timeline.Sprite(h)
		if !ok {
			continue
		}
		x, y := l.cell(s.Pos)
		if dragging && s.Kind != render.KindProjectile {
			x, y = l.dragged(x, y, s.Pos, drag)
		}
		a := alpha(g.timeline, h)
		fx, fy := float32(x), float32(y)
		cx, cy := fx+size/2, fy+size/2

		switch s.Kind {
		case render.KindTile:
			vector.FillRect(screen, fx+inset, fy+inset, size-2*inset, size-2*inset, fade(tileColor(s.Color), a), false)
		case render.KindAlly:
			vector.FillCircle(screen, cx, cy, size*0.32, fade(colornames.Ivory, a), true)
			if s.Name == "leader" {
				vector.StrokeCircle(screen, cx, cy, size*0.36, 3, fade(colornames.Gold, a), true)
			}
		case render.KindEnemy:
			vector.FillCircle(screen, cx, cy, size*0.28, fade(enemyColor(s.Name), a), true)
			vector.StrokeCircle(screen, cx, cy, size*0.28, 2, fade(colornames.Black, a), true)
		case render.KindProjectile:
			vector.FillCircle(screen, cx, cy, size*0.1, fade(colornames.Whitesmoke, a), true)
		}
	}
}
