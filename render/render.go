// Package render is the boundary between the game kernel and whatever draws
// it. The kernel only attaches, moves and detaches sprites and starts named
// animations on them; it polls IsActive to learn when an animation is over.
package render

import (
	"time"

	"github.com/ncskier/CapriciousCroissants-sub000/grid"
)

// Handle is an opaque reference to a visual. Handles are allocated by the
// kernel and never reused within a level.
type Handle uint64

const NoHandle Handle = 0

// Kind tells the scene what a sprite stands for.
type Kind int

const (
	KindTile Kind = iota
	KindAlly
	KindEnemy
	KindProjectile
)

func (k Kind) String() string {
	switch k {
	case KindTile:
		return "tile"
	case KindAlly:
		return "ally"
	case KindEnemy:
		return "enemy"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// Sprite describes a visual when it is attached.
type Sprite struct {
	Kind  Kind
	Name  string
	Color int
	Pos   grid.Point
}

// Animation keys shared by the controllers.
const (
	AnimAppear = "appear"
	AnimRemove = "remove"
	AnimSlide  = "slide"
	AnimFade   = "fade"
	AnimFire   = "fire"
	AnimWin    = "win"
)

// Scene is the render collaborator.
type Scene interface {
	Attach(h Handle, s Sprite)
	Detach(h Handle)
	Move(h Handle, to grid.Point)
	Activate(h Handle, key string)
	IsActive(h Handle, key string) bool
	Advance(dt time.Duration)
}

// Handles hands out fresh handles.
type Handles struct {
	next Handle
}

func (a *Handles) Next() Handle {
	a.next++
	return a.next
}
