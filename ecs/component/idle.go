package component

import "github.com/ncskier/CapriciousCroissants-sub000/render"

// Idle carries the visual of a pawn and the animation keys it plays. The
// ECS never looks inside; the keys are handed to the render.Scene.
type Idle struct {
	Visual render.Handle
	Sprite string

	Idle   string
	Move   string
	Attack string
	Death  string

	// Interrupting lists the keys that hold back the turn while they play on
	// Visual. The slice is shared between copies and must not be mutated.
	Interrupting []string
}

var IdleComponent = NewComponent[Idle](IdleID)
