package play

import (
	"fmt"

	"github.com/ncskier/CapriciousCroissants-sub000/board"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/entity"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/system"
	"github.com/ncskier/CapriciousCroissants-sub000/grid"
	"github.com/ncskier/CapriciousCroissants-sub000/prefabs"
	"github.com/ncskier/CapriciousCroissants-sub000/render"
)

// Level is everything derived from a level descriptor.
type Level struct {
	Spec      prefabs.LevelSpec
	World     *ecs.World
	Board     *board.Board
	Scheduler *system.Scheduler
	Handles   *render.Handles
}

// BuildLevel derives a fresh board, world and scheduler from spec. The same
// spec always yields the same board.
func BuildLevel(lib *prefabs.Library, spec prefabs.LevelSpec) (*Level, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	w := ecs.NewWorld()
	handles := &render.Handles{}
	allies := make([]grid.Point, 0, len(spec.Allies))
	for _, a := range spec.Allies {
		allies = append(allies, grid.Point{X: a.X, Y: a.Y})
	}
	b, err := board.New(board.Config{
		Width:  spec.Board.Width,
		Height: spec.Board.Height,
		Colors: spec.Board.Colors,
		Seed:   spec.Board.Seed,
		Allies: allies,
	}, w, handles)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", spec.Name, err)
	}

	for i, enemy := range spec.Enemies {
		resolved, err := lib.ResolveEnemy(enemy)
		if err != nil {
			return nil, fmt.Errorf("level %s: enemy %d: %w", spec.Name, i, err)
		}
		e, err := entity.BuildEnemy(w, handles, resolved)
		if err != nil {
			return nil, fmt.Errorf("level %s: enemy %d: %w", spec.Name, i, err)
		}
		if err := b.AddEnemy(e); err != nil {
			return nil, fmt.Errorf("level %s: enemy %d: %w", spec.Name, i, err)
		}
	}

	sched, err := system.NewScheduler(w, lib.LoadScript)
	if err != nil {
		return nil, err
	}
	if err := sched.RegisterAll(); err != nil {
		return nil, err
	}
	return &Level{Spec: spec, World: w, Board: b, Scheduler: sched, Handles: handles}, nil
}
