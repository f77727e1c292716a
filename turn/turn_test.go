package turn

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncskier/CapriciousCroissants-sub000/board"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/system"
	"github.com/ncskier/CapriciousCroissants-sub000/grid"
	"github.com/ncskier/CapriciousCroissants-sub000/render"
)

const tileSize = 10.0

type fixture struct {
	t       *testing.T
	env     *Env
	w       *ecs.World
	b       *board.Board
	tl      *render.Timeline
	handles *render.Handles
}

func newFixture(t *testing.T, cfg board.Config) *fixture {
	t.Helper()
	w := ecs.NewWorld()
	handles := &render.Handles{}
	b, err := board.New(cfg, w, handles)
	require.NoError(t, err)
	sched, err := system.NewScheduler(w, nil)
	require.NoError(t, err)
	tl := render.NewTimeline(map[string]time.Duration{
		render.AnimSlide:  100 * time.Millisecond,
		render.AnimRemove: 100 * time.Millisecond,
		render.AnimAppear: 100 * time.Millisecond,
		render.AnimFade:   100 * time.Millisecond,
		render.AnimFire:   100 * time.Millisecond,
		"die":             100 * time.Millisecond,
	})
	env := &Env{Board: b, Scheduler: sched, Scene: tl, Gate: render.NewGate(tl)}
	return &fixture{t: t, env: env, w: w, b: b, tl: tl, handles: handles}
}

func (f *fixture) enemy(p grid.Point, facing grid.Facing, add func(e ecs.Entity)) ecs.Entity {
	f.t.Helper()
	e := ecs.CreateEntity(f.w)
	require.NoError(f.t, ecs.Add(f.w, e, component.LocationComponent.Kind(), component.Location{X: p.X, Y: p.Y, Facing: facing}))
	require.NoError(f.t, ecs.Add(f.w, e, component.EnemyTagComponent.Kind(), component.EnemyTag{}))
	require.NoError(f.t, ecs.Add(f.w, e, component.IdleComponent.Kind(), component.Idle{
		Visual: f.handles.Next(),
		Sprite: "enemy",
		Move:   render.AnimSlide,
		Attack: render.AnimFire,
		Death:  "die",
	}))
	if add != nil {
		add(e)
	}
	require.NoError(f.t, f.b.AddEnemy(e))
	_, err := f.env.Scheduler.Register(e)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) idle(e ecs.Entity) component.Idle {
	f.t.Helper()
	idle, err := ecs.Get(f.w, e, component.IdleComponent.Kind())
	require.NoError(f.t, err)
	return idle
}

func at(p grid.Point) Input {
	return Input{Event: MoveStart, Position: cp.Vector{X: (float64(p.X) + 0.5) * tileSize, Y: (float64(p.Y) + 0.5) * tileSize}}
}

func moving(dx, dy float64) Input {
	return Input{Event: MoveMoving, Offset: cp.Vector{X: dx, Y: dy}}
}

func release(dx, dy float64) Input {
	return Input{Event: MoveEnd, Offset: cp.Vector{X: dx, Y: dy}}
}

func (f *fixture) gesture(c *PlayerController, from grid.Point, dx, dy float64) {
	f.t.Helper()
	for _, in := range []Input{at(from), moving(dx, dy), release(dx, dy)} {
		require.NoError(f.t, c.Update(in))
	}
}

func fourByFour(allies ...grid.Point) board.Config {
	return board.Config{Width: 4, Height: 4, Colors: 4, Seed: 3, Allies: allies}
}

func TestPlayerSlideCommits(t *testing.T) {
	f := newFixture(t, fourByFour(grid.Point{}))
	AttachAll(f.env)
	c := NewPlayerController(f.env, tileSize, 3)
	moved := f.b.Tile(grid.Point{X: 1, Y: 2})

	require.NoError(t, c.Update(at(grid.Point{X: 1, Y: 2})))
	_, ok := c.Drag()
	assert.False(t, ok, "axis unknown before the lock distance")

	require.NoError(t, c.Update(moving(12, 1)))
	drag, ok := c.Drag()
	require.True(t, ok)
	assert.Equal(t, Drag{Axis: grid.Row, Index: 2, Pixels: 12}, drag)

	require.NoError(t, c.Update(release(12, 1)))
	require.True(t, c.IsComplete())
	assert.Equal(t, Slide{Axis: grid.Row, Index: 2, Cells: 1}, c.LastSlide())
	assert.Same(t, moved, f.b.Tile(grid.Point{X: 2, Y: 2}))

	s, ok := f.tl.Sprite(moved.Visual)
	require.True(t, ok)
	assert.Equal(t, grid.Point{X: 2, Y: 2}, s.Pos)
	assert.True(t, f.env.Gate.Blocked(), "slide animations hold the turn")
	_, selected := f.b.Selected()
	assert.False(t, selected)

	require.NoError(t, c.Update(at(grid.Point{})))
	_, selected = f.b.Selected()
	assert.False(t, selected, "a completed controller ignores input until Begin")
}

func TestPlayerColumnSlide(t *testing.T) {
	f := newFixture(t, fourByFour(grid.Point{X: 3, Y: 3}))
	c := NewPlayerController(f.env, tileSize, 3)
	moved := f.b.Tile(grid.Point{X: 1, Y: 0})

	f.gesture(c, grid.Point{X: 1, Y: 1}, 2, -10.4)
	require.True(t, c.IsComplete())
	assert.Equal(t, Slide{Axis: grid.Column, Index: 1, Cells: -1}, c.LastSlide())
	assert.Same(t, moved, f.b.Tile(grid.Point{X: 1, Y: 3}))
}

func TestPlayerRejectsNoOpSlides(t *testing.T) {
	cases := []struct {
		name   string
		dx, dy float64
	}{
		{"too_short", 4, 0},
		{"full_wrap", 40, 0},
		{"negative_full_wrap", -40, 1},
		{"no_drag", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, fourByFour(grid.Point{}))
			c := NewPlayerController(f.env, tileSize, 3)
			before := f.b.Tiles()

			f.gesture(c, grid.Point{X: 2, Y: 1}, tc.dx, tc.dy)
			assert.False(t, c.IsComplete())
			assert.Equal(t, before, f.b.Tiles())
			_, selected := f.b.Selected()
			assert.False(t, selected, "input state is cleared")
			_, dragging := c.Drag()
			assert.False(t, dragging)
		})
	}
}

func TestPlayerIgnoresStartOffBoard(t *testing.T) {
	f := newFixture(t, fourByFour(grid.Point{}))
	c := NewPlayerController(f.env, tileSize, 3)
	require.NoError(t, c.Update(Input{Event: MoveStart, Position: cp.Vector{X: -5, Y: 5}}))
	require.NoError(t, c.Update(release(20, 0)))
	assert.False(t, c.IsComplete())
}

func TestRootingForcesZeroOffset(t *testing.T) {
	f := newFixture(t, fourByFour(grid.Point{}))
	f.enemy(grid.Point{X: 3, Y: 2}, grid.Right, func(e ecs.Entity) {
		require.NoError(t, ecs.Add(f.w, e, component.RootingComponent.Kind(), component.Rooting{}))
	})
	c := NewPlayerController(f.env, tileSize, 3)
	before := f.b.Tiles()

	require.NoError(t, c.Update(at(grid.Point{X: 1, Y: 2})))
	require.NoError(t, c.Update(moving(12, 0)))
	drag, ok := c.Drag()
	require.True(t, ok)
	assert.Zero(t, drag.Pixels)
	require.NoError(t, c.Update(release(12, 0)))
	assert.False(t, c.IsComplete())
	assert.Equal(t, before, f.b.Tiles())

	f.gesture(c, grid.Point{X: 1, Y: 2}, 0, 12)
	assert.True(t, c.IsComplete(), "column 1 is free")
}

func TestSnareVetoesSlide(t *testing.T) {
	f := newFixture(t, fourByFour(grid.Point{}))
	f.enemy(grid.Point{X: 2, Y: 2}, grid.Right, func(e ecs.Entity) {
		require.NoError(t, ecs.Add(f.w, e, component.SnareComponent.Kind(), component.Snare{Radius: 1}))
	})
	c := NewPlayerController(f.env, tileSize, 3)

	require.NoError(t, c.Update(at(grid.Point{X: 2, Y: 3})))
	require.NoError(t, c.Update(moving(12, 0)))
	drag, _ := c.Drag()
	assert.Zero(t, drag.Pixels)
	require.NoError(t, c.Update(release(12, 0)))
	assert.False(t, c.IsComplete())

	f.gesture(c, grid.Point{X: 0, Y: 1}, 12, 0)
	assert.True(t, c.IsComplete())
}

func TestPlayerMoveCountsDownDormant(t *testing.T) {
	f := newFixture(t, fourByFour(grid.Point{}))
	AttachAll(f.env)
	e := f.enemy(grid.Point{X: 3, Y: 3}, grid.Right, func(e ecs.Entity) {
		require.NoError(t, ecs.Add(f.w, e, component.DormantComponent.Kind(), component.Dormant{Moves: 2}))
	})
	c := NewPlayerController(f.env, tileSize, 3)

	f.gesture(c, grid.Point{X: 1, Y: 0}, 12, 0)
	require.True(t, c.IsComplete())
	d, err := ecs.Get(f.w, e, component.DormantComponent.Kind())
	require.NoError(t, err)
	assert.Equal(t, 1, d.Moves)

	ally, _ := f.b.Ally(0)
	assert.Equal(t, grid.Point{X: 1}, ally.Pos)
	s, ok := f.tl.Sprite(ally.Visual)
	require.True(t, ok)
	assert.Equal(t, grid.Point{X: 1}, s.Pos)
}

// matchBoard is the 5x5 position with [0 0 0 1 2] on row 0 and no other
// matches.
func matchBoard(t *testing.T) *fixture {
	f := newFixture(t, board.Config{Width: 5, Height: 5, Colors: 4, Seed: 7, Allies: []grid.Point{{X: 4, Y: 4}}})
	colors := make([]int, 25)
	copy(colors, []int{0, 0, 0, 1, 2})
	for y := 1; y < 5; y++ {
		for x := 0; x < 5; x++ {
			colors[x+y*5] = (x + 2*y) % 4
		}
	}
	colors[24] = board.NullColor
	require.NoError(t, f.b.SetColors(colors))
	return f
}

// run steps ctrl until it completes, letting animations finish in between.
func (f *fixture) run(update func() error, complete func() bool) {
	f.t.Helper()
	for i := 0; i < 500 && !complete(); i++ {
		if f.env.Gate.Blocked() {
			f.tl.Advance(50 * time.Millisecond)
			continue
		}
		require.NoError(f.t, update())
	}
	require.True(f.t, complete(), "controller did not complete")
}

func TestBoardControllerResolvesMatchesAndWins(t *testing.T) {
	f := matchBoard(t)
	e := f.enemy(grid.Point{X: 1, Y: 0}, grid.Right, nil)
	AttachAll(f.env)
	matched := []*board.Tile{
		f.b.Tile(grid.Point{X: 0, Y: 0}),
		f.b.Tile(grid.Point{X: 1, Y: 0}),
		f.b.Tile(grid.Point{X: 2, Y: 0}),
	}

	c := NewBoardController(f.env)
	c.Begin()
	require.NoError(t, c.Update())
	assert.Equal(t, []ecs.Entity{e}, f.b.RemovedEnemies())
	require.NoError(t, c.Update())
	assert.True(t, f.b.Win(), "win is checked during REMOVE")
	assert.True(t, f.tl.IsActive(f.idle(e).Visual, "die"))
	assert.True(t, f.tl.IsActive(matched[0].Visual, render.AnimRemove))

	f.run(c.Update, c.IsComplete)
	assert.GreaterOrEqual(t, c.Passes(), 1)
	assert.Empty(t, f.b.FindMatches())
	assert.Empty(t, f.b.AddedTiles())
	assert.Empty(t, f.b.RemovedTiles())

	for _, tile := range matched {
		_, attached := f.tl.Sprite(tile.Visual)
		assert.False(t, attached, "matched tiles are detached")
	}
	_, attached := f.tl.Sprite(f.idle(e).Visual)
	assert.False(t, attached, "dead enemies are detached")
	fresh := f.b.Tile(grid.Point{X: 0, Y: 0})
	s, ok := f.tl.Sprite(fresh.Visual)
	require.True(t, ok)
	assert.Equal(t, render.KindTile, s.Kind)
	assert.Equal(t, fresh.Color, s.Color)
}

func TestBoardControllerWinAfterCheck(t *testing.T) {
	f := newFixture(t, fourByFour(grid.Point{}))
	f.enemy(grid.Off, grid.Right, nil)

	c := NewBoardController(f.env)
	c.Begin()
	require.NoError(t, c.Update())
	assert.True(t, c.IsComplete())
	assert.Zero(t, c.Passes())
	assert.True(t, f.b.Win())
}

func TestBoardControllerNoWinWithLiveEnemy(t *testing.T) {
	f := newFixture(t, fourByFour(grid.Point{}))
	f.enemy(grid.Point{X: 2, Y: 2}, grid.Right, nil)

	c := NewBoardController(f.env)
	c.Begin()
	f.run(c.Update, c.IsComplete)
	assert.False(t, f.b.Win())
}

func TestSplashDamageDuringRemove(t *testing.T) {
	f := matchBoard(t)
	e := f.enemy(grid.Point{X: 1, Y: 1}, grid.Right, func(e ecs.Entity) {
		require.NoError(t, ecs.Add(f.w, e, component.HealthComponent.Kind(), component.Health{Current: 1, Max: 1}))
	})
	AttachAll(f.env)

	c := NewBoardController(f.env)
	c.Begin()
	require.NoError(t, c.Update())
	require.NoError(t, c.Update())
	assert.False(t, f.b.IsLiveEnemy(e))
	assert.True(t, f.tl.IsActive(f.idle(e).Visual, "die"), "damage kills animate too")
	assert.True(t, f.b.Win())
}

func TestEnemyTurnLeaderDeath(t *testing.T) {
	f := newFixture(t, fourByFour(grid.Point{X: 1, Y: 1}, grid.Point{X: 3, Y: 3}))
	e := f.enemy(grid.Point{X: 0, Y: 1}, grid.Right, func(e ecs.Entity) {
		require.NoError(t, ecs.Add(f.w, e, component.DumbMovementComponent.Kind(), component.DumbMovement{Distance: 1}))
		require.NoError(t, ecs.Add(f.w, e, component.MeleeAttackComponent.Kind(), component.MeleeAttack{}))
	})
	AttachAll(f.env)
	leader, _ := f.b.Ally(0)
	visual := f.idle(e).Visual

	c := NewEnemyController(f.env)
	c.Begin()

	require.NoError(t, c.Update()) // MOVE
	s, _ := f.tl.Sprite(visual)
	assert.Equal(t, grid.Point{X: 1, Y: 1}, s.Pos)
	assert.True(t, f.tl.IsActive(visual, render.AnimSlide))
	loc, _ := ecs.Get(f.w, e, component.LocationComponent.Kind())
	assert.False(t, loc.IsMoving, "flags are consumed")

	require.NoError(t, c.Update()) // ATTACK
	assert.True(t, f.b.Lose())
	assert.True(t, f.tl.IsActive(visual, render.AnimFire))

	require.NoError(t, c.Update()) // FADE
	assert.True(t, f.tl.IsActive(leader.Visual, render.AnimFade))

	require.NoError(t, c.Update()) // CHECK
	assert.True(t, c.IsComplete())
	_, attached := f.tl.Sprite(leader.Visual)
	assert.False(t, attached)
	refill := f.b.Tile(grid.Point{X: 1, Y: 1})
	assert.False(t, refill.Null())
	s, ok := f.tl.Sprite(refill.Visual)
	require.True(t, ok, "the freed cell gets a tile")
	assert.Equal(t, grid.Point{X: 1, Y: 1}, s.Pos)
	assert.Empty(t, f.b.RemovedAllies())
}

func TestEnemyTurnProjectile(t *testing.T) {
	f := newFixture(t, fourByFour(grid.Point{X: 0, Y: 0}, grid.Point{X: 3, Y: 2}))
	f.enemy(grid.Point{X: 0, Y: 2}, grid.Up, func(e ecs.Entity) {
		require.NoError(t, ecs.Add(f.w, e, component.RangedOrthoAttackComponent.Kind(),
			component.RangedOrthoAttack{Horizontal: true, Target: -1, Projectile: "arrow"}))
	})
	AttachAll(f.env)

	c := NewEnemyController(f.env)
	c.Begin()
	f.run(func() error {
		err := c.Update()
		if shots := f.b.Projectiles(); len(shots) == 1 {
			s, ok := f.tl.Sprite(shots[0].Visual)
			require.True(t, ok)
			assert.Equal(t, render.KindProjectile, s.Kind)
			assert.Equal(t, "arrow", s.Name)
			assert.Equal(t, grid.Point{X: 3, Y: 2}, s.Pos)
		}
		return err
	}, c.IsComplete)

	assert.False(t, f.b.Lose())
	target, _ := f.b.Ally(1)
	assert.False(t, target.Alive)
	assert.Empty(t, f.b.Projectiles())
	for _, h := range f.tl.Handles() {
		s, _ := f.tl.Sprite(h)
		assert.NotEqual(t, render.KindProjectile, s.Kind, "projectiles are detached at CHECK")
	}
}
