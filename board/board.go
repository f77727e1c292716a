// Package board holds the tile grid of a level together with the pawns that
// stand on it, and the bookkeeping the turn controllers drain every frame.
package board

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/grid"
	"github.com/ncskier/CapriciousCroissants-sub000/render"
)

// NullColor marks a cell occupied by an ally pawn: there is no visible tile
// and the cell never takes part in a match.
const NullColor = -1

// MinMatch is the shortest run of equal colours that counts as a match.
const MinMatch = 3

var (
	ErrInvalidConfig = errors.New("board: invalid config")
	ErrOutOfRange    = errors.New("board: line out of range")
	ErrUnstable      = errors.New("board: could not generate a board without matches")
)

// Tile is one cell's content. Tiles are replaced, never recoloured, so a
// pointer identifies one visual for its whole life.
type Tile struct {
	Color  int
	Visual render.Handle
}

func (t *Tile) Null() bool {
	return t.Color == NullColor
}

// Ally is a player pawn. Allies keep their index for the whole level; index 0
// is the leader.
type Ally struct {
	Pos    grid.Point
	Visual render.Handle
	Alive  bool
}

// Projectile is a shot fired during the enemy turn.
type Projectile struct {
	Visual render.Handle
	Sprite string
	From   grid.Point
	To     grid.Point
}

// Config is what a level descriptor says about the board.
type Config struct {
	Width  int
	Height int
	Colors int
	Seed   uint64
	Allies []grid.Point
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Colors < 2 {
		return fmt.Errorf("%w: need at least 2 colors, got %d", ErrInvalidConfig, c.Colors)
	}
	if len(c.Allies) == 0 {
		return fmt.Errorf("%w: no allies", ErrInvalidConfig)
	}
	b := grid.Bounds{Width: c.Width, Height: c.Height}
	seen := map[grid.Point]bool{}
	for i, p := range c.Allies {
		if !b.Contains(p) {
			return fmt.Errorf("%w: ally %d at %v is off the board", ErrInvalidConfig, i, p)
		}
		if seen[p] {
			return fmt.Errorf("%w: two allies at %v", ErrInvalidConfig, p)
		}
		seen[p] = true
	}
	return nil
}

// Board is the grid model. It is owned by the play mode and lent to the
// controllers and systems; nothing in it is safe for concurrent use.
type Board struct {
	bounds  grid.Bounds
	colors  int
	rng     *rand.Rand
	world   *ecs.World
	handles *render.Handles

	// colorLookup is a shuffled bag of colours drawn without replacement.
	colorLookup []int
	bagPos      int

	tiles      []*Tile
	allies     []Ally
	allEnemies []ecs.Entity
	enemies    orderedSet[ecs.Entity]

	addedTiles     orderedSet[*Tile]
	removedTiles   orderedSet[*Tile]
	removedCells   orderedSet[grid.Point]
	removedEnemies orderedSet[ecs.Entity]
	removedAllies  orderedSet[int]
	projectiles    []Projectile

	selected    grid.Point
	hasSelected bool

	win  bool
	lose bool
}

// New builds a board and generates a starting grid without matches. Enemies
// are added afterwards with AddEnemy.
func New(cfg Config, world *ecs.World, handles *render.Handles) (*Board, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if handles == nil {
		handles = &render.Handles{}
	}
	b := &Board{
		bounds:  grid.Bounds{Width: cfg.Width, Height: cfg.Height},
		colors:  cfg.Colors,
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		world:   world,
		handles: handles,
	}
	for _, p := range cfg.Allies {
		b.allies = append(b.allies, Ally{Pos: p, Visual: handles.Next(), Alive: true})
	}
	if err := b.Generate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Generate refills the grid with random colours and resolves matches until
// the board is stable. Tracking sets are cleared afterwards.
func (b *Board) Generate() error {
	b.generateTiles()
	limit := 64 * b.bounds.Cells()
	for i := 0; ; i++ {
		found, err := b.CheckForMatches(false)
		if err != nil {
			return err
		}
		if !found {
			break
		}
		if i >= limit {
			return ErrUnstable
		}
	}
	b.ClearTracking()
	return nil
}

func (b *Board) generateTiles() {
	b.tiles = make([]*Tile, b.bounds.Cells())
	for i := range b.tiles {
		b.tiles[i] = b.newTile(b.randomColor())
	}
	for _, a := range b.allies {
		if a.Alive {
			b.tiles[b.bounds.Index(a.Pos)] = b.newTile(NullColor)
		}
	}
}

func (b *Board) newTile(color int) *Tile {
	return &Tile{Color: color, Visual: b.handles.Next()}
}

// randomColor draws the next colour from the bag, refilling and reshuffling
// it when empty.
func (b *Board) randomColor() int {
	if b.bagPos >= len(b.colorLookup) {
		if len(b.colorLookup) != b.colors {
			b.colorLookup = make([]int, b.colors)
		}
		for i := range b.colorLookup {
			b.colorLookup[i] = i
		}
		b.rng.Shuffle(len(b.colorLookup), func(i, j int) {
			b.colorLookup[i], b.colorLookup[j] = b.colorLookup[j], b.colorLookup[i]
		})
		b.bagPos = 0
	}
	c := b.colorLookup[b.bagPos]
	b.bagPos++
	return c
}

func (b *Board) Bounds() grid.Bounds {
	return b.bounds
}

func (b *Board) Width() int {
	return b.bounds.Width
}

func (b *Board) Height() int {
	return b.bounds.Height
}

func (b *Board) Colors() int {
	return b.colors
}

func (b *Board) World() *ecs.World {
	return b.world
}

func (b *Board) Handles() *render.Handles {
	return b.handles
}

// Tile returns the tile at p, or nil off the board.
func (b *Board) Tile(p grid.Point) *Tile {
	if !b.bounds.Contains(p) {
		return nil
	}
	return b.tiles[b.bounds.Index(p)]
}

// Tiles returns the grid in index order x + y*width.
func (b *Board) Tiles() []*Tile {
	return append([]*Tile(nil), b.tiles...)
}

// SetColors overwrites the colours of the grid, row by row from the bottom.
// It is meant for building fixed positions; tracking sets are untouched.
func (b *Board) SetColors(colors []int) error {
	if len(colors) != len(b.tiles) {
		return fmt.Errorf("%w: %d colors for %d cells", ErrInvalidConfig, len(colors), len(b.tiles))
	}
	for i, c := range colors {
		b.tiles[i] = b.newTile(c)
	}
	return nil
}

// Select records the cell the player grabbed.
func (b *Board) Select(p grid.Point) {
	b.selected = p
	b.hasSelected = true
}

func (b *Board) ClearSelection() {
	b.hasSelected = false
}

func (b *Board) Selected() (grid.Point, bool) {
	return b.selected, b.hasSelected
}

func (b *Board) Win() bool {
	return b.win
}

func (b *Board) Lose() bool {
	return b.lose
}

// AddedTiles returns the tiles created since the last ClearTracking.
func (b *Board) AddedTiles() []*Tile {
	return b.addedTiles.slice()
}

// RemovedTiles returns the tiles replaced since the last ClearTracking.
func (b *Board) RemovedTiles() []*Tile {
	return b.removedTiles.slice()
}

// WasAdded reports whether t was created since the last ClearTracking.
func (b *Board) WasAdded(t *Tile) bool {
	return b.addedTiles.has(t)
}

// WasRemoved reports whether t was replaced since the last ClearTracking.
func (b *Board) WasRemoved(t *Tile) bool {
	return b.removedTiles.has(t)
}

// RemovedCells returns the cells whose tiles were matched since the last
// ClearTracking.
func (b *Board) RemovedCells() []grid.Point {
	return b.removedCells.slice()
}

func (b *Board) RemovedEnemies() []ecs.Entity {
	return b.removedEnemies.slice()
}

// RemovedAllies returns the indexes of allies removed since the last
// ClearTracking.
func (b *Board) RemovedAllies() []int {
	return b.removedAllies.slice()
}

func (b *Board) Projectiles() []Projectile {
	return append([]Projectile(nil), b.projectiles...)
}

// AddProjectile records a shot and returns its fresh visual handle.
func (b *Board) AddProjectile(sprite string, from, to grid.Point) render.Handle {
	h := b.handles.Next()
	b.projectiles = append(b.projectiles, Projectile{Visual: h, Sprite: sprite, From: from, To: to})
	return h
}

// ClearTracking empties every added/removed set.
func (b *Board) ClearTracking() {
	b.addedTiles.clear()
	b.removedTiles.clear()
	b.removedCells.clear()
	b.removedEnemies.clear()
	b.removedAllies.clear()
	b.projectiles = nil
}
