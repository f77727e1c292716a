// Package play runs a level: it owns the board and takes the player, board
// and enemy controllers through their turns one frame at a time.
package play

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ncskier/CapriciousCroissants-sub000/board"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/logging"
	"github.com/ncskier/CapriciousCroissants-sub000/prefabs"
	"github.com/ncskier/CapriciousCroissants-sub000/render"
	"github.com/ncskier/CapriciousCroissants-sub000/turn"
)

var ErrDisposed = errors.New("play: mode disposed")

type Phase int

const (
	PhasePlayer Phase = iota
	PhaseBoard
	PhaseEnemy
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhasePlayer:
		return "player"
	case PhaseBoard:
		return "board"
	case PhaseEnemy:
		return "enemy"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Settings stores the best results per level.
type Settings interface {
	Int(key string) (int, bool)
	SetInt(key string, v int) error
}

func StarsKey(level string) string { return "level." + level + ".stars" }
func MovesKey(level string) string { return "level." + level + ".moves" }

type Options struct {
	Library  *prefabs.Library
	Scene    render.Scene
	Settings Settings
	Log      *zap.Logger
	TileSize float64
	AxisLock float64
}

// Mode plays one level at a time.
type Mode struct {
	opts    Options
	session string
	log     *zap.Logger

	level  *Level
	env    *turn.Env
	player *turn.PlayerController
	board  *turn.BoardController
	enemy  *turn.EnemyController

	phase    Phase
	moves    int
	stars    int
	disposed bool
}

// New loads spec. A level that cannot be built is an error.
func New(spec prefabs.LevelSpec, opts Options) (*Mode, error) {
	if opts.Library == nil {
		opts.Library = prefabs.NewLibrary("")
	}
	if opts.Scene == nil {
		opts.Scene = render.NewTimeline(nil)
	}
	if opts.TileSize <= 0 {
		opts.TileSize = 64
	}
	session := uuid.NewString()
	m := &Mode{
		opts:    opts,
		session: session,
		log:     logging.OrNop(opts.Log).With(zap.String("session", session)),
	}
	if err := m.Reset(spec); err != nil {
		return nil, err
	}
	return m, nil
}

// Reset rebuilds the board from spec and starts over at the player phase.
// On error the current level keeps running.
func (m *Mode) Reset(spec prefabs.LevelSpec) error {
	if m.disposed {
		return ErrDisposed
	}
	level, err := BuildLevel(m.opts.Library, spec)
	if err != nil {
		return err
	}
	if m.env != nil {
		turn.DetachAll(m.env)
	}

	m.level = level
	m.env = &turn.Env{
		Board:     level.Board,
		Scheduler: level.Scheduler,
		Scene:     m.opts.Scene,
		Gate:      render.NewGate(m.opts.Scene),
		Log:       m.log.With(zap.String("level", spec.Name)),
	}
	m.player = turn.NewPlayerController(m.env, m.opts.TileSize, m.opts.AxisLock)
	m.board = turn.NewBoardController(m.env)
	m.enemy = turn.NewEnemyController(m.env)
	m.player.Reset()
	m.board.Reset()
	m.enemy.Reset()
	m.phase = PhasePlayer
	m.moves = 0
	m.stars = 0
	turn.AttachAll(m.env)

	m.env.Log.Info("level loaded",
		zap.Int("width", level.Board.Width()),
		zap.Int("height", level.Board.Height()),
		zap.Int("enemies", len(level.Board.Enemies())),
		zap.Uint64("hash", level.Board.Hash()))
	return nil
}

// Restart replays the current level from its descriptor.
func (m *Mode) Restart() error {
	return m.Reset(m.level.Spec)
}

// Dispose takes the level off the scene. The mode is unusable afterwards.
func (m *Mode) Dispose() {
	if m.disposed {
		return
	}
	if m.env != nil {
		turn.DetachAll(m.env)
	}
	m.disposed = true
	m.env.Log.Debug("disposed")
}

// Update advances animations by dt and then, when nothing interrupting is
// playing, one controller by one step.
func (m *Mode) Update(dt time.Duration, in turn.Input) error {
	if m.disposed {
		return ErrDisposed
	}
	m.opts.Scene.Advance(dt)
	if m.phase == PhaseWon || m.phase == PhaseLost {
		return nil
	}
	if m.Busy() {
		return nil
	}

	var err error
	switch m.phase {
	case PhasePlayer:
		err = m.stepPlayer(in)
	case PhaseBoard:
		err = m.stepBoard()
	case PhaseEnemy:
		err = m.stepEnemy()
	}
	if err != nil {
		m.env.Log.Error("turn failed", zap.Stringer("phase", m.phase), zap.Error(err))
		return fmt.Errorf("%s phase: %w", m.phase, err)
	}
	return nil
}

func (m *Mode) stepPlayer(in turn.Input) error {
	if err := m.player.Update(in); err != nil {
		return err
	}
	if !m.player.IsComplete() {
		return nil
	}
	m.moves++
	s := m.player.LastSlide()
	m.env.Log.Info("slide",
		zap.Stringer("axis", s.Axis), zap.Int("index", s.Index), zap.Int("cells", s.Cells),
		zap.Int("moves", m.moves))
	m.board.Begin()
	m.enter(PhaseBoard)
	return nil
}

func (m *Mode) stepBoard() error {
	if err := m.board.Update(); err != nil {
		return err
	}
	if !m.board.IsComplete() {
		return nil
	}
	if m.level.Board.Win() {
		m.win()
		return nil
	}
	m.enemy.Begin()
	m.enter(PhaseEnemy)
	return nil
}

func (m *Mode) stepEnemy() error {
	if err := m.enemy.Update(); err != nil {
		return err
	}
	if !m.enemy.IsComplete() {
		return nil
	}
	if m.level.Board.Lose() {
		m.enter(PhaseLost)
		m.env.Log.Info("level lost", zap.Int("moves", m.moves))
		return nil
	}
	m.player.Begin()
	m.enter(PhasePlayer)
	return nil
}

func (m *Mode) enter(p Phase) {
	m.env.Log.Debug("phase", zap.Stringer("from", m.phase), zap.Stringer("to", p))
	m.phase = p
}

func (m *Mode) win() {
	m.enter(PhaseWon)
	m.stars = m.level.Spec.Stars.Rate(m.moves)
	for _, a := range m.level.Board.Allies() {
		if a.Alive {
			m.opts.Scene.Activate(a.Visual, render.AnimWin)
		}
	}
	m.env.Log.Info("level won", zap.Int("moves", m.moves), zap.Int("stars", m.stars))
	m.saveBest()
}

// saveBest keeps the most stars and the fewest moves ever reached. Failures
// are logged; they never end the game.
func (m *Mode) saveBest() {
	if m.opts.Settings == nil {
		return
	}
	name := m.level.Spec.Name
	if best, ok := m.opts.Settings.Int(StarsKey(name)); !ok || m.stars > best {
		if err := m.opts.Settings.SetInt(StarsKey(name), m.stars); err != nil {
			m.env.Log.Warn("save stars", zap.Error(err))
		}
	}
	if best, ok := m.opts.Settings.Int(MovesKey(name)); !ok || m.moves < best {
		if err := m.opts.Settings.SetInt(MovesKey(name), m.moves); err != nil {
			m.env.Log.Warn("save moves", zap.Error(err))
		}
	}
}

// Busy reports whether an interrupting animation holds the turn: one
// registered with the gate, or one of an enemy's own interrupting keys.
func (m *Mode) Busy() bool {
	if m.env.Gate.Blocked() {
		return true
	}
	w := m.level.World
	for _, e := range m.level.Board.Enemies() {
		idle, err := ecs.Get(w, e, component.IdleComponent.Kind())
		if err != nil {
			continue
		}
		for _, key := range idle.Interrupting {
			if m.opts.Scene.IsActive(idle.Visual, key) {
				return true
			}
		}
	}
	return false
}

func (m *Mode) Phase() Phase { return m.phase }
func (m *Mode) Moves() int   { return m.moves }

// Stars returns the rating of a won level, 0 before that.
func (m *Mode) Stars() int { return m.stars }

func (m *Mode) Session() string          { return m.session }
func (m *Mode) Level() prefabs.LevelSpec { return m.level.Spec }
func (m *Mode) Board() *board.Board      { return m.level.Board }
func (m *Mode) Drag() (turn.Drag, bool)  { return m.player.Drag() }
func (m *Mode) Scene() render.Scene      { return m.opts.Scene }

// Best returns the stored best stars and moves of the current level.
func (m *Mode) Best() (stars, moves int, ok bool) {
	if m.opts.Settings == nil {
		return 0, 0, false
	}
	stars, ok = m.opts.Settings.Int(StarsKey(m.level.Spec.Name))
	moves, _ = m.opts.Settings.Int(MovesKey(m.level.Spec.Name))
	return stars, moves, ok
}
