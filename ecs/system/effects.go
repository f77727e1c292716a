package system

import (
	"github.com/ncskier/CapriciousCroissants-sub000/board"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
)

// DormantSystem counts down the player moves a dormant enemy still sleeps
// through.
type DormantSystem struct{}

func NewDormantSystem() *DormantSystem {
	return &DormantSystem{}
}

func (s *DormantSystem) Name() string { return "dormant" }

func (s *DormantSystem) Requires() []component.ComponentID {
	return requires(component.DormantID)
}

func (s *DormantSystem) Tags() ecs.Tag { return OnPlayerMove }

func (s *DormantSystem) UpdateEntity(w *ecs.World, e ecs.Entity, b *board.Board) (bool, error) {
	if !b.IsLiveEnemy(e) {
		return false, nil
	}
	d, err := ecs.Get(w, e, component.DormantComponent.Kind())
	if err != nil || d.Moves <= 0 {
		return false, err
	}
	d.Moves--
	return true, ecs.Add(w, e, component.DormantComponent.Kind(), d)
}

// SnareSystem flags enemies whose snare covers the cell the player grabbed.
// Any flagged enemy vetoes the slide.
type SnareSystem struct{}

func NewSnareSystem() *SnareSystem {
	return &SnareSystem{}
}

func (s *SnareSystem) Name() string { return "snare" }

func (s *SnareSystem) Requires() []component.ComponentID {
	return requires(component.SnareID)
}

func (s *SnareSystem) Tags() ecs.Tag { return PlayerLimit }

func (s *SnareSystem) UpdateEntity(w *ecs.World, e ecs.Entity, b *board.Board) (bool, error) {
	sel, ok := b.Selected()
	if !ok {
		return false, nil
	}
	loc, ok, err := awake(w, b, e)
	if err != nil || !ok {
		return false, err
	}
	snare, err := ecs.Get(w, e, component.SnareComponent.Kind())
	if err != nil {
		return false, err
	}
	return loc.Point().Manhattan(sel) <= snare.Radius, nil
}

// SplashDamageSystem hurts enemies next to matched cells, one point per
// adjacent cell. An enemy at zero health leaves the board.
type SplashDamageSystem struct{}

func NewSplashDamageSystem() *SplashDamageSystem {
	return &SplashDamageSystem{}
}

func (s *SplashDamageSystem) Name() string { return "splash_damage" }

func (s *SplashDamageSystem) Requires() []component.ComponentID {
	return requires(component.HealthID)
}

func (s *SplashDamageSystem) Tags() ecs.Tag { return Damage }

func (s *SplashDamageSystem) UpdateEntity(w *ecs.World, e ecs.Entity, b *board.Board) (bool, error) {
	if !b.IsLiveEnemy(e) {
		return false, nil
	}
	loc, err := ecs.Get(w, e, component.LocationComponent.Kind())
	if err != nil {
		return false, err
	}
	hits := 0
	for _, p := range b.RemovedCells() {
		if p.Manhattan(loc.Point()) == 1 {
			hits++
		}
	}
	if hits == 0 {
		return false, nil
	}
	hp, err := ecs.Get(w, e, component.HealthComponent.Kind())
	if err != nil {
		return false, err
	}
	hp.Current -= hits
	if hp.Current < 0 {
		hp.Current = 0
	}
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), hp); err != nil {
		return false, err
	}
	if hp.Current == 0 {
		return true, b.KillEnemy(e)
	}
	return true, nil
}
