package ecs

import (
	"errors"
	"testing"

	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
)

const (
	tagMove Tag = 1 << iota
	tagCheck
)

type moveSystem struct {
	calls int
}

func (s *moveSystem) Name() string { return "move" }
func (s *moveSystem) Requires() []component.ComponentID {
	return []component.ComponentID{positionKind.ID(), velocityKind.ID()}
}
func (s *moveSystem) Tags() Tag { return tagMove }
func (s *moveSystem) UpdateEntity(w *World, e Entity, scale int) (bool, error) {
	s.calls++
	v, err := Get(w, e, velocityKind)
	if err != nil {
		return false, err
	}
	err = Mutate(w, e, positionKind, func(p *position) {
		p.X += v.DX * scale
		p.Y += v.DY * scale
	})
	return err == nil, err
}

type checkSystem struct{}

func (checkSystem) Name() string                      { return "check" }
func (checkSystem) Requires() []component.ComponentID { return []component.ComponentID{tagKind.ID()} }
func (checkSystem) Tags() Tag                         { return tagCheck }
func (checkSystem) UpdateEntity(w *World, e Entity, _ int) (bool, error) {
	return true, nil
}

type emptySystem struct{ checkSystem }

func (emptySystem) Requires() []component.ComponentID { return nil }

func TestSchedulerAddRejectsEmptyRequirement(t *testing.T) {
	s, err := NewScheduler[int](NewWorld())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Add(emptySystem{}); !errors.Is(err, ErrInvalidSystem) {
		t.Fatalf("expected ErrInvalidSystem, got %v", err)
	}
	if err := s.Add(nil); !errors.Is(err, ErrInvalidSystem) {
		t.Fatalf("expected ErrInvalidSystem for nil, got %v", err)
	}
}

func TestSchedulerRegisterAndUpdate(t *testing.T) {
	w := NewWorld()
	move := &moveSystem{}
	s, err := NewScheduler[int](w, move, checkSystem{})
	if err != nil {
		t.Fatal(err)
	}

	mover := CreateEntity(w)
	_ = Add(w, mover, positionKind, position{})
	_ = Add(w, mover, velocityKind, velocity{DX: 1, DY: 2})
	_ = Add(w, mover, tagKind, struct{}{})

	still := CreateEntity(w)
	_ = Add(w, still, positionKind, position{})

	joined, err := s.Register(mover)
	if err != nil || joined != 2 {
		t.Fatalf("expected mover to join 2 systems, got %d (%v)", joined, err)
	}
	joined, _ = s.Register(still)
	if joined != 0 {
		t.Fatalf("expected still to join nothing, got %d", joined)
	}
	joined, _ = s.Register(mover)
	if joined != 0 {
		t.Fatalf("registering twice must not duplicate membership, got %d", joined)
	}
	if _, err := s.Register(Entity(77)); !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}

	n, err := s.Update(tagMove, 3)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 update, got %d (%v)", n, err)
	}
	p, _ := Get(w, mover, positionKind)
	if p != (position{X: 3, Y: 6}) {
		t.Fatalf("unexpected position %v", p)
	}

	n, _ = s.Update(tagCheck, 0)
	if n != 1 || move.calls != 1 {
		t.Fatalf("tag filter broken: n=%d calls=%d", n, move.calls)
	}

	s.Unregister(mover)
	n, _ = s.Update(tagMove, 1)
	if n != 0 {
		t.Fatalf("expected no updates after unregister, got %d", n)
	}
}

// Membership is fixed at registration time: adding a qualifying component
// later does not enroll the entity, removing one does not evict it.
func TestSchedulerMembershipIsStable(t *testing.T) {
	w := NewWorld()
	s, _ := NewScheduler[int](w, &moveSystem{})

	late := CreateEntity(w)
	_ = Add(w, late, positionKind, position{})
	_, _ = s.Register(late)
	_ = Add(w, late, velocityKind, velocity{DX: 1})
	if got := s.Members("move"); len(got) != 0 {
		t.Fatalf("late component must not enroll entity, got %v", got)
	}

	early := CreateEntity(w)
	_ = Add(w, early, positionKind, position{})
	_ = Add(w, early, velocityKind, velocity{DX: 1})
	_, _ = s.Register(early)
	Remove(w, early, velocityKind)
	if got := s.Members("move"); len(got) != 1 || got[0] != early {
		t.Fatalf("removed component must not evict entity, got %v", got)
	}

	// The stale member now trips the missing component on update.
	if _, err := s.Update(tagMove, 1); !errors.Is(err, ErrMissingComponent) {
		t.Fatalf("expected ErrMissingComponent from stale member, got %v", err)
	}
}

func TestSchedulerDestroy(t *testing.T) {
	w := NewWorld()
	s, _ := NewScheduler[int](w, checkSystem{})
	e := CreateEntity(w)
	_ = Add(w, e, tagKind, struct{}{})
	if err := s.RegisterAll(); err != nil {
		t.Fatal(err)
	}
	if err := s.Destroy(e); err != nil {
		t.Fatal(err)
	}
	if len(s.Members("check")) != 0 || IsAlive(w, e) {
		t.Fatal("expected entity gone from world and systems")
	}
	if err := s.Destroy(e); !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}
