package component

// ComponentID is the stable type key of a component kind. IDs are assigned
// explicitly below rather than from a runtime counter or type hash, so the same
// kind keeps the same ID across builds.
type ComponentID uint8

const (
	InvalidID ComponentID = iota
	LocationID
	DumbMovementID
	SmartMovementID
	ScriptedMovementID
	MeleeAttackID
	RangedOrthoAttackID
	IdleID
	EnemyTagID
	RootingID
	SnareID
	DormantID
	HealthID

	// MaxID bounds the IDs usable in a Signature.
	MaxID ComponentID = 63
)

type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any](id ComponentID) ComponentKind[T] {
	if id == InvalidID || id > MaxID {
		panic("component: id out of range")
	}
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != InvalidID
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any](id ComponentID) ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T](id)}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.kind.id
}
