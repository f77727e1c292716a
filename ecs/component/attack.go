package component

// MeleeAttack removes any ally standing on the attacker's cell.
type MeleeAttack struct{}

var MeleeAttackComponent = NewComponent[MeleeAttack](MeleeAttackID)

// RangedOrthoAttack shoots the nearest ally sharing the attacker's row
// (Horizontal) or column (Vertical).
type RangedOrthoAttack struct {
	Horizontal bool
	Vertical   bool
	// Target is the ally index hit by the last shot, -1 when nothing was hit.
	Target int
	// Projectile names the sprite used for the shot.
	Projectile string
}

var RangedOrthoAttackComponent = NewComponent[RangedOrthoAttack](RangedOrthoAttackID)
