package component

// Rooting pins the row and the column the enemy stands on: the player cannot
// slide either line while the enemy is alive.
type Rooting struct{}

var RootingComponent = NewComponent[Rooting](RootingID)

// Snare stops the player from grabbing any cell within Radius (Manhattan) of
// the enemy.
type Snare struct {
	Radius int
}

var SnareComponent = NewComponent[Snare](SnareID)

// Dormant enemies sleep through the enemy turn until the player has made
// Moves more moves.
type Dormant struct {
	Moves int
}

var DormantComponent = NewComponent[Dormant](DormantID)

// Health lets an enemy take splash damage from matches next to it.
type Health struct {
	Current int
	Max     int
}

var HealthComponent = NewComponent[Health](HealthID)
