package component

// DumbMovement patrols: the pawn walks Distance cells along its facing each
// enemy turn and turns around at walls or other enemies.
type DumbMovement struct {
	Distance int
}

var DumbMovementComponent = NewComponent[DumbMovement](DumbMovementID)

// SmartMovement walks Distance cells towards the nearest ally.
type SmartMovement struct {
	Distance int
}

var SmartMovementComponent = NewComponent[SmartMovement](SmartMovementID)

// ScriptedMovement delegates the choice of each step to a script.
type ScriptedMovement struct {
	Script   string
	Distance int
}

var ScriptedMovementComponent = NewComponent[ScriptedMovement](ScriptedMovementID)
