package component

// EnemyTag marks entities that belong to the board's enemy collection.
type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag](EnemyTagID)
