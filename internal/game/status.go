package game

// LevelStatus is the derived per-child state of a level. It is computed
// on every read and never persisted.
type LevelStatus string

const (
	StatusLocked    LevelStatus = "locked"
	StatusAvailable LevelStatus = "available"
	StatusCompleted LevelStatus = "completed"
)

// LevelScenarios pairs a level with the IDs of the scenarios under it,
// in the module's order-index order.
type LevelScenarios struct {
	LevelID     int64
	ScenarioIDs []int64
}

// ComputeStatuses derives the status of each level in a module for one
// child, given the set of scenario IDs the child has passed. Levels must
// be supplied in ascending order-index. The first incomplete level after
// a run of completed ones is available; everything beyond it is locked.
// The first level of a module is never locked.
func ComputeStatuses(levels []LevelScenarios, passed map[int64]bool) []LevelStatus {
	statuses := make([]LevelStatus, len(levels))
	previousCompleted := true

	for i, level := range levels {
		if LevelCompleted(level.ScenarioIDs, passed) {
			statuses[i] = StatusCompleted
			previousCompleted = true
			continue
		}
		if previousCompleted {
			statuses[i] = StatusAvailable
		} else {
			statuses[i] = StatusLocked
		}
		previousCompleted = false
	}

	return statuses
}

// LevelCompleted reports whether every scenario in the level has a passed
// attempt. A level with no scenarios is never completed: the empty set
// would vacuously satisfy the subset check and spuriously unlock the
// next level.
func LevelCompleted(scenarioIDs []int64, passed map[int64]bool) bool {
	if len(scenarioIDs) == 0 {
		return false
	}
	for _, id := range scenarioIDs {
		if !passed[id] {
			return false
		}
	}
	return true
}
