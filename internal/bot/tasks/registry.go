package tasks

import "context"

// TaskFunc is a unit of scheduled work. Implementations must honor the
// context and return an error on failure.
type TaskFunc func(ctx context.Context) error

// RegisterAllTasks returns the map of task names to implementations.
// Names here must match the keys in the scheduler configuration.
func RegisterAllTasks(deps TaskDeps) map[string]TaskFunc {
	return map[string]TaskFunc{
		"sql_maintenance": makeSQLMaintenance(deps),
		"record_repair":   makeRecordRepair(deps),
	}
}
