package tasks

import (
	"context"
	"fmt"
)

// makeSQLMaintenance compacts the database file.
func makeSQLMaintenance(deps TaskDeps) TaskFunc {
	return func(ctx context.Context) error {
		if err := deps.Store.RunSQLMaintenance(ctx); err != nil {
			return fmt.Errorf("sql maintenance failed: %w", err)
		}
		deps.Logger.Info("SQL maintenance completed")
		return nil
	}
}

// makeRecordRepair removes duplicate open attendance rows, keeping the
// earliest row per user and date.
func makeRecordRepair(deps TaskDeps) TaskFunc {
	return func(ctx context.Context) error {
		removed, err := deps.Store.RepairOpenRecords(ctx)
		if err != nil {
			return fmt.Errorf("record repair failed: %w", err)
		}
		if removed > 0 {
			deps.Logger.Info("Record repair removed duplicate open records", "count", removed)
		}
		return nil
	}
}
