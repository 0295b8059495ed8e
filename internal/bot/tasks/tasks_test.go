// Package tasks_test tests the scheduled maintenance tasks against a
// real store.
package tasks_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jwlab/attendbot/internal/bot/tasks"
	"github.com/jwlab/attendbot/internal/database"
)

func newTestDeps(t *testing.T) (tasks.TaskDeps, database.Store) {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := database.NewStore(db, logger)
	return tasks.TaskDeps{Logger: logger, Store: store}, store
}

func TestRegisterAllTasks(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	taskMap := tasks.RegisterAllTasks(deps)

	for _, name := range []string{"sql_maintenance", "record_repair"} {
		if _, ok := taskMap[name]; !ok {
			t.Errorf("RegisterAllTasks() missing task %q", name)
		}
	}
}

func TestRecordRepairTask(t *testing.T) {
	t.Parallel()

	deps, store := newTestDeps(t)
	ctx := context.Background()

	// Two open rows for the same user and date; the repair task removes
	// the surplus one.
	for _, timeIn := range []string{"09:00:00", "09:05:00"} {
		err := store.InsertAttendance(ctx, &database.AttendanceRecord{
			UserID: "u1", Date: "2025-06-02", TimeIn: timeIn, Location: "Not specified",
		})
		if err != nil {
			t.Fatalf("InsertAttendance() returned error: %v", err)
		}
	}

	repair := tasks.RegisterAllTasks(deps)["record_repair"]
	if err := repair(ctx); err != nil {
		t.Fatalf("record_repair returned error: %v", err)
	}

	recs, err := store.AttendanceForDate(ctx, "u1", "2025-06-02")
	if err != nil {
		t.Fatalf("AttendanceForDate() returned error: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("records after repair = %d, want 1", len(recs))
	}
}

func TestSQLMaintenanceTask(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)

	maintenance := tasks.RegisterAllTasks(deps)["sql_maintenance"]
	if err := maintenance(context.Background()); err != nil {
		t.Errorf("sql_maintenance returned error: %v", err)
	}
}
