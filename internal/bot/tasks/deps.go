// Package tasks implements scheduled maintenance jobs that run outside
// the chat polling loop.
package tasks

import (
	"log/slog"

	"github.com/jwlab/attendbot/internal/database"
)

// TaskDeps bundles the dependencies shared by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
}
