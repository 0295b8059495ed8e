package handlers

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jwlab/attendbot/internal/chat"
	"github.com/jwlab/attendbot/internal/config"
	"github.com/jwlab/attendbot/internal/database"
	"github.com/jwlab/attendbot/internal/workday"
)

// HandlerDeps provides dependencies for command handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    database.Store
	Gateway  chat.Gateway
	Clock    clockwork.Clock
	Calendar *workday.Calendar
}

// Now returns the current time in the configured fixed time zone. Records
// are stamped and compared in this zone only.
func (d HandlerDeps) Now() time.Time {
	return d.Clock.Now().In(d.Config.Location())
}
