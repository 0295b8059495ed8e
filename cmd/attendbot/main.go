// Package main contains the entrypoint for the attendance bot application.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jwlab/attendbot/internal/bot"
	"github.com/jwlab/attendbot/internal/bot/handlers"
	"github.com/jwlab/attendbot/internal/bot/tasks"
	"github.com/jwlab/attendbot/internal/chat/mattermost"
	"github.com/jwlab/attendbot/internal/config"
	"github.com/jwlab/attendbot/internal/database"
	"github.com/jwlab/attendbot/internal/logger"
	"github.com/jwlab/attendbot/internal/workday"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db,
// chat gateway, poller, scheduler), handles graceful shutdown, and returns
// an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.New(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db) // Ensure DB is closed on function exit
	store := database.NewStore(db, log)

	gateway := mattermost.New(cfg.Gateway.URL, cfg.Gateway.Token, cfg.Gateway.RequestTimeout, log)

	me, err := gateway.Me(ctx)
	if err != nil {
		log.Error("Failed to get bot user from chat server", "url", cfg.Gateway.URL, "error", err)
		return 1
	}
	log.Info("Connected to chat server", "bot_id", me.ID, "bot_username", me.Username)

	clock := clockwork.NewRealClock()

	hDeps := handlers.HandlerDeps{
		Logger:   log,
		Config:   cfg,
		Store:    store,
		Gateway:  gateway,
		Clock:    clock,
		Calendar: workday.NewKoreanCalendar(),
	}
	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
	}

	dispatcher := handlers.NewDispatcher(hDeps)

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	poller := bot.NewPoller(log, cfg, store, gateway, dispatcher, clock, me.ID)
	app := bot.NewBot(log, cfg, poller, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx) // Run blocks until context is cancelled or an error occurs
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
