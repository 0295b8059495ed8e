// Package bot implements the attendance bot's core loop, scheduled
// triggers, and component lifecycle management.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jwlab/attendbot/internal/config"
)

// Bot manages the lifecycle of the bot's components: the chat polling
// loop and the background task scheduler.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	poller    *Poller
	scheduler *Scheduler
}

// NewBot creates a new bot orchestrator over an initialized poller and
// scheduler.
func NewBot(logger *slog.Logger, cfg *config.Config, poller *Poller, scheduler *Scheduler) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		cfg:       cfg,
		poller:    poller,
		scheduler: scheduler,
	}
}

// Run starts all components and blocks until the context is cancelled
// or a component fails. Shutdown is graceful: the scheduler waits for
// running jobs and the poller finishes its current cycle.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting chat poller...")

		if err := b.poller.Run(gCtx); err != nil && !errors.Is(err, context.Canceled) {
			b.logger.Error("Chat poller stopped with error", "error", err)
			return fmt.Errorf("chat poller failed: %w", err)
		}

		b.logger.Info("Chat poller stopped.")
		return nil
	})

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}

		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
