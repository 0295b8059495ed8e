package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jwlab/attendbot/internal/bot/handlers"
	"github.com/jwlab/attendbot/internal/chat"
	"github.com/jwlab/attendbot/internal/config"
	"github.com/jwlab/attendbot/internal/database"
)

// Poller is the bot's single control loop. Each iteration evaluates the
// time-triggered actions and then fetches and dispatches new messages per
// monitored channel above a high-water-mark timestamp. Everything is
// synchronous; an iteration error is logged and followed by a longer
// back-off sleep.
type Poller struct {
	logger     *slog.Logger
	cfg        *config.Config
	store      database.Store
	gateway    chat.Gateway
	dispatcher *handlers.Dispatcher
	clock      clockwork.Clock
	botUserID  string

	triggers TriggerState

	// sharedMark is used in shared watermark mode; channelMarks in
	// per-channel mode. Which one applies is a configuration choice.
	sharedMark   int64
	channelMarks map[string]int64
}

// NewPoller creates the polling loop. Watermarks start at the current
// time so only messages arriving after startup are processed.
func NewPoller(
	logger *slog.Logger,
	cfg *config.Config,
	store database.Store,
	gateway chat.Gateway,
	dispatcher *handlers.Dispatcher,
	clock clockwork.Clock,
	botUserID string,
) *Poller {
	start := clock.Now().UnixMilli()

	marks := make(map[string]int64, len(cfg.Channels.Monitor))
	for _, ch := range cfg.Channels.Monitor {
		marks[ch] = start
	}

	return &Poller{
		logger:       logger.With("component", "poller"),
		cfg:          cfg,
		store:        store,
		gateway:      gateway,
		dispatcher:   dispatcher,
		clock:        clock,
		botUserID:    botUserID,
		sharedMark:   start,
		channelMarks: marks,
	}
}

// Run executes the loop until the context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("Poller started",
		"interval", p.cfg.Poller.Interval,
		"watermark_mode", p.cfg.Poller.WatermarkMode,
		"channels", len(p.cfg.Channels.Monitor))

	for {
		sleep := p.cfg.Poller.Interval
		if err := p.iterate(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("Poll iteration failed, backing off", "error", err, "backoff", p.cfg.Poller.ErrorBackoff)
			sleep = p.cfg.Poller.ErrorBackoff
		}

		select {
		case <-ctx.Done():
			p.logger.Info("Poller stopped")
			return ctx.Err()
		case <-p.clock.After(sleep):
		}
	}
}

// iterate runs one polling cycle: trigger evaluation, then message
// dispatch per channel. Watermarks and trigger flags already advanced are
// not rolled back on error, so a failed iteration can skip work on retry.
func (p *Poller) iterate(ctx context.Context) error {
	now := p.clock.Now().In(p.cfg.Location())

	p.triggers.Roll(now)

	if err := p.fireTriggers(ctx, now); err != nil {
		return err
	}

	for _, channelID := range p.cfg.Channels.Monitor {
		since := p.watermark(channelID)
		advanced, err := p.processChannel(ctx, channelID, since)
		if err != nil {
			return err
		}
		p.setWatermark(channelID, advanced)
	}
	return nil
}

func (p *Poller) watermark(channelID string) int64 {
	if p.cfg.Poller.WatermarkMode == config.WatermarkPerChannel {
		return p.channelMarks[channelID]
	}
	return p.sharedMark
}

func (p *Poller) setWatermark(channelID string, mark int64) {
	if p.cfg.Poller.WatermarkMode == config.WatermarkPerChannel {
		if mark > p.channelMarks[channelID] {
			p.channelMarks[channelID] = mark
		}
		return
	}
	if mark > p.sharedMark {
		p.sharedMark = mark
	}
}

// processChannel fetches posts newer than since, dispatches them in
// creation order, and returns the new watermark.
func (p *Poller) processChannel(ctx context.Context, channelID string, since int64) (int64, error) {
	posts, err := p.gateway.PostsSince(ctx, channelID, since)
	if err != nil {
		return since, fmt.Errorf("failed to process channel %s: %w", channelID, err)
	}
	if len(posts) == 0 {
		return since, nil
	}

	sort.Slice(posts, func(i, j int) bool { return posts[i].CreateAt < posts[j].CreateAt })

	for _, post := range posts {
		if post.UserID == p.botUserID || post.Reply() || post.CreateAt <= since {
			continue
		}

		if response := p.dispatcher.Dispatch(ctx, post.UserID, post.Message); response != "" {
			if err := p.sendDirect(ctx, post.UserID, response); err != nil {
				return since, err
			}
			p.logger.Info("Sent response", "channel_id", channelID, "user_id", post.UserID)
		}

		if post.CreateAt > since {
			since = post.CreateAt
		}
	}
	return since, nil
}

// sendDirect delivers a response to the user's direct-message channel. In
// debug mode responses go to the attendance channel instead.
func (p *Poller) sendDirect(ctx context.Context, userID, message string) error {
	channelID := p.cfg.Channels.Attendance
	if !p.cfg.Gateway.Debug {
		dm, err := p.gateway.CreateDirectChannel(ctx, p.botUserID, userID)
		if err != nil {
			return fmt.Errorf("failed to open direct channel with %s: %w", userID, err)
		}
		channelID = dm.ID
	}
	return p.gateway.CreatePost(ctx, channelID, message)
}

// fireTriggers performs any due time-triggered action and latches its
// flag. A failed action leaves its flag unset, so it retries while the
// trigger minute lasts and is skipped silently afterwards.
func (p *Poller) fireTriggers(ctx context.Context, now time.Time) error {
	birthdayAt := p.cfg.BirthdayTime()
	checkoutAt := p.cfg.CheckoutTime()

	if p.triggers.MonthlyBirthdayDue(now, birthdayAt) {
		if err := p.postMonthlyGreeting(ctx, now); err != nil {
			return err
		}
		p.triggers.MarkMonthlyBirthday()
	}

	if p.triggers.DailyBirthdayDue(now, birthdayAt) {
		if err := p.postDailyGreeting(ctx, now); err != nil {
			return err
		}
		p.triggers.MarkDailyBirthday()
	}

	if p.triggers.AutoCheckoutDue(now, checkoutAt) {
		if err := p.runAutoCheckout(ctx, now); err != nil {
			return err
		}
		p.triggers.MarkAutoCheckout()
	}
	return nil
}

func (p *Poller) postDailyGreeting(ctx context.Context, now time.Time) error {
	members, err := p.store.MembersBornOn(ctx, now.Format("01-02"))
	if err != nil {
		return err
	}
	if greeting := dailyGreeting(members); greeting != "" {
		if err := p.gateway.CreatePost(ctx, p.cfg.Channels.Birthday, greeting); err != nil {
			return err
		}
		p.logger.Info("Posted daily birthday greeting", "birthdays", len(members))
	}
	return nil
}

func (p *Poller) postMonthlyGreeting(ctx context.Context, now time.Time) error {
	members, err := p.store.MembersBornInMonth(ctx, now.Format("01"))
	if err != nil {
		return err
	}
	if greeting := monthlyGreeting(members); greeting != "" {
		if err := p.gateway.CreatePost(ctx, p.cfg.Channels.Birthday, greeting); err != nil {
			return err
		}
		p.logger.Info("Posted monthly birthday greeting", "birthdays", len(members))
	}
	return nil
}

// runAutoCheckout closes every still-open record for the current date and
// notifies each affected user, then repairs any duplicate open rows left
// over from earlier days.
func (p *Poller) runAutoCheckout(ctx context.Context, now time.Time) error {
	date := now.Format(database.DateLayout)
	timeOut := now.Format(database.TimeLayout)

	userIDs, err := p.store.CloseOpenForDate(ctx, date, timeOut)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		if err := p.sendDirect(ctx, userID, handlers.AutoCheckoutMessage(date, timeOut)); err != nil {
			return err
		}
	}
	if len(userIDs) > 0 {
		p.logger.Info("Auto-checkout completed", "date", date, "users", len(userIDs))
	}

	if _, err := p.store.RepairOpenRecords(ctx); err != nil {
		p.logger.Error("Record repair after auto-checkout failed", "error", err)
	}
	return nil
}
