// Package handlers_test tests command dispatch and handler behavior
// against a real store and a fake chat gateway.
package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jwlab/attendbot/internal/bot/handlers"
	"github.com/jwlab/attendbot/internal/chat"
	"github.com/jwlab/attendbot/internal/config"
	"github.com/jwlab/attendbot/internal/database"
	"github.com/jwlab/attendbot/internal/workday"
)

// testNow is a Tuesday working day, 10:00 in Seoul.
var testNow = time.Date(2025, 6, 3, 10, 0, 0, 0, seoul())

func seoul() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		panic(err)
	}
	return loc
}

// fakeGateway is an in-memory chat.Gateway for handler tests. Only the
// lookups the handlers use are populated.
type fakeGateway struct {
	channels map[string]chat.Channel
	teams    map[string][]chat.TeamMember
	users    map[string]chat.User

	posts []struct {
		ChannelID string
		Message   string
	}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		channels: make(map[string]chat.Channel),
		teams:    make(map[string][]chat.TeamMember),
		users:    make(map[string]chat.User),
	}
}

func (g *fakeGateway) Me(context.Context) (chat.User, error) {
	return chat.User{ID: "bot", Username: "attendbot", IsBot: true}, nil
}

func (g *fakeGateway) GetChannel(_ context.Context, channelID string) (chat.Channel, error) {
	return g.channels[channelID], nil
}

func (g *fakeGateway) GetTeamMembers(_ context.Context, teamID string) ([]chat.TeamMember, error) {
	return g.teams[teamID], nil
}

func (g *fakeGateway) GetUser(_ context.Context, userID string) (chat.User, error) {
	return g.users[userID], nil
}

func (g *fakeGateway) PostsSince(context.Context, string, int64) ([]chat.Post, error) {
	return nil, nil
}

func (g *fakeGateway) CreateDirectChannel(_ context.Context, _, otherID string) (chat.Channel, error) {
	return chat.Channel{ID: "dm-" + otherID}, nil
}

func (g *fakeGateway) CreatePost(_ context.Context, channelID, message string) error {
	g.posts = append(g.posts, struct {
		ChannelID string
		Message   string
	}{channelID, message})
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Timezone: "Asia/Seoul",
		Channels: config.ChannelsConfig{
			Attendance: "attendance-ch",
			Birthday:   "birthday-ch",
			Monitor:    []string{"attendance-ch"},
		},
		Poller: config.PollerConfig{
			Interval:      time.Second,
			ErrorBackoff:  5 * time.Second,
			WatermarkMode: config.WatermarkShared,
		},
		Triggers: config.TriggerConfig{
			BirthdayTime:      "12:00",
			AutoCheckoutTime:  "23:59",
			DebugCheckoutTime: "00:00",
		},
	}
}

// newTestDeps builds handler dependencies around a real temporary
// database and a fixed clock.
func newTestDeps(t *testing.T) (handlers.HandlerDeps, *fakeGateway) {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gateway := newFakeGateway()

	deps := handlers.HandlerDeps{
		Logger:   logger,
		Config:   testConfig(),
		Store:    database.NewStore(db, logger),
		Gateway:  gateway,
		Clock:    clockwork.NewFakeClockAt(testNow),
		Calendar: workday.NewKoreanCalendar(),
	}
	return deps, gateway
}
