package handlers_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jwlab/attendbot/internal/bot/handlers"
)

func TestDispatchIgnoresNonCommands(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
	}{
		{name: "Plain chatter", message: "good morning everyone"},
		{name: "Empty message", message: ""},
		{name: "Whitespace only", message: "   "},
		{name: "Prefix mid-message", message: "I said !in earlier"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.Dispatch(ctx, "u1", tc.message); got != "" {
				t.Errorf("Dispatch(%q) = %q, want empty", tc.message, got)
			}
		})
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)

	got := d.Dispatch(context.Background(), "u1", "!frobnicate")
	if !strings.Contains(got, "Unknown command") {
		t.Errorf("Dispatch(!frobnicate) = %q, want unknown-command message", got)
	}
}

func TestDispatchUsageOnMissingArgs(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
		usage   string
	}{
		{name: "missing needs three args", message: "!missing 2025-06-02", usage: "!missing YYYY-MM-DD"},
		{name: "missingout needs two args", message: "!missingout 2025-06-02", usage: "!missingout YYYY-MM-DD"},
		{name: "edit needs three args", message: "!edit 0", usage: "!edit <index>"},
		{name: "vacation needs three args", message: "!vacation 2025-06-02", usage: "!vacation YYYY-MM-DD"},
		{name: "addmember needs six args", message: "!addmember @u", usage: "!addmember <user_id>"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := d.Dispatch(ctx, "u1", tc.message)
			if !strings.Contains(got, "Invalid Format") || !strings.Contains(got, tc.usage) {
				t.Errorf("Dispatch(%q) = %q, want usage containing %q", tc.message, got, tc.usage)
			}
		})
	}
}

func TestDispatchAliases(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)
	ctx := context.Background()

	// English alias checks in; the Korean alias hits the same handler and
	// reports the existing open record.
	first := d.Dispatch(ctx, "u1", "!in")
	if !strings.Contains(first, "Attendance Record") {
		t.Fatalf("Dispatch(!in) = %q, want attendance record", first)
	}

	second := d.Dispatch(ctx, "u1", "!출근")
	if !strings.Contains(second, "Already checked in") {
		t.Errorf("Dispatch(!출근) = %q, want already-checked-in conflict", second)
	}
}

func TestDispatchCaseInsensitive(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)

	got := d.Dispatch(context.Background(), "u1", "!IN")
	if !strings.Contains(got, "Attendance Record") {
		t.Errorf("Dispatch(!IN) = %q, want attendance record", got)
	}
}

func TestDispatchHelp(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)
	ctx := context.Background()

	for _, message := range []string{"!h", "!help", "!도움"} {
		got := d.Dispatch(ctx, "u1", message)
		if !strings.Contains(got, "!in") || !strings.Contains(got, "!vacation") {
			t.Errorf("Dispatch(%q) = %q, want command reference", message, got)
		}
	}
}
