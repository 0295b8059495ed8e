package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/jwlab/attendbot/internal/config"
	"github.com/jwlab/attendbot/internal/database"
)

func TestPeriodFlagRoll(t *testing.T) {
	t.Parallel()

	var f periodFlag

	if !f.roll("2025-06-03") {
		t.Error("first roll() = false, want reset on new key")
	}

	f.done = true
	if f.roll("2025-06-03") {
		t.Error("roll() with same key = true, want no reset")
	}
	if !f.done {
		t.Error("done cleared without a key change")
	}

	if !f.roll("2025-06-04") {
		t.Error("roll() with new key = false, want reset")
	}
	if f.done {
		t.Error("done not cleared on key change")
	}
}

func TestTriggerStateDailyCycle(t *testing.T) {
	t.Parallel()

	var s TriggerState
	at := config.ClockTime{Hour: 12, Minute: 0}

	before := time.Date(2025, 6, 3, 11, 59, 30, 0, time.UTC)
	s.Roll(before)
	if s.DailyBirthdayDue(before, at) {
		t.Error("DailyBirthdayDue() before the trigger minute = true, want false")
	}

	due := time.Date(2025, 6, 3, 12, 0, 15, 0, time.UTC)
	s.Roll(due)
	if !s.DailyBirthdayDue(due, at) {
		t.Fatal("DailyBirthdayDue() in the trigger minute = false, want true")
	}

	// Latched for the rest of the day, including later in the same minute.
	s.MarkDailyBirthday()
	if s.DailyBirthdayDue(due, at) {
		t.Error("DailyBirthdayDue() after mark = true, want latched")
	}

	later := time.Date(2025, 6, 3, 12, 0, 45, 0, time.UTC)
	s.Roll(later)
	if s.DailyBirthdayDue(later, at) {
		t.Error("DailyBirthdayDue() later in the same minute = true, want latched")
	}

	// The date rollover is the only reset.
	nextDay := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	s.Roll(nextDay)
	if !s.DailyBirthdayDue(nextDay, at) {
		t.Error("DailyBirthdayDue() after date rollover = false, want reset")
	}
}

func TestTriggerStateMonthlyCycle(t *testing.T) {
	t.Parallel()

	var s TriggerState
	at := config.ClockTime{Hour: 12, Minute: 0}

	// Monthly fires only on the first of the month.
	midMonth := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	s.Roll(midMonth)
	if s.MonthlyBirthdayDue(midMonth, at) {
		t.Error("MonthlyBirthdayDue() mid-month = true, want false")
	}

	first := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	s.Roll(first)
	if !s.MonthlyBirthdayDue(first, at) {
		t.Fatal("MonthlyBirthdayDue() on the first = false, want true")
	}

	s.MarkMonthlyBirthday()
	if s.MonthlyBirthdayDue(first, at) {
		t.Error("MonthlyBirthdayDue() after mark = true, want latched")
	}

	// A day rollover within the month must not reset the monthly flag.
	nextFirst := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	s.Roll(nextFirst)
	if !s.MonthlyBirthdayDue(nextFirst, at) {
		t.Error("MonthlyBirthdayDue() after month rollover = false, want reset")
	}
}

func TestTriggerStateAutoCheckout(t *testing.T) {
	t.Parallel()

	var s TriggerState
	at := config.ClockTime{Hour: 23, Minute: 59}

	due := time.Date(2025, 6, 3, 23, 59, 5, 0, time.UTC)
	s.Roll(due)
	if !s.AutoCheckoutDue(due, at) {
		t.Fatal("AutoCheckoutDue() in the trigger minute = false, want true")
	}

	s.MarkAutoCheckout()
	if s.AutoCheckoutDue(due, at) {
		t.Error("AutoCheckoutDue() after mark = true, want latched")
	}

	nextDay := time.Date(2025, 6, 4, 23, 59, 5, 0, time.UTC)
	s.Roll(nextDay)
	if !s.AutoCheckoutDue(nextDay, at) {
		t.Error("AutoCheckoutDue() after date rollover = false, want reset")
	}
}

func TestGreetingFormatting(t *testing.T) {
	t.Parallel()

	if got := dailyGreeting(nil); got != "" {
		t.Errorf("dailyGreeting(nil) = %q, want empty", got)
	}
	if got := monthlyGreeting(nil); got != "" {
		t.Errorf("monthlyGreeting(nil) = %q, want empty", got)
	}

	members := []database.MemberInfo{
		{UserID: "@a", Name: "Alice"},
		{UserID: "@b", Name: "Bob"},
	}

	daily := dailyGreeting(members)
	for _, want := range []string{
		"Daily Birthday Greetings",
		"Happy birthday, Alice!",
		"Happy birthday, Bob!",
		"2 birthdays today!",
	} {
		if !strings.Contains(daily, want) {
			t.Errorf("dailyGreeting() %q missing %q", daily, want)
		}
	}

	monthly := monthlyGreeting(members[:1])
	for _, want := range []string{
		"Monthly Birthday Greetings",
		"Happy birthday, Alice!",
		"1 birthdays this month!",
	} {
		if !strings.Contains(monthly, want) {
			t.Errorf("monthlyGreeting() %q missing %q", monthly, want)
		}
	}
}
