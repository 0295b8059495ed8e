package bot

import (
	"time"

	"github.com/jwlab/attendbot/internal/config"
)

// periodFlag is a once-per-period idempotency latch. done blocks repeat
// firing within a period; the latch opens again when the period key
// advances past the stored watermark.
type periodFlag struct {
	key  string
	done bool
}

// roll updates the period watermark, clearing done exactly once per key
// change. It reports whether a reset happened.
func (f *periodFlag) roll(key string) bool {
	if f.key == key {
		return false
	}
	f.key = key
	f.done = false
	return true
}

// TriggerState holds the idempotency flags for the loop's three
// time-triggered actions. It lives in memory only: a restart on the
// trigger day can duplicate or skip that day's action, which is accepted
// behavior.
type TriggerState struct {
	dailyBirthday   periodFlag // keyed by date
	monthlyBirthday periodFlag // keyed by month
	autoCheckout    periodFlag // keyed by date
}

const (
	dayKeyLayout   = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// Roll advances all period watermarks to the observed instant, clearing
// flags whose period has rolled over. This comparison against the
// previous iteration's value is the only reset mechanism.
func (s *TriggerState) Roll(now time.Time) {
	s.dailyBirthday.roll(now.Format(dayKeyLayout))
	s.monthlyBirthday.roll(now.Format(monthKeyLayout))
	s.autoCheckout.roll(now.Format(dayKeyLayout))
}

// DailyBirthdayDue reports whether the daily birthday greeting should
// fire: the configured minute is current and the flag is unset. A minute
// the loop never observes is skipped silently.
func (s *TriggerState) DailyBirthdayDue(now time.Time, at config.ClockTime) bool {
	return at.Matches(now) && !s.dailyBirthday.done
}

// MarkDailyBirthday latches the daily greeting until the next date rollover.
func (s *TriggerState) MarkDailyBirthday() {
	s.dailyBirthday.done = true
}

// MonthlyBirthdayDue reports whether the monthly birthday greeting should
// fire: first of the month, configured minute current, flag unset.
func (s *TriggerState) MonthlyBirthdayDue(now time.Time, at config.ClockTime) bool {
	return now.Day() == 1 && at.Matches(now) && !s.monthlyBirthday.done
}

// MarkMonthlyBirthday latches the monthly greeting until the next month rollover.
func (s *TriggerState) MarkMonthlyBirthday() {
	s.monthlyBirthday.done = true
}

// AutoCheckoutDue reports whether the midnight auto-checkout should fire.
func (s *TriggerState) AutoCheckoutDue(now time.Time, at config.ClockTime) bool {
	return at.Matches(now) && !s.autoCheckout.done
}

// MarkAutoCheckout latches auto-checkout until the next date rollover.
func (s *TriggerState) MarkAutoCheckout() {
	s.autoCheckout.done = true
}
