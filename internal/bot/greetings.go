package bot

import (
	"fmt"
	"strings"

	"github.com/jwlab/attendbot/internal/database"
)

// dailyGreeting formats the birthday-channel post for members whose
// birthday month-day is today. Empty when nobody matches.
func dailyGreeting(members []database.MemberInfo) string {
	if len(members) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("#### :birthday: Daily Birthday Greetings\n")
	for _, m := range members {
		fmt.Fprintf(&b, "Happy birthday, %s! :tada:\n", m.Name)
	}
	fmt.Fprintf(&b, "\n%d birthdays today! :confetti_ball:", len(members))
	return b.String()
}

// monthlyGreeting formats the birthday-channel post for members born this
// month. Empty when nobody matches.
func monthlyGreeting(members []database.MemberInfo) string {
	if len(members) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("#### :birthday: Monthly Birthday Greetings\n")
	for _, m := range members {
		fmt.Fprintf(&b, "Happy birthday, %s! :tada:\n", m.Name)
	}
	fmt.Fprintf(&b, "\n%d birthdays this month! :confetti_ball:", len(members))
	return b.String()
}
