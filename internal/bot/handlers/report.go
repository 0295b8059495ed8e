package handlers

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jwlab/attendbot/internal/database"
)

// Team member status labels, resolved by priority: vacation covers the
// day, then checked out, then checked in, then no record.
const (
	statusOnVacation = ":palm_tree: On vacation"
	statusLeftWork   = ":door: Left work"
	statusAtWork     = ":computer: At work"
	statusNoRecord   = ":warning: No attendance record"
)

func newTeamStatusHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, _ string, args []string) (string, error) {
		day := deps.Now().Format(database.DateLayout)
		if len(args) > 0 {
			parsed, err := parseDate(args[0])
			if err != nil {
				return "", err
			}
			day = parsed
		}

		t, err := time.ParseInLocation(database.DateLayout, day, deps.Config.Location())
		if err != nil {
			return "", userError(msgInvalidDateFormat)
		}
		if !deps.Calendar.IsWorkingDay(t) {
			return msgNonWorkingDay, nil
		}

		channel, err := deps.Gateway.GetChannel(ctx, deps.Config.Channels.Attendance)
		if err != nil {
			return "", err
		}
		members, err := deps.Gateway.GetTeamMembers(ctx, channel.TeamID)
		if err != nil {
			return "", err
		}

		var lines []string
		for _, member := range members {
			user, err := deps.Gateway.GetUser(ctx, member.UserID)
			if err != nil {
				return "", err
			}
			if !user.Active() {
				continue
			}

			status, err := memberStatus(ctx, deps, member.UserID, day)
			if err != nil {
				return "", err
			}
			lines = append(lines, fmt.Sprintf("- **%s**: %s", user.Username, status))
		}

		if len(lines) == 0 {
			return msgNoTeamRecords, nil
		}
		return fmt.Sprintf("#### :busts_in_silhouette: Team Status for %s\n%s", day, strings.Join(lines, "\n")), nil
	}
}

func memberStatus(ctx context.Context, deps HandlerDeps, userID, day string) (string, error) {
	vacation, err := deps.Store.VacationCovering(ctx, userID, day)
	if err != nil {
		return "", err
	}
	if vacation != nil {
		return statusOnVacation, nil
	}

	recs, err := deps.Store.AttendanceForDate(ctx, userID, day)
	if err != nil {
		return "", err
	}

	anyOpen := false
	for _, rec := range recs {
		if rec.TimeOut.Valid {
			return statusLeftWork, nil
		}
		anyOpen = true
	}
	if anyOpen {
		return statusAtWork, nil
	}
	return statusNoRecord, nil
}

func newMonthlyReportHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, userID string, args []string) (string, error) {
		yearMonth := deps.Now().Format("2006-01")
		if len(args) > 0 {
			if _, err := time.Parse("2006-01", args[0]); err != nil {
				return "", userError(msgInvalidMonthFormat)
			}
			yearMonth = args[0]
		}

		records, err := deps.Store.MonthAttendance(ctx, yearMonth)
		if err != nil {
			return "", err
		}

		report := buildMonthlyReport(records, userID)
		return report.render(), nil
	}
}

// monthlyReport aggregates one month of attendance.
type monthlyReport struct {
	userHours        []float64
	userAttendedDays int
	allHours         []float64
	allAttendedDays  int
	usersWithRecords int
}

// buildMonthlyReport computes per-day decimal-hour totals for the month.
// Only closed records contribute hours; a day whose records are all open
// contributes nothing, but a user with any record that month still counts
// toward the per-user denominator.
func buildMonthlyReport(records []database.AttendanceRecord, requestedUser string) monthlyReport {
	type dayKey struct{ user, date string }

	closedByDay := make(map[dayKey]float64)
	usersSeen := make(map[string]bool)

	for _, rec := range records {
		usersSeen[rec.UserID] = true
		if !rec.TimeOut.Valid {
			continue
		}
		closedByDay[dayKey{rec.UserID, rec.Date}] += decimalHours(rec.TimeIn, rec.TimeOut.String)
	}

	var report monthlyReport
	report.usersWithRecords = len(usersSeen)

	allDates := make(map[string]bool)
	userDates := make(map[string]bool)
	for key, hours := range closedByDay {
		report.allHours = append(report.allHours, hours)
		allDates[key.date] = true
		if key.user == requestedUser {
			report.userHours = append(report.userHours, hours)
			userDates[key.date] = true
		}
	}
	report.allAttendedDays = len(allDates)
	report.userAttendedDays = len(userDates)
	return report
}

func (r monthlyReport) render() string {
	userStats := "#### Requested User Stats\n**No attendance records**"
	if len(r.userHours) > 0 {
		userStats = fmt.Sprintf("#### Requested User Stats\n"+
			"- **Avg hours**: %.2f\n"+
			"- **Stdev**: %.2f\n"+
			"- **Attended days**: %d",
			mean(r.userHours), sampleStdev(r.userHours), r.userAttendedDays)
	}

	allStats := "#### All Users Stats\n**No attendance records**"
	if len(r.allHours) > 0 {
		// Attended days averaged over users with any record that month;
		// not a per-user mean of attended-day counts.
		avgAttended := float64(r.allAttendedDays) / float64(r.usersWithRecords)
		allStats = fmt.Sprintf("#### All Users Stats\n"+
			"- **Avg hours**: %.2f\n"+
			"- **Avg attended days**: %.2f",
			mean(r.allHours), avgAttended)
	}

	return userStats + "\n\n" + allStats
}

// decimalHours returns timeOut minus timeIn in fractional hours. Both are
// HH:MM:SS strings; unparseable values contribute zero.
func decimalHours(timeIn, timeOut string) float64 {
	in, err := time.Parse(database.TimeLayout, timeIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse(database.TimeLayout, timeOut)
	if err != nil {
		return 0
	}
	return out.Sub(in).Hours()
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdev computes the sample standard deviation with Bessel's
// correction, degenerating to 0 below two data points.
func sampleStdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
