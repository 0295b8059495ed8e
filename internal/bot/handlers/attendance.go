package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jwlab/attendbot/internal/database"
)

const (
	defaultLocation     = "Not specified"
	manualEntryLocation = "Manual Entry"
	recentRecordLimit   = 7
)

// parseDate validates a YYYY-MM-DD argument.
func parseDate(s string) (string, error) {
	if _, err := time.Parse(database.DateLayout, s); err != nil {
		return "", userError(msgInvalidDateFormat)
	}
	return s, nil
}

// parseTimeOfDay validates an HH:MM or HH:MM:SS argument and normalizes
// it to HH:MM:SS.
func parseTimeOfDay(s string) (string, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format(database.TimeLayout), nil
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format(database.TimeLayout), nil
	}
	return "", userError(msgInvalidTimeFormat)
}

func newCheckInHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, userID string, _ []string) (string, error) {
		now := deps.Now()
		date := now.Format(database.DateLayout)
		timeNow := now.Format(database.TimeLayout)

		open, err := deps.Store.OpenAttendance(ctx, userID, date)
		if err != nil {
			return "", err
		}
		if open != nil {
			return "", conflict(msgAlreadyCheckedIn(date))
		}

		rec := &database.AttendanceRecord{
			UserID:   userID,
			Date:     date,
			TimeIn:   timeNow,
			Location: defaultLocation,
		}
		if err := deps.Store.InsertAttendance(ctx, rec); err != nil {
			return "", err
		}
		return msgAttendanceRecorded("In", date, timeNow, defaultLocation), nil
	}
}

func newCheckOutHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, userID string, _ []string) (string, error) {
		now := deps.Now()
		date := now.Format(database.DateLayout)
		timeNow := now.Format(database.TimeLayout)

		rows, err := deps.Store.CloseAttendance(ctx, userID, date, timeNow, defaultLocation)
		if err != nil {
			return "", err
		}
		if rows == 0 {
			return "", conflict(msgNoActiveCheckIn(date))
		}
		return msgAttendanceRecorded("Out", date, timeNow, defaultLocation), nil
	}
}

func newMissingHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, userID string, args []string) (string, error) {
		date, err := parseDate(args[0])
		if err != nil {
			return "", err
		}
		if date > deps.Now().Format(database.DateLayout) {
			return "", userError(msgFutureDate)
		}

		timeIn, err := parseTimeOfDay(args[1])
		if err != nil {
			return "", err
		}
		timeOut, err := parseTimeOfDay(args[2])
		if err != nil {
			return "", err
		}
		if timeOut < timeIn {
			return "", userError(msgInvertedTimes)
		}

		rec := &database.AttendanceRecord{
			UserID:   userID,
			Date:     date,
			TimeIn:   timeIn,
			Location: manualEntryLocation,
		}
		rec.TimeOut.String = timeOut
		rec.TimeOut.Valid = true

		if err := deps.Store.InsertAttendance(ctx, rec); err != nil {
			return "", err
		}
		return msgMissingRecorded(date), nil
	}
}

func newMissingOutHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, userID string, args []string) (string, error) {
		date, err := parseDate(args[0])
		if err != nil {
			return "", err
		}
		if date > deps.Now().Format(database.DateLayout) {
			return "", userError(msgFutureDate)
		}

		timeOut, err := parseTimeOfDay(args[1])
		if err != nil {
			return "", err
		}

		open, err := deps.Store.OpenAttendance(ctx, userID, date)
		if err != nil {
			return "", err
		}
		if open == nil {
			return "", conflict(msgNoActiveCheckIn(date))
		}
		if timeOut < open.TimeIn {
			return "", userError(msgInvertedTimes)
		}

		if _, err := deps.Store.SetTimeOut(ctx, userID, date, timeOut); err != nil {
			return "", err
		}
		return msgMissingRecorded(date), nil
	}
}

// recentRecords fetches the caller's most recent rows and presents them
// oldest-first, so index 0 is always the oldest of the window.
func recentRecords(ctx context.Context, deps HandlerDeps, userID string) ([]database.AttendanceRecord, error) {
	recs, err := deps.Store.RecentAttendance(ctx, userID, recentRecordLimit)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
	return recs, nil
}

func newRecentRecordsHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, userID string, _ []string) (string, error) {
		recs, err := recentRecords(ctx, deps, userID)
		if err != nil {
			return "", err
		}
		if len(recs) == 0 {
			return msgNoRecentRecords, nil
		}

		var b strings.Builder
		b.WriteString("## 최근 출퇴근 기록 (Recent Attendance Records)\n")
		for i, rec := range recs {
			timeOut := "(open)"
			if rec.TimeOut.Valid {
				timeOut = rec.TimeOut.String
			}
			fmt.Fprintf(&b, "- **[%d]** %s | %s - %s | %s\n", i, rec.Date, rec.TimeIn, timeOut, rec.Location)
		}
		b.WriteString("\n`!edit` 또는 `!delete`에서 인덱스를 사용하세요. Use the index with `!edit` or `!delete`.\n")
		return b.String(), nil
	}
}

// resolveRecordIndex resolves a user-supplied index against the caller's
// recent-record window.
func resolveRecordIndex(ctx context.Context, deps HandlerDeps, userID, arg string) (database.AttendanceRecord, error) {
	recs, err := recentRecords(ctx, deps, userID)
	if err != nil {
		return database.AttendanceRecord{}, err
	}
	if len(recs) == 0 {
		return database.AttendanceRecord{}, userError(msgNoRecentRecords)
	}

	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 || idx >= len(recs) {
		return database.AttendanceRecord{}, userError(msgInvalidIndex(len(recs)))
	}
	return recs[idx], nil
}

func newEditHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, userID string, args []string) (string, error) {
		target, err := resolveRecordIndex(ctx, deps, userID, args[0])
		if err != nil {
			return "", err
		}

		newDate, err := parseDate(args[1])
		if err != nil {
			return "", err
		}
		newTimeIn, err := parseTimeOfDay(args[2])
		if err != nil {
			return "", err
		}

		upd := database.AttendanceUpdate{
			Date:   &newDate,
			TimeIn: &newTimeIn,
		}
		if len(args) > 3 {
			newTimeOut, err := parseTimeOfDay(args[3])
			if err != nil {
				return "", err
			}
			if newTimeOut < newTimeIn {
				return "", userError(msgInvertedTimes)
			}
			upd.TimeOut = &newTimeOut
		}
		if len(args) > 4 {
			upd.Location = &args[4]
		}

		if _, err := deps.Store.UpdateAttendance(ctx, userID, target.Date, upd); err != nil {
			return "", err
		}
		return msgRecordUpdated(newDate), nil
	}
}

func newDeleteHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, userID string, args []string) (string, error) {
		target, err := resolveRecordIndex(ctx, deps, userID, args[0])
		if err != nil {
			return "", err
		}

		if _, err := deps.Store.DeleteAttendance(ctx, userID, target.Date); err != nil {
			return "", err
		}
		return msgRecordDeleted(target.Date), nil
	}
}

func newVacationHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, userID string, args []string) (string, error) {
		start, err := parseDate(args[0])
		if err != nil {
			return "", err
		}
		end, err := parseDate(args[1])
		if err != nil {
			return "", err
		}

		rec := &database.VacationRecord{
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
			Reason:    strings.Join(args[2:], " "),
		}
		if err := deps.Store.InsertVacation(ctx, rec); err != nil {
			return "", err
		}
		return msgVacationRecorded(start, end), nil
	}
}

func newFixDatabaseHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, _ string, _ []string) (string, error) {
		removed, err := deps.Store.RepairOpenRecords(ctx)
		if err != nil {
			return "", err
		}
		return msgDatabaseFixed(removed), nil
	}
}
