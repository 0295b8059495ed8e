package handlers_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jwlab/attendbot/internal/bot/handlers"
	"github.com/jwlab/attendbot/internal/database"
)

func TestCheckInAndOut(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)
	ctx := context.Background()

	// Check-out before check-in has no record to close.
	got := d.Dispatch(ctx, "u1", "!out")
	if !strings.Contains(got, "No active check-in") {
		t.Fatalf("Dispatch(!out) = %q, want no-active-check-in conflict", got)
	}

	got = d.Dispatch(ctx, "u1", "!in")
	if !strings.Contains(got, "2025-06-03") || !strings.Contains(got, "10:00:00") {
		t.Fatalf("Dispatch(!in) = %q, want record with today's date and time", got)
	}

	got = d.Dispatch(ctx, "u1", "!in")
	if !strings.Contains(got, "Already checked in") {
		t.Fatalf("second Dispatch(!in) = %q, want conflict", got)
	}

	got = d.Dispatch(ctx, "u1", "!out")
	if !strings.Contains(got, "Out") || !strings.Contains(got, "2025-06-03") {
		t.Fatalf("Dispatch(!out) = %q, want check-out record", got)
	}

	// The record is now closed in the store.
	recs, err := deps.Store.AttendanceForDate(ctx, "u1", "2025-06-03")
	if err != nil {
		t.Fatalf("AttendanceForDate() returned error: %v", err)
	}
	if len(recs) != 1 || recs[0].Open() {
		t.Errorf("records after check-out = %+v, want one closed record", recs)
	}
}

func TestMissingEntry(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "Valid entry",
			message: "!missing 2025-06-02 09:00 18:00",
			want:    "Missing Attendance Recorded",
		},
		{
			name:    "Short time form accepted",
			message: "!missing 2025-05-30 09:30 18:30",
			want:    "Missing Attendance Recorded",
		},
		{
			name:    "Future date rejected",
			message: "!missing 2025-06-04 09:00 18:00",
			want:    "Future date",
		},
		{
			name:    "Bad date rejected",
			message: "!missing 2025-13-40 09:00 18:00",
			want:    "Invalid date format",
		},
		{
			name:    "Bad time rejected",
			message: "!missing 2025-06-02 9am 18:00",
			want:    "Invalid time format",
		},
		{
			name:    "Inverted times rejected",
			message: "!missing 2025-06-02 18:00 09:00",
			want:    "Invalid time range",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := d.Dispatch(ctx, "u1", tc.message)
			if !strings.Contains(got, tc.want) {
				t.Errorf("Dispatch(%q) = %q, want message containing %q", tc.message, got, tc.want)
			}
		})
	}

	// The valid entries landed as closed manual records.
	recs, err := deps.Store.AttendanceForDate(ctx, "u1", "2025-06-02")
	if err != nil {
		t.Fatalf("AttendanceForDate() returned error: %v", err)
	}
	if len(recs) != 1 || recs[0].Open() || recs[0].Location != "Manual Entry" {
		t.Errorf("manual record = %+v, want closed record at Manual Entry", recs)
	}
}

func TestMissingOut(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)
	ctx := context.Background()

	// No open record yet.
	got := d.Dispatch(ctx, "u1", "!missingout 2025-06-02 18:00")
	if !strings.Contains(got, "No active check-in") {
		t.Fatalf("Dispatch(!missingout) = %q, want no-active-check-in conflict", got)
	}

	err := deps.Store.InsertAttendance(ctx, &database.AttendanceRecord{
		UserID: "u1", Date: "2025-06-02", TimeIn: "09:00:00", Location: "Not specified",
	})
	if err != nil {
		t.Fatalf("InsertAttendance() returned error: %v", err)
	}

	// Check-out earlier than the open check-in.
	got = d.Dispatch(ctx, "u1", "!missingout 2025-06-02 08:00")
	if !strings.Contains(got, "Invalid time range") {
		t.Fatalf("early Dispatch(!missingout) = %q, want time-range error", got)
	}

	got = d.Dispatch(ctx, "u1", "!missingout 2025-06-02 18:00")
	if !strings.Contains(got, "Missing Attendance Recorded") {
		t.Fatalf("Dispatch(!missingout) = %q, want success", got)
	}

	open, err := deps.Store.OpenAttendance(ctx, "u1", "2025-06-02")
	if err != nil {
		t.Fatalf("OpenAttendance() returned error: %v", err)
	}
	if open != nil {
		t.Errorf("record still open after !missingout: %+v", open)
	}
}

func TestRecentRecordsAndEdit(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)
	ctx := context.Background()

	got := d.Dispatch(ctx, "u1", "!recentrecord")
	if !strings.Contains(got, "No recent records") {
		t.Fatalf("Dispatch(!recentrecord) = %q, want empty-history message", got)
	}

	for _, date := range []string{"2025-06-01", "2025-06-02"} {
		err := deps.Store.InsertAttendance(ctx, &database.AttendanceRecord{
			UserID: "u1", Date: date, TimeIn: "09:00:00", Location: "Not specified",
		})
		if err != nil {
			t.Fatalf("InsertAttendance() returned error: %v", err)
		}
	}

	// Index 0 is the oldest record of the window.
	got = d.Dispatch(ctx, "u1", "!recentrecord")
	if !strings.Contains(got, "[0]** 2025-06-01") || !strings.Contains(got, "[1]** 2025-06-02") {
		t.Fatalf("Dispatch(!recentrecord) = %q, want indexed oldest-first listing", got)
	}

	got = d.Dispatch(ctx, "u1", "!edit 9 2025-06-01 08:00")
	if !strings.Contains(got, "Invalid index") {
		t.Fatalf("Dispatch(!edit 9 ...) = %q, want invalid-index error", got)
	}

	got = d.Dispatch(ctx, "u1", "!edit 0 2025-06-01 08:00 17:00 Home")
	if !strings.Contains(got, "Record Updated") {
		t.Fatalf("Dispatch(!edit) = %q, want update confirmation", got)
	}

	recs, err := deps.Store.AttendanceForDate(ctx, "u1", "2025-06-01")
	if err != nil {
		t.Fatalf("AttendanceForDate() returned error: %v", err)
	}
	if len(recs) != 1 || recs[0].TimeIn != "08:00:00" || recs[0].TimeOut.String != "17:00:00" || recs[0].Location != "Home" {
		t.Errorf("edited record = %+v, want 08:00:00-17:00:00 at Home", recs)
	}
}

func TestDeleteRecord(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)
	ctx := context.Background()

	err := deps.Store.InsertAttendance(ctx, &database.AttendanceRecord{
		UserID: "u1", Date: "2025-06-02", TimeIn: "09:00:00", Location: "Not specified",
	})
	if err != nil {
		t.Fatalf("InsertAttendance() returned error: %v", err)
	}

	got := d.Dispatch(ctx, "u1", "!delete 0")
	if !strings.Contains(got, "Record Deleted") || !strings.Contains(got, "2025-06-02") {
		t.Fatalf("Dispatch(!delete 0) = %q, want deletion confirmation", got)
	}

	recs, err := deps.Store.AttendanceForDate(ctx, "u1", "2025-06-02")
	if err != nil {
		t.Fatalf("AttendanceForDate() returned error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("records after delete = %+v, want none", recs)
	}
}

func TestVacation(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)
	ctx := context.Background()

	got := d.Dispatch(ctx, "u1", "!vacation 2025-06-09 2025-06-11 family trip")
	if !strings.Contains(got, "Vacation Record") || !strings.Contains(got, "2025-06-09") {
		t.Fatalf("Dispatch(!vacation) = %q, want vacation confirmation", got)
	}

	rec, err := deps.Store.VacationCovering(ctx, "u1", "2025-06-10")
	if err != nil {
		t.Fatalf("VacationCovering() returned error: %v", err)
	}
	if rec == nil || rec.Reason != "family trip" {
		t.Errorf("VacationCovering() = %+v, want recorded vacation with multi-word reason", rec)
	}
}

func TestFixDatabase(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	d := handlers.NewDispatcher(deps)
	ctx := context.Background()

	for _, timeIn := range []string{"09:00:00", "09:05:00"} {
		err := deps.Store.InsertAttendance(ctx, &database.AttendanceRecord{
			UserID: "u1", Date: "2025-06-02", TimeIn: timeIn, Location: "Not specified",
		})
		if err != nil {
			t.Fatalf("InsertAttendance() returned error: %v", err)
		}
	}

	got := d.Dispatch(ctx, "u1", "!fixdatabase")
	if !strings.Contains(got, "Removed 1 duplicate") {
		t.Errorf("Dispatch(!fixdatabase) = %q, want one removed row", got)
	}
}
