package database

import "database/sql"

// Date and time layouts used throughout the store. Dates are YYYY-MM-DD
// strings and times HH:MM:SS strings, kept as TEXT so records sort and
// compare lexically the same way they compare chronologically.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// AttendanceRecord is one check-in, optionally closed by a check-out.
// A row with a NULL time_out is an "open" record; handler logic keeps at
// most one open record per (user_id, date).
type AttendanceRecord struct {
	UserID   string         `db:"user_id"`
	Date     string         `db:"date"`
	TimeIn   string         `db:"time_in"`
	TimeOut  sql.NullString `db:"time_out"`
	Location string         `db:"location"`
}

// Open reports whether the record has no check-out yet.
func (r AttendanceRecord) Open() bool {
	return !r.TimeOut.Valid
}

// VacationRecord is an append-only vacation entry covering an inclusive
// date range.
type VacationRecord struct {
	UserID    string `db:"user_id"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
	Reason    string `db:"reason"`
}

// MemberInfo is a directory entry keyed by chat user ID.
type MemberInfo struct {
	UserID   string `db:"user_id"`
	Name     string `db:"name"`
	Position string `db:"position"`
	Phone    string `db:"phone"`
	Email    string `db:"email"`
	Birthday string `db:"birthday"`
}

// AttendanceUpdate selects which attendance fields to overwrite; nil
// fields keep their prior value.
type AttendanceUpdate struct {
	Date     *string
	TimeIn   *string
	TimeOut  *string
	Location *string
}

// MemberUpdate selects which member fields to overwrite; nil fields keep
// their prior value.
type MemberUpdate struct {
	Position *string
	Phone    *string
	Email    *string
	Birthday *string
}
