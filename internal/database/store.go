package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	sqlitedrv "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// ErrMemberExists is returned when inserting a member whose user_id is
// already present. It is derived from the sqlite uniqueness-violation
// signal so callers can produce a specific conflict message.
var ErrMemberExists = errors.New("member already exists")

// Store defines the data access operations for the attendance bot.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// OpenAttendance returns the open record for (user, date), or nil, nil
	// if the user has no open record that day.
	OpenAttendance(ctx context.Context, userID, date string) (*AttendanceRecord, error)

	// AttendanceForDate returns all of a user's records for one date.
	AttendanceForDate(ctx context.Context, userID, date string) ([]AttendanceRecord, error)

	// InsertAttendance inserts a new attendance record.
	InsertAttendance(ctx context.Context, rec *AttendanceRecord) error

	// CloseAttendance sets time_out and location on the user's open record
	// for the date. Returns the number of rows updated (0 = no open record).
	CloseAttendance(ctx context.Context, userID, date, timeOut, location string) (int64, error)

	// SetTimeOut fills in time_out on the user's open record for an
	// arbitrary date. Returns the number of rows updated.
	SetTimeOut(ctx context.Context, userID, date, timeOut string) (int64, error)

	// RecentAttendance returns up to limit of the user's most recent
	// records, newest date first.
	RecentAttendance(ctx context.Context, userID string, limit int) ([]AttendanceRecord, error)

	// UpdateAttendance overwrites the selected fields of the user's record
	// for the date. Returns the number of rows updated.
	UpdateAttendance(ctx context.Context, userID, date string, upd AttendanceUpdate) (int64, error)

	// DeleteAttendance removes the user's records for the date. Returns the
	// number of rows deleted.
	DeleteAttendance(ctx context.Context, userID, date string) (int64, error)

	// MonthAttendance returns every user's records for a YYYY-MM month.
	MonthAttendance(ctx context.Context, yearMonth string) ([]AttendanceRecord, error)

	// CloseOpenForDate closes every open record on the date with the given
	// time_out, returning the affected user IDs.
	CloseOpenForDate(ctx context.Context, date, timeOut string) ([]string, error)

	// RepairOpenRecords removes duplicate open records, keeping the oldest
	// open row per (user, date). Returns the number of rows removed.
	RepairOpenRecords(ctx context.Context) (int64, error)

	// InsertVacation appends a vacation record.
	InsertVacation(ctx context.Context, rec *VacationRecord) error

	// VacationCovering returns a vacation record of the user covering the
	// date, or nil, nil if none does.
	VacationCovering(ctx context.Context, userID, date string) (*VacationRecord, error)

	// InsertMember adds a directory entry. Returns ErrMemberExists if the
	// user_id is already present.
	InsertMember(ctx context.Context, m *MemberInfo) error

	// UpdateMember overwrites the selected fields of a member. Returns the
	// number of rows updated (0 = member absent).
	UpdateMember(ctx context.Context, userID string, upd MemberUpdate) (int64, error)

	// DeleteMember removes a member. Returns the number of rows deleted.
	DeleteMember(ctx context.Context, userID string) (int64, error)

	// Member returns a directory entry, or nil, nil if absent.
	Member(ctx context.Context, userID string) (*MemberInfo, error)

	// MembersBornOn returns members whose birthday matches an MM-DD
	// month-day, regardless of birth year.
	MembersBornOn(ctx context.Context, monthDay string) ([]MemberInfo, error)

	// MembersBornInMonth returns members whose birthday falls in an MM month.
	MembersBornInMonth(ctx context.Context, month string) ([]MemberInfo, error)

	// RunSQLMaintenance performs database maintenance (VACUUM).
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore implements Store using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by a connected sqlx.DB.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) OpenAttendance(ctx context.Context, userID, date string) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	query := `SELECT user_id, date, time_in, time_out, location
	          FROM attendance
	          WHERE user_id = ? AND date = ? AND time_out IS NULL
	          LIMIT 1`

	err := s.db.GetContext(ctx, &rec, query, userID, date)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting open attendance", "user_id", userID, "date", date, "error", err)
		return nil, fmt.Errorf("failed to get open attendance for %s on %s: %w", userID, date, err)
	}
	return &rec, nil
}

func (s *sqlxStore) AttendanceForDate(ctx context.Context, userID, date string) ([]AttendanceRecord, error) {
	var recs []AttendanceRecord
	query := `SELECT user_id, date, time_in, time_out, location
	          FROM attendance
	          WHERE user_id = ? AND date = ?
	          ORDER BY time_in ASC`

	if err := s.db.SelectContext(ctx, &recs, query, userID, date); err != nil {
		s.logger.ErrorContext(ctx, "Error getting attendance for date", "user_id", userID, "date", date, "error", err)
		return nil, fmt.Errorf("failed to get attendance for %s on %s: %w", userID, date, err)
	}
	return recs, nil
}

func (s *sqlxStore) InsertAttendance(ctx context.Context, rec *AttendanceRecord) error {
	if rec == nil {
		return fmt.Errorf("cannot insert nil attendance record")
	}

	query := `INSERT INTO attendance (user_id, date, time_in, time_out, location)
	          VALUES (:user_id, :date, :time_in, :time_out, :location)`

	if _, err := s.db.NamedExecContext(ctx, query, rec); err != nil {
		s.logger.ErrorContext(ctx, "Error inserting attendance", "user_id", rec.UserID, "date", rec.Date, "error", err)
		return fmt.Errorf("failed to insert attendance for %s on %s: %w", rec.UserID, rec.Date, err)
	}

	s.logger.DebugContext(ctx, "Attendance inserted", "user_id", rec.UserID, "date", rec.Date)
	return nil
}

func (s *sqlxStore) CloseAttendance(ctx context.Context, userID, date, timeOut, location string) (int64, error) {
	query := `UPDATE attendance SET time_out = ?, location = ?
	          WHERE user_id = ? AND date = ? AND time_out IS NULL`

	result, err := s.db.ExecContext(ctx, query, timeOut, location, userID, date)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error closing attendance", "user_id", userID, "date", date, "error", err)
		return 0, fmt.Errorf("failed to close attendance for %s on %s: %w", userID, date, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func (s *sqlxStore) SetTimeOut(ctx context.Context, userID, date, timeOut string) (int64, error) {
	query := `UPDATE attendance SET time_out = ?
	          WHERE user_id = ? AND date = ? AND time_out IS NULL`

	result, err := s.db.ExecContext(ctx, query, timeOut, userID, date)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error setting time_out", "user_id", userID, "date", date, "error", err)
		return 0, fmt.Errorf("failed to set time_out for %s on %s: %w", userID, date, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func (s *sqlxStore) RecentAttendance(ctx context.Context, userID string, limit int) ([]AttendanceRecord, error) {
	if limit <= 0 {
		limit = 7
	}

	var recs []AttendanceRecord
	query := `SELECT user_id, date, time_in, time_out, location
	          FROM attendance
	          WHERE user_id = ?
	          ORDER BY date DESC, time_in DESC
	          LIMIT ?`

	if err := s.db.SelectContext(ctx, &recs, query, userID, limit); err != nil {
		s.logger.ErrorContext(ctx, "Error getting recent attendance", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get recent attendance for %s: %w", userID, err)
	}
	return recs, nil
}

func (s *sqlxStore) UpdateAttendance(ctx context.Context, userID, date string, upd AttendanceUpdate) (int64, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 6)

	if upd.TimeIn != nil {
		sets = append(sets, "time_in = ?")
		args = append(args, *upd.TimeIn)
	}
	if upd.TimeOut != nil {
		sets = append(sets, "time_out = ?")
		args = append(args, *upd.TimeOut)
	}
	if upd.Location != nil {
		sets = append(sets, "location = ?")
		args = append(args, *upd.Location)
	}
	if upd.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *upd.Date)
	}
	if len(sets) == 0 {
		return 0, nil
	}

	query := "UPDATE attendance SET " + strings.Join(sets, ", ") + " WHERE user_id = ? AND date = ?"
	args = append(args, userID, date)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error updating attendance", "user_id", userID, "date", date, "error", err)
		return 0, fmt.Errorf("failed to update attendance for %s on %s: %w", userID, date, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func (s *sqlxStore) DeleteAttendance(ctx context.Context, userID, date string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM attendance WHERE user_id = ? AND date = ?`, userID, date)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting attendance", "user_id", userID, "date", date, "error", err)
		return 0, fmt.Errorf("failed to delete attendance for %s on %s: %w", userID, date, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func (s *sqlxStore) MonthAttendance(ctx context.Context, yearMonth string) ([]AttendanceRecord, error) {
	var recs []AttendanceRecord
	query := `SELECT user_id, date, time_in, time_out, location
	          FROM attendance
	          WHERE substr(date, 1, 7) = ?
	          ORDER BY user_id, date, time_in`

	if err := s.db.SelectContext(ctx, &recs, query, yearMonth); err != nil {
		s.logger.ErrorContext(ctx, "Error getting month attendance", "year_month", yearMonth, "error", err)
		return nil, fmt.Errorf("failed to get attendance for %s: %w", yearMonth, err)
	}
	return recs, nil
}

func (s *sqlxStore) CloseOpenForDate(ctx context.Context, date, timeOut string) ([]string, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	var userIDs []string
	selectQuery := `SELECT DISTINCT user_id FROM attendance WHERE date = ? AND time_out IS NULL`
	if err := tx.SelectContext(ctx, &userIDs, selectQuery, date); err != nil {
		return nil, fmt.Errorf("failed to list open records for %s: %w", date, err)
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	updateQuery := `UPDATE attendance SET time_out = ? WHERE date = ? AND time_out IS NULL`
	if _, err := tx.ExecContext(ctx, updateQuery, timeOut, date); err != nil {
		return nil, fmt.Errorf("failed to close open records for %s: %w", date, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	s.logger.InfoContext(ctx, "Closed open attendance records", "date", date, "users", len(userIDs))
	return userIDs, nil
}

func (s *sqlxStore) RepairOpenRecords(ctx context.Context) (int64, error) {
	// Keep the oldest open row per (user, date); surplus open rows violate
	// the one-open-record invariant and come from interrupted handlers.
	query := `DELETE FROM attendance
	          WHERE time_out IS NULL
	            AND rowid NOT IN (
	              SELECT MIN(rowid) FROM attendance
	              WHERE time_out IS NULL
	              GROUP BY user_id, date
	            )`

	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error repairing open records", "error", err)
		return 0, fmt.Errorf("failed to repair open records: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected > 0 {
		s.logger.InfoContext(ctx, "Removed duplicate open attendance rows", "count", affected)
	}
	return affected, nil
}

func (s *sqlxStore) InsertVacation(ctx context.Context, rec *VacationRecord) error {
	if rec == nil {
		return fmt.Errorf("cannot insert nil vacation record")
	}

	query := `INSERT INTO vacations (user_id, start_date, end_date, reason)
	          VALUES (:user_id, :start_date, :end_date, :reason)`

	if _, err := s.db.NamedExecContext(ctx, query, rec); err != nil {
		s.logger.ErrorContext(ctx, "Error inserting vacation", "user_id", rec.UserID, "error", err)
		return fmt.Errorf("failed to insert vacation for %s: %w", rec.UserID, err)
	}
	return nil
}

func (s *sqlxStore) VacationCovering(ctx context.Context, userID, date string) (*VacationRecord, error) {
	var rec VacationRecord
	query := `SELECT user_id, start_date, end_date, reason
	          FROM vacations
	          WHERE user_id = ? AND ? BETWEEN start_date AND end_date
	          LIMIT 1`

	err := s.db.GetContext(ctx, &rec, query, userID, date)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting vacation", "user_id", userID, "date", date, "error", err)
		return nil, fmt.Errorf("failed to get vacation for %s on %s: %w", userID, date, err)
	}
	return &rec, nil
}

func (s *sqlxStore) InsertMember(ctx context.Context, m *MemberInfo) error {
	if m == nil {
		return fmt.Errorf("cannot insert nil member")
	}

	query := `INSERT INTO members_info (user_id, name, position, phone, email, birthday)
	          VALUES (:user_id, :name, :position, :phone, :email, :birthday)`

	if _, err := s.db.NamedExecContext(ctx, query, m); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrMemberExists, m.UserID)
		}
		s.logger.ErrorContext(ctx, "Error inserting member", "user_id", m.UserID, "error", err)
		return fmt.Errorf("failed to insert member %s: %w", m.UserID, err)
	}

	s.logger.DebugContext(ctx, "Member inserted", "user_id", m.UserID)
	return nil
}

func (s *sqlxStore) UpdateMember(ctx context.Context, userID string, upd MemberUpdate) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	// One statement per supplied field; kept separate so a partial update
	// request touches exactly the columns it names.
	fields := []struct {
		column string
		value  *string
	}{
		{"position", upd.Position},
		{"phone", upd.Phone},
		{"email", upd.Email},
		{"birthday", upd.Birthday},
	}

	var affected int64
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		result, err := tx.ExecContext(ctx,
			"UPDATE members_info SET "+f.column+" = ? WHERE user_id = ?", *f.value, userID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Error updating member field", "user_id", userID, "field", f.column, "error", err)
			return 0, fmt.Errorf("failed to update member %s field %s: %w", userID, f.column, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read affected rows: %w", err)
		}
		if rows > affected {
			affected = rows
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	return affected, nil
}

func (s *sqlxStore) DeleteMember(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM members_info WHERE user_id = ?`, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting member", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to delete member %s: %w", userID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func (s *sqlxStore) Member(ctx context.Context, userID string) (*MemberInfo, error) {
	var m MemberInfo
	query := `SELECT user_id, name, position, phone, email, birthday
	          FROM members_info WHERE user_id = ?`

	err := s.db.GetContext(ctx, &m, query, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting member", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get member %s: %w", userID, err)
	}
	return &m, nil
}

func (s *sqlxStore) MembersBornOn(ctx context.Context, monthDay string) ([]MemberInfo, error) {
	var members []MemberInfo
	// Birthdays are YYYY-MM-DD; the month-day component starts at offset 6.
	query := `SELECT user_id, name, position, phone, email, birthday
	          FROM members_info
	          WHERE substr(birthday, 6, 5) = ?
	          ORDER BY name`

	if err := s.db.SelectContext(ctx, &members, query, monthDay); err != nil {
		s.logger.ErrorContext(ctx, "Error getting members born on", "month_day", monthDay, "error", err)
		return nil, fmt.Errorf("failed to get members born on %s: %w", monthDay, err)
	}
	return members, nil
}

func (s *sqlxStore) MembersBornInMonth(ctx context.Context, month string) ([]MemberInfo, error) {
	var members []MemberInfo
	query := `SELECT user_id, name, position, phone, email, birthday
	          FROM members_info
	          WHERE substr(birthday, 6, 2) = ?
	          ORDER BY name`

	if err := s.db.SelectContext(ctx, &members, query, month); err != nil {
		s.logger.ErrorContext(ctx, "Error getting members born in month", "month", month, "error", err)
		return nil, fmt.Errorf("failed to get members born in month %s: %w", month, err)
	}
	return members, nil
}

func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite.
	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed")
	return nil
}

// isUniqueViolation reports whether err is a sqlite primary-key or unique
// constraint failure.
func isUniqueViolation(err error) bool {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT,
		sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY,
		sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}
