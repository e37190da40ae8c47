package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/worklogd/worklogd/internal/domain/workday"
	"github.com/worklogd/worklogd/internal/repository"
)

// WorkDayRepository implements repository.WorkDayRepository for SQLite
type WorkDayRepository struct {
	db *DB
}

// NewWorkDayRepository creates a new WorkDayRepository
func NewWorkDayRepository(db *DB) *WorkDayRepository {
	return &WorkDayRepository{db: db}
}

// Current retrieves the owner's most recent work day with children.
func (r *WorkDayRepository) Current(ctx context.Context, ownerID string) (*workday.WorkDay, error) {
	query := `
		SELECT id, owner_id, status, started_at, ended_at, initial_activity, current_activity
		FROM work_days
		WHERE owner_id = ?
		ORDER BY rowid DESC
		LIMIT 1
	`
	return r.queryDay(ctx, query, ownerID)
}

// Get retrieves a work day by ID, scoped to the owner.
func (r *WorkDayRepository) Get(ctx context.Context, ownerID, id string) (*workday.WorkDay, error) {
	query := `
		SELECT id, owner_id, status, started_at, ended_at, initial_activity, current_activity
		FROM work_days
		WHERE id = ? AND owner_id = ?
	`
	return r.queryDay(ctx, query, id, ownerID)
}

// Save upserts the aggregate and its children in a single transaction.
// Either the whole aggregate lands or none of it does.
func (r *WorkDayRepository) Save(ctx context.Context, day *workday.WorkDay) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	dayQuery := `
		INSERT INTO work_days (id, owner_id, status, started_at, ended_at, initial_activity, current_activity)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			current_activity = excluded.current_activity
	`
	if _, err := tx.ExecContext(ctx, dayQuery,
		day.ID,
		day.OwnerID,
		day.Status,
		nullableTime(day.StartedAt),
		nullableTime(day.EndedAt),
		day.InitialActivity,
		day.CurrentActivity,
	); err != nil {
		return fmt.Errorf("failed to save work day: %w", err)
	}

	meetingQuery := `
		INSERT INTO meetings (
			id, work_day_id, title, description, meeting_type, location,
			attendee_count, status, started_at, stopped_at, duration_minutes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			stopped_at = excluded.stopped_at,
			duration_minutes = excluded.duration_minutes
	`
	for _, m := range day.Meetings {
		if _, err := tx.ExecContext(ctx, meetingQuery,
			m.ID,
			m.WorkDayID,
			m.Title,
			m.Description,
			m.MeetingType,
			m.Location,
			m.AttendeeCount,
			m.Status,
			m.StartedAt,
			nullableTime(m.StoppedAt),
			m.DurationMinutes,
		); err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to save meeting: %w", err)
		}
	}

	// Entries are immutable; rows already present are left untouched.
	entryQuery := `
		INSERT OR IGNORE INTO time_entries (
			id, work_day_id, description, duration_minutes, recorded_at,
			commit_hash, jira_ticket, tags, billable
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, e := range day.Entries {
		tags, err := json.Marshal(e.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}
		if _, err := tx.ExecContext(ctx, entryQuery,
			e.ID,
			e.WorkDayID,
			e.Description,
			e.DurationMinutes,
			e.RecordedAt,
			e.CommitHash,
			e.JiraTicket,
			string(tags),
			e.Billable,
		); err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to save time entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit work day: %w", err)
	}
	return nil
}

// ListRange returns the owner's work days started within [from, to),
// oldest first, each with children.
func (r *WorkDayRepository) ListRange(ctx context.Context, ownerID string, from, to time.Time) ([]workday.WorkDay, error) {
	query := `
		SELECT id, owner_id, status, started_at, ended_at, initial_activity, current_activity
		FROM work_days
		WHERE owner_id = ? AND started_at >= ? AND started_at < ?
		ORDER BY started_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list work days: %w", err)
	}
	defer rows.Close()

	var days []workday.WorkDay
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, *day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work days: %w", err)
	}

	for i := range days {
		if err := r.loadChildren(ctx, &days[i]); err != nil {
			return nil, err
		}
	}
	return days, nil
}

func (r *WorkDayRepository) queryDay(ctx context.Context, query string, args ...any) (*workday.WorkDay, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get work day: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get work day: %w", err)
		}
		return nil, repository.ErrNotFound
	}
	day, err := scanDay(rows)
	if err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get work day: %w", err)
	}

	if err := r.loadChildren(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

func scanDay(rows *sql.Rows) (*workday.WorkDay, error) {
	var day workday.WorkDay
	var startedAt, endedAt sql.NullTime
	if err := rows.Scan(
		&day.ID,
		&day.OwnerID,
		&day.Status,
		&startedAt,
		&endedAt,
		&day.InitialActivity,
		&day.CurrentActivity,
	); err != nil {
		return nil, fmt.Errorf("failed to scan work day: %w", err)
	}
	if startedAt.Valid {
		day.StartedAt = &startedAt.Time
	}
	if endedAt.Valid {
		day.EndedAt = &endedAt.Time
	}
	return &day, nil
}

func (r *WorkDayRepository) loadChildren(ctx context.Context, day *workday.WorkDay) error {
	meetings, err := r.loadMeetings(ctx, day.ID)
	if err != nil {
		return err
	}
	day.Meetings = meetings

	entries, err := r.loadEntries(ctx, day.ID)
	if err != nil {
		return err
	}
	day.Entries = entries
	return nil
}

func (r *WorkDayRepository) loadMeetings(ctx context.Context, workDayID string) ([]workday.Meeting, error) {
	query := `
		SELECT id, work_day_id, title, description, meeting_type, location,
		       attendee_count, status, started_at, stopped_at, duration_minutes
		FROM meetings
		WHERE work_day_id = ?
		ORDER BY started_at ASC, rowid ASC
	`
	rows, err := r.db.QueryContext(ctx, query, workDayID)
	if err != nil {
		return nil, fmt.Errorf("failed to load meetings: %w", err)
	}
	defer rows.Close()

	meetings := []workday.Meeting{}
	for rows.Next() {
		var m workday.Meeting
		var stoppedAt sql.NullTime
		if err := rows.Scan(
			&m.ID,
			&m.WorkDayID,
			&m.Title,
			&m.Description,
			&m.MeetingType,
			&m.Location,
			&m.AttendeeCount,
			&m.Status,
			&m.StartedAt,
			&stoppedAt,
			&m.DurationMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		if stoppedAt.Valid {
			m.StoppedAt = &stoppedAt.Time
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meetings: %w", err)
	}
	return meetings, nil
}

func (r *WorkDayRepository) loadEntries(ctx context.Context, workDayID string) ([]workday.TimeEntry, error) {
	// rowid preserves insertion order; entries are never reordered.
	query := `
		SELECT id, work_day_id, description, duration_minutes, recorded_at,
		       commit_hash, jira_ticket, tags, billable
		FROM time_entries
		WHERE work_day_id = ?
		ORDER BY rowid ASC
	`
	rows, err := r.db.QueryContext(ctx, query, workDayID)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}
	defer rows.Close()

	entries := []workday.TimeEntry{}
	for rows.Next() {
		var e workday.TimeEntry
		var tags string
		if err := rows.Scan(
			&e.ID,
			&e.WorkDayID,
			&e.Description,
			&e.DurationMinutes,
			&e.RecordedAt,
			&e.CommitHash,
			&e.JiraTicket,
			&tags,
			&e.Billable,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		if tags != "" {
			if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
				return nil, fmt.Errorf("failed to decode tags: %w", err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entries: %w", err)
	}
	return entries, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
