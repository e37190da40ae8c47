package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/worklogd/worklogd/internal/domain/workday"
	"github.com/worklogd/worklogd/internal/repository"
)

var testStart = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func testDay(id, ownerID string) *workday.WorkDay {
	started := testStart
	return &workday.WorkDay{
		ID:              id,
		OwnerID:         ownerID,
		Status:          workday.StatusActive,
		StartedAt:       &started,
		InitialActivity: "triage inbox",
		CurrentActivity: "triage inbox",
		Meetings:        []workday.Meeting{},
		Entries:         []workday.TimeEntry{},
	}
}

func TestWorkDayRepository_SaveAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkDayRepository(db)
	ctx := context.Background()

	day := testDay("day1", "owner1")
	require.NoError(t, repo.Save(ctx, day))

	retrieved, err := repo.Get(ctx, "owner1", "day1")
	require.NoError(t, err)
	require.Equal(t, "day1", retrieved.ID)
	require.Equal(t, workday.StatusActive, retrieved.Status)
	require.NotNil(t, retrieved.StartedAt)
	require.True(t, retrieved.StartedAt.Equal(testStart))
	require.Equal(t, "triage inbox", retrieved.CurrentActivity)
	require.Empty(t, retrieved.Meetings)
	require.Empty(t, retrieved.Entries)

	_, err = repo.Get(ctx, "owner1", "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWorkDayRepository_OwnerIsolation(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkDayRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testDay("day1", "owner1")))

	_, err := repo.Get(ctx, "owner2", "day1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Current(ctx, "owner2")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWorkDayRepository_CurrentReturnsLatest(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkDayRepository(db)
	ctx := context.Background()

	older := testDay("day1", "owner1")
	older.Status = workday.StatusEnded
	ended := testStart.Add(8 * time.Hour)
	older.EndedAt = &ended
	require.NoError(t, repo.Save(ctx, older))

	newer := testDay("day2", "owner1")
	newerStart := testStart.Add(24 * time.Hour)
	newer.StartedAt = &newerStart
	require.NoError(t, repo.Save(ctx, newer))

	current, err := repo.Current(ctx, "owner1")
	require.NoError(t, err)
	require.Equal(t, "day2", current.ID)
}

func TestWorkDayRepository_SavePersistsChildren(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkDayRepository(db)
	ctx := context.Background()

	day := testDay("day1", "owner1")
	stoppedAt := testStart.Add(31 * time.Minute)
	day.Meetings = append(day.Meetings, workday.Meeting{
		ID:              "m1",
		WorkDayID:       "day1",
		Title:           "standup",
		MeetingType:     workday.MeetingStandup,
		AttendeeCount:   6,
		Status:          workday.MeetingStopped,
		StartedAt:       testStart.Add(30 * time.Minute),
		StoppedAt:       &stoppedAt,
		DurationMinutes: 1,
	})
	day.Entries = append(day.Entries, workday.TimeEntry{
		ID:              "e1",
		WorkDayID:       "day1",
		Description:     "implemented retries",
		DurationMinutes: 90,
		RecordedAt:      testStart.Add(2 * time.Hour),
		JiraTicket:      "WL-17",
		Tags:            []string{"backend", "resilience"},
		Billable:        true,
	})
	require.NoError(t, repo.Save(ctx, day))

	retrieved, err := repo.Get(ctx, "owner1", "day1")
	require.NoError(t, err)
	require.Len(t, retrieved.Meetings, 1)
	require.Equal(t, workday.MeetingStandup, retrieved.Meetings[0].MeetingType)
	require.Equal(t, 1, retrieved.Meetings[0].DurationMinutes)
	require.NotNil(t, retrieved.Meetings[0].StoppedAt)
	require.Len(t, retrieved.Entries, 1)
	require.Equal(t, []string{"backend", "resilience"}, retrieved.Entries[0].Tags)
	require.True(t, retrieved.Entries[0].Billable)
	require.Equal(t, "WL-17", retrieved.Entries[0].JiraTicket)
}

func TestWorkDayRepository_SaveUpdatesMeetingStatus(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkDayRepository(db)
	ctx := context.Background()

	day := testDay("day1", "owner1")
	day.Meetings = append(day.Meetings, workday.Meeting{
		ID:          "m1",
		WorkDayID:   "day1",
		Title:       "sync",
		MeetingType: workday.MeetingOther,
		Status:      workday.MeetingRunning,
		StartedAt:   testStart,
	})
	require.NoError(t, repo.Save(ctx, day))

	stoppedAt := testStart.Add(20 * time.Minute)
	day.Meetings[0].Status = workday.MeetingStopped
	day.Meetings[0].StoppedAt = &stoppedAt
	day.Meetings[0].DurationMinutes = 20
	require.NoError(t, repo.Save(ctx, day))

	retrieved, err := repo.Get(ctx, "owner1", "day1")
	require.NoError(t, err)
	require.Len(t, retrieved.Meetings, 1)
	require.Equal(t, workday.MeetingStopped, retrieved.Meetings[0].Status)
	require.Equal(t, 20, retrieved.Meetings[0].DurationMinutes)
}

func TestWorkDayRepository_EntriesImmutable(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkDayRepository(db)
	ctx := context.Background()

	day := testDay("day1", "owner1")
	day.Entries = append(day.Entries, workday.TimeEntry{
		ID:              "e1",
		WorkDayID:       "day1",
		Description:     "original",
		DurationMinutes: 30,
		RecordedAt:      testStart,
	})
	require.NoError(t, repo.Save(ctx, day))

	// A mutated in-memory copy must not rewrite the stored row.
	day.Entries[0].Description = "tampered"
	require.NoError(t, repo.Save(ctx, day))

	retrieved, err := repo.Get(ctx, "owner1", "day1")
	require.NoError(t, err)
	require.Equal(t, "original", retrieved.Entries[0].Description)
}

func TestWorkDayRepository_ListRange(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkDayRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		day := testDay(string(rune('a'+i)), "owner1")
		started := testStart.AddDate(0, 0, i)
		day.StartedAt = &started
		require.NoError(t, repo.Save(ctx, day))
	}

	days, err := repo.ListRange(ctx, "owner1", testStart, testStart.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, days, 2)
	// Oldest first; the range end is exclusive.
	require.Equal(t, "a", days[0].ID)
	require.Equal(t, "b", days[1].ID)

	days, err = repo.ListRange(ctx, "owner2", testStart, testStart.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Empty(t, days)
}

func TestWorkDayRepository_MeetingRequiresDay(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkDayRepository(db)
	ctx := context.Background()

	day := testDay("day1", "owner1")
	day.Meetings = append(day.Meetings, workday.Meeting{
		ID:          "m1",
		WorkDayID:   "ghost",
		Title:       "orphan",
		MeetingType: workday.MeetingOther,
		Status:      workday.MeetingRunning,
		StartedAt:   testStart,
	})

	err := repo.Save(ctx, day)
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)

	// The failed save must leave nothing behind.
	_, err = repo.Get(ctx, "owner1", "day1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWorkDayRepository_ConcurrentSaves(t *testing.T) {
	// File-backed so WAL actually applies to concurrent writers.
	db, err := New(filepath.Join(t.TempDir(), "worklog.db"))
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	repo := NewWorkDayRepository(db)
	ctx := context.Background()

	done := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func(i int) {
			day := testDay(string(rune('a'+i)), "owner1")
			done <- repo.Save(ctx, day)
		}(i)
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, <-done)
	}

	days, err := repo.ListRange(ctx, "owner1", testStart.Add(-time.Hour), testStart.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, days, 4)
}
