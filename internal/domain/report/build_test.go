package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/worklogd/worklogd/internal/domain/report"
	"github.com/worklogd/worklogd/internal/domain/workday"
)

var dayStart = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func sampleDay() *workday.WorkDay {
	meetingStop := dayStart.Add(31 * time.Minute)
	return &workday.WorkDay{
		ID:        "day1",
		OwnerID:   "owner1",
		Status:    workday.StatusActive,
		StartedAt: &dayStart,
		Meetings: []workday.Meeting{{
			ID:              "m1",
			WorkDayID:       "day1",
			Title:           "standup",
			MeetingType:     workday.MeetingStandup,
			Status:          workday.MeetingStopped,
			StartedAt:       dayStart.Add(30 * time.Minute),
			StoppedAt:       &meetingStop,
			DurationMinutes: 1,
		}},
		Entries: []workday.TimeEntry{{
			ID:              "e1",
			WorkDayID:       "day1",
			Description:     "implemented retries",
			DurationMinutes: 90,
			RecordedAt:      dayStart.Add(2 * time.Hour),
			Tags:            []string{"backend"},
		}},
	}
}

func TestBuild_Totals(t *testing.T) {
	rep := report.Build(sampleDay())

	require.Equal(t, 1, rep.MeetingMinutes)
	require.Equal(t, 90, rep.EntryMinutes)
	require.Equal(t, 91, rep.TotalMinutes)
	require.Equal(t, 1, rep.MeetingCount)
	require.Equal(t, map[string]int{"backend": 90}, rep.BreakdownByTag)
}

func TestBuild_Idempotent(t *testing.T) {
	day := sampleDay()

	first := report.Build(day)
	second := report.Build(day)
	require.Equal(t, first, second)
}

func TestBuild_RunningMeetingContributesZero(t *testing.T) {
	day := sampleDay()
	day.Meetings = append(day.Meetings, workday.Meeting{
		ID:          "m2",
		WorkDayID:   "day1",
		Title:       "ongoing sync",
		MeetingType: workday.MeetingOther,
		Status:      workday.MeetingRunning,
		StartedAt:   dayStart.Add(3 * time.Hour),
	})

	rep := report.Build(day)
	require.Equal(t, 1, rep.MeetingMinutes)
	require.Equal(t, 2, rep.MeetingCount)

	var running report.MeetingSummary
	for _, m := range rep.Meetings {
		if m.ID == "m2" {
			running = m
		}
	}
	require.True(t, running.Running)
	require.Zero(t, running.DurationMinutes)
}

func TestBuild_TagsCountFullDuration(t *testing.T) {
	day := sampleDay()
	day.Entries = append(day.Entries, workday.TimeEntry{
		ID:              "e2",
		WorkDayID:       "day1",
		Description:     "incident review writeup",
		DurationMinutes: 30,
		RecordedAt:      dayStart.Add(4 * time.Hour),
		Tags:            []string{"backend", "incident"},
	})

	rep := report.Build(day)
	// An entry with two tags counts fully under both.
	require.Equal(t, 120, rep.BreakdownByTag["backend"])
	require.Equal(t, 30, rep.BreakdownByTag["incident"])
	require.Equal(t, 120, rep.EntryMinutes)
}

func TestBuild_UntaggedEntriesSkipBreakdown(t *testing.T) {
	day := sampleDay()
	day.Entries[0].Tags = nil

	rep := report.Build(day)
	require.Empty(t, rep.BreakdownByTag)
	require.Equal(t, 90, rep.EntryMinutes)
}

func TestBuild_ChronologicalOrder(t *testing.T) {
	day := sampleDay()
	earlyStop := dayStart.Add(10 * time.Minute)
	day.Meetings = append(day.Meetings, workday.Meeting{
		ID:              "m0",
		WorkDayID:       "day1",
		Title:           "early huddle",
		MeetingType:     workday.MeetingOther,
		Status:          workday.MeetingStopped,
		StartedAt:       dayStart,
		StoppedAt:       &earlyStop,
		DurationMinutes: 10,
	})
	day.Entries = append(day.Entries, workday.TimeEntry{
		ID:              "e0",
		WorkDayID:       "day1",
		Description:     "inbox triage",
		DurationMinutes: 15,
		RecordedAt:      dayStart.Add(time.Hour),
	})

	rep := report.Build(day)
	require.Equal(t, "m0", rep.Meetings[0].ID)
	require.Equal(t, "m1", rep.Meetings[1].ID)
	require.Equal(t, "e0", rep.Entries[0].ID)
	require.Equal(t, "e1", rep.Entries[1].ID)
}

func TestBuild_EmptyDay(t *testing.T) {
	rep := report.Build(&workday.WorkDay{ID: "day1", OwnerID: "owner1", Status: workday.StatusActive})

	require.Zero(t, rep.TotalMinutes)
	require.Zero(t, rep.MeetingCount)
	require.NotNil(t, rep.Meetings)
	require.NotNil(t, rep.Entries)
	require.Empty(t, rep.BreakdownByTag)
}

func TestBuildRange_MergesDays(t *testing.T) {
	day1 := sampleDay()
	day2 := sampleDay()
	day2.ID = "day2"
	nextStart := dayStart.Add(24 * time.Hour)
	day2.StartedAt = &nextStart
	day2.Meetings[0].ID = "m1b"
	day2.Meetings[0].StartedAt = nextStart
	day2.Entries[0].ID = "e1b"
	day2.Entries[0].RecordedAt = nextStart.Add(time.Hour)
	day2.Entries[0].Tags = []string{"backend", "frontend"}

	rep := report.BuildRange([]workday.WorkDay{*day1, *day2})

	require.Empty(t, rep.WorkDayID)
	require.Equal(t, "owner1", rep.OwnerID)
	require.Equal(t, 2, rep.MeetingCount)
	require.Equal(t, 2, rep.MeetingMinutes)
	require.Equal(t, 180, rep.EntryMinutes)
	require.Equal(t, 182, rep.TotalMinutes)
	require.Equal(t, 180, rep.BreakdownByTag["backend"])
	require.Equal(t, 90, rep.BreakdownByTag["frontend"])
	require.Equal(t, "m1", rep.Meetings[0].ID)
	require.Equal(t, "m1b", rep.Meetings[1].ID)
}

func TestBuildRange_Empty(t *testing.T) {
	rep := report.BuildRange(nil)

	require.Zero(t, rep.TotalMinutes)
	require.NotNil(t, rep.BreakdownByTag)
	require.NotNil(t, rep.Meetings)
	require.NotNil(t, rep.Entries)
}
