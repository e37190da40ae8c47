package report

import (
	"sort"

	"github.com/worklogd/worklogd/internal/domain/workday"
)

// Build computes a Report from a work day's current children. It is a
// pure function: calling it twice without intervening mutation yields
// identical output.
//
// Manual entries and meeting time are additive; overlap between them is
// not reconciled here. An entry tagged twice counts fully under both tags
// since tags are categorical views, not partitions. A meeting still
// running contributes zero minutes until it is stopped.
func Build(day *workday.WorkDay) Report {
	rep := Report{
		WorkDayID:      day.ID,
		OwnerID:        day.OwnerID,
		StartedAt:      day.StartedAt,
		EndedAt:        day.EndedAt,
		BreakdownByTag: map[string]int{},
		Meetings:       make([]MeetingSummary, 0, len(day.Meetings)),
		Entries:        make([]EntrySummary, 0, len(day.Entries)),
	}

	for _, m := range day.Meetings {
		summary := MeetingSummary{
			ID:            m.ID,
			Title:         m.Title,
			MeetingType:   m.MeetingType,
			AttendeeCount: m.AttendeeCount,
			StartedAt:     m.StartedAt,
			StoppedAt:     m.StoppedAt,
			Running:       m.Status == workday.MeetingRunning,
		}
		if m.Status == workday.MeetingStopped {
			summary.DurationMinutes = m.DurationMinutes
			rep.MeetingMinutes += m.DurationMinutes
		}
		rep.Meetings = append(rep.Meetings, summary)
	}
	rep.MeetingCount = len(rep.Meetings)

	for _, e := range day.Entries {
		rep.Entries = append(rep.Entries, EntrySummary{
			ID:              e.ID,
			Description:     e.Description,
			DurationMinutes: e.DurationMinutes,
			RecordedAt:      e.RecordedAt,
			CommitHash:      e.CommitHash,
			JiraTicket:      e.JiraTicket,
			Tags:            e.Tags,
			Billable:        e.Billable,
		})
		rep.EntryMinutes += e.DurationMinutes
		for _, tag := range e.Tags {
			rep.BreakdownByTag[tag] += e.DurationMinutes
		}
	}

	sort.SliceStable(rep.Meetings, func(i, j int) bool {
		return rep.Meetings[i].StartedAt.Before(rep.Meetings[j].StartedAt)
	})
	sort.SliceStable(rep.Entries, func(i, j int) bool {
		return rep.Entries[i].RecordedAt.Before(rep.Entries[j].RecordedAt)
	})

	rep.TotalMinutes = rep.EntryMinutes + rep.MeetingMinutes
	return rep
}

// BuildRange folds several work days into one aggregated Report. Line
// items keep their chronological order across days; the WorkDayID field
// is left empty since the report spans more than one day.
func BuildRange(days []workday.WorkDay) Report {
	merged := Report{BreakdownByTag: map[string]int{}, Meetings: []MeetingSummary{}, Entries: []EntrySummary{}}
	for i := range days {
		rep := Build(&days[i])
		if merged.OwnerID == "" {
			merged.OwnerID = rep.OwnerID
		}
		merged.MeetingMinutes += rep.MeetingMinutes
		merged.EntryMinutes += rep.EntryMinutes
		merged.MeetingCount += rep.MeetingCount
		merged.Meetings = append(merged.Meetings, rep.Meetings...)
		merged.Entries = append(merged.Entries, rep.Entries...)
		for tag, mins := range rep.BreakdownByTag {
			merged.BreakdownByTag[tag] += mins
		}
	}

	sort.SliceStable(merged.Meetings, func(i, j int) bool {
		return merged.Meetings[i].StartedAt.Before(merged.Meetings[j].StartedAt)
	})
	sort.SliceStable(merged.Entries, func(i, j int) bool {
		return merged.Entries[i].RecordedAt.Before(merged.Entries[j].RecordedAt)
	})

	merged.TotalMinutes = merged.EntryMinutes + merged.MeetingMinutes
	return merged
}
