package report

import (
	"time"

	"github.com/worklogd/worklogd/internal/domain/workday"
)

// Report aggregates a work day's entries and meetings into summary
// totals. It is a computed value, never persisted or cached.
type Report struct {
	WorkDayID      string           `json:"work_day_id,omitempty"`
	OwnerID        string           `json:"owner_id"`
	StartedAt      *time.Time       `json:"started_at,omitempty"`
	EndedAt        *time.Time       `json:"ended_at,omitempty"`
	TotalMinutes   int              `json:"total_minutes"`
	MeetingMinutes int              `json:"meeting_minutes"`
	EntryMinutes   int              `json:"entry_minutes"`
	MeetingCount   int              `json:"meeting_count"`
	BreakdownByTag map[string]int   `json:"breakdown_by_tag"`
	Meetings       []MeetingSummary `json:"meetings"`
	Entries        []EntrySummary   `json:"entries"`
}

// MeetingSummary is a meeting line item in a report, ordered by start time.
type MeetingSummary struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	MeetingType     workday.MeetingType `json:"meeting_type"`
	AttendeeCount   int                 `json:"attendee_count"`
	StartedAt       time.Time           `json:"started_at"`
	StoppedAt       *time.Time          `json:"stopped_at,omitempty"`
	DurationMinutes int                 `json:"duration_minutes"`
	Running         bool                `json:"running"`
}

// EntrySummary is a time entry line item in a report, ordered by record time.
type EntrySummary struct {
	ID              string    `json:"id"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	RecordedAt      time.Time `json:"recorded_at"`
	CommitHash      string    `json:"commit_hash,omitempty"`
	JiraTicket      string    `json:"jira_ticket,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	Billable        bool      `json:"billable"`
}
