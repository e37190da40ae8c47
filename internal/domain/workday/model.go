package workday

import "time"

// DayStatus represents the lifecycle status of a work day
type DayStatus string

const (
	StatusNotStarted DayStatus = "not_started"
	StatusActive     DayStatus = "active"
	StatusEnded      DayStatus = "ended"
)

// MeetingStatus represents the lifecycle status of a meeting timer
type MeetingStatus string

const (
	MeetingRunning MeetingStatus = "running"
	MeetingStopped MeetingStatus = "stopped"
)

// MeetingType categorizes a meeting
type MeetingType string

const (
	MeetingStandup       MeetingType = "standup"
	MeetingPlanning      MeetingType = "planning"
	MeetingReview        MeetingType = "review"
	MeetingRetrospective MeetingType = "retrospective"
	MeetingOneOnOne      MeetingType = "one_on_one"
	MeetingClientCall    MeetingType = "client_call"
	MeetingTraining      MeetingType = "training"
	MeetingInterview     MeetingType = "interview"
	MeetingBrainstorming MeetingType = "brainstorming"
	MeetingDemo          MeetingType = "demo"
	MeetingOther         MeetingType = "other"
)

// WorkDay is the aggregate root for one tracked working period. It owns
// its meetings and time entries; they have no lifecycle of their own.
type WorkDay struct {
	ID              string      `json:"id"`
	OwnerID         string      `json:"owner_id"`
	Status          DayStatus   `json:"status"`
	StartedAt       *time.Time  `json:"started_at,omitempty"`
	EndedAt         *time.Time  `json:"ended_at,omitempty"`
	InitialActivity string      `json:"initial_activity,omitempty"`
	CurrentActivity string      `json:"current_activity,omitempty"`
	Meetings        []Meeting   `json:"meetings"`
	Entries         []TimeEntry `json:"entries"`
}

// Meeting is a nested timer within a work day. At most one meeting per
// work day may be running at any instant.
type Meeting struct {
	ID              string        `json:"id"`
	WorkDayID       string        `json:"work_day_id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	MeetingType     MeetingType   `json:"meeting_type"`
	Location        string        `json:"location,omitempty"`
	AttendeeCount   int           `json:"attendee_count"`
	Status          MeetingStatus `json:"status"`
	StartedAt       time.Time     `json:"started_at"`
	StoppedAt       *time.Time    `json:"stopped_at,omitempty"`
	DurationMinutes int           `json:"duration_minutes"`
}

// TimeEntry is a manually logged, fixed-duration record of completed
// work. Entries are append-only and immutable once created.
type TimeEntry struct {
	ID              string    `json:"id"`
	WorkDayID       string    `json:"work_day_id"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	RecordedAt      time.Time `json:"recorded_at"`
	CommitHash      string    `json:"commit_hash,omitempty"`
	JiraTicket      string    `json:"jira_ticket,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	Billable        bool      `json:"billable"`
}

// Status is a read-only snapshot of an owner's current aggregate.
type Status struct {
	WorkDay        *WorkDay `json:"work_day,omitempty"`
	RunningMeeting *Meeting `json:"running_meeting,omitempty"`
}

// RunningMeeting returns the running meeting of the day, or nil.
func (d *WorkDay) RunningMeeting() *Meeting {
	for i := range d.Meetings {
		if d.Meetings[i].Status == MeetingRunning {
			return &d.Meetings[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the aggregate. Snapshots handed out by
// read operations must not alias the mutable aggregate.
func (d *WorkDay) Clone() *WorkDay {
	if d == nil {
		return nil
	}
	out := *d
	if d.StartedAt != nil {
		t := *d.StartedAt
		out.StartedAt = &t
	}
	if d.EndedAt != nil {
		t := *d.EndedAt
		out.EndedAt = &t
	}
	out.Meetings = make([]Meeting, len(d.Meetings))
	for i, m := range d.Meetings {
		if m.StoppedAt != nil {
			t := *m.StoppedAt
			m.StoppedAt = &t
		}
		out.Meetings[i] = m
	}
	out.Entries = make([]TimeEntry, len(d.Entries))
	for i, e := range d.Entries {
		if len(e.Tags) > 0 {
			e.Tags = append([]string(nil), e.Tags...)
		}
		out.Entries[i] = e
	}
	return &out
}

// durationMinutes converts an elapsed interval to whole minutes, rounding
// up, with a floor of one minute. A meeting stopped in the instant it
// started still produces a 1-minute record.
func durationMinutes(start, end time.Time) int {
	elapsed := end.Sub(start)
	if elapsed <= 0 {
		return 1
	}
	mins := int((elapsed + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	return mins
}
