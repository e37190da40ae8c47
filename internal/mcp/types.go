package mcp

import (
	"github.com/worklogd/worklogd/internal/domain/workday"
)

type StartWorkDayParams struct {
	InitialActivity string `json:"initial_activity,omitempty"`
}

type StopWorkDayParams struct{}

type GetStatusParams struct{}

type UpdateActivityParams struct {
	Activity string `json:"activity"`
}

type StartMeetingParams struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	MeetingType   string `json:"meeting_type,omitempty"`
	Location      string `json:"location,omitempty"`
	AttendeeCount int    `json:"attendee_count,omitempty"`
}

type StopMeetingParams struct {
	MeetingID string `json:"meeting_id"`
}

type AddEntryParams struct {
	WorkDayID       string   `json:"work_day_id,omitempty"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes"`
	CommitHash      string   `json:"commit_hash,omitempty"`
	JiraTicket      string   `json:"jira_ticket,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Billable        bool     `json:"billable,omitempty"`
}

type GetReportParams struct {
	WorkDayID string `json:"work_day_id,omitempty"`
}

type GetRangeReportParams struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ExportReportParams struct {
	WorkDayID string `json:"work_day_id,omitempty"`
	Format    string `json:"format"`
}

type StatusResponse struct {
	WorkDay        *workday.WorkDay `json:"work_day,omitempty"`
	RunningMeeting *workday.Meeting `json:"running_meeting,omitempty"`
}

type ExportResponse struct {
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
	Payload     string `json:"payload"`
}
