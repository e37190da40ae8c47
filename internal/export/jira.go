package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/worklogd/worklogd/internal/domain/report"
)

// JiraAdapter renders the report's ticketed entries as Jira worklog
// payloads, one per entry carrying a jira_ticket reference.
type JiraAdapter struct{}

// NewJiraAdapter creates a Jira worklog export adapter.
func NewJiraAdapter() *JiraAdapter {
	return &JiraAdapter{}
}

type jiraWorklog struct {
	IssueKey         string `json:"issueKey"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	Comment          string `json:"comment"`
	Started          string `json:"started"`
}

func (a *JiraAdapter) ContentType() string {
	return "application/json"
}

func (a *JiraAdapter) Render(rep *report.Report) ([]byte, error) {
	worklogs := []jiraWorklog{}
	for _, e := range rep.Entries {
		if e.JiraTicket == "" {
			continue
		}
		worklogs = append(worklogs, jiraWorklog{
			IssueKey:         e.JiraTicket,
			TimeSpentSeconds: e.DurationMinutes * 60,
			Comment:          e.Description,
			Started:          e.RecordedAt.Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(worklogs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding jira worklogs: %w", err)
	}
	return data, nil
}
