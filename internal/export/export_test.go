package export_test

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/worklogd/worklogd/internal/domain/report"
	"github.com/worklogd/worklogd/internal/export"
)

var exportStart = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

func sampleReport() *report.Report {
	stopped := exportStart.Add(31 * time.Minute)
	return &report.Report{
		WorkDayID:      "day1",
		OwnerID:        "owner1",
		TotalMinutes:   121,
		MeetingMinutes: 31,
		EntryMinutes:   90,
		MeetingCount:   1,
		BreakdownByTag: map[string]int{"backend": 90},
		Meetings: []report.MeetingSummary{{
			ID:              "m1",
			Title:           "standup",
			MeetingType:     "standup",
			StartedAt:       exportStart,
			StoppedAt:       &stopped,
			DurationMinutes: 31,
		}},
		Entries: []report.EntrySummary{
			{
				ID:              "e1",
				Description:     "implemented retries",
				DurationMinutes: 60,
				RecordedAt:      exportStart.Add(2 * time.Hour),
				JiraTicket:      "WL-17",
				Tags:            []string{"backend"},
			},
			{
				ID:              "e2",
				Description:     "untracked exploration",
				DurationMinutes: 30,
				RecordedAt:      exportStart.Add(3 * time.Hour),
				Tags:            []string{"backend"},
			},
		},
	}
}

func TestCSVAdapter_Render(t *testing.T) {
	payload, err := export.NewCSVAdapter().Render(sampleReport())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	require.NoError(t, err)

	// Header, one meeting, two entries, totals.
	require.Len(t, rows, 5)
	require.Equal(t, []string{"kind", "id", "description", "minutes", "timestamp", "tags", "jira_ticket"}, rows[0])
	require.Equal(t, "meeting", rows[1][0])
	require.Equal(t, "m1", rows[1][1])
	require.Equal(t, "31", rows[1][3])
	require.Equal(t, "entry", rows[2][0])
	require.Equal(t, "WL-17", rows[2][6])
	require.Equal(t, "total", rows[4][0])
	require.Equal(t, "121", rows[4][3])
}

func TestCSVAdapter_ContentType(t *testing.T) {
	require.Equal(t, "text/csv", export.NewCSVAdapter().ContentType())
}

func TestJiraAdapter_Render(t *testing.T) {
	payload, err := export.NewJiraAdapter().Render(sampleReport())
	require.NoError(t, err)

	var worklogs []map[string]any
	require.NoError(t, json.Unmarshal(payload, &worklogs))

	// Only entries carrying a ticket reference are exported.
	require.Len(t, worklogs, 1)
	require.Equal(t, "WL-17", worklogs[0]["issueKey"])
	require.Equal(t, float64(3600), worklogs[0]["timeSpentSeconds"])
	require.Equal(t, "implemented retries", worklogs[0]["comment"])
}

func TestJiraAdapter_RenderEmpty(t *testing.T) {
	payload, err := export.NewJiraAdapter().Render(&report.Report{})
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(payload))
}

func TestRegistry(t *testing.T) {
	reg := export.NewRegistry()

	require.Equal(t, []string{"csv", "jira"}, reg.Formats())

	adapter, err := reg.Get("csv")
	require.NoError(t, err)
	require.NotNil(t, adapter)

	_, err = reg.Get("pdf")
	require.ErrorIs(t, err, export.ErrUnknownFormat)
}
