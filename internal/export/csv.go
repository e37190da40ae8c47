package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/worklogd/worklogd/internal/domain/report"
)

// CSVAdapter renders a report as CSV, one row per meeting or entry,
// followed by a totals row.
type CSVAdapter struct{}

// NewCSVAdapter creates a CSV export adapter.
func NewCSVAdapter() *CSVAdapter {
	return &CSVAdapter{}
}

func (a *CSVAdapter) ContentType() string {
	return "text/csv"
}

func (a *CSVAdapter) Render(rep *report.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"kind", "id", "description", "minutes", "timestamp", "tags", "jira_ticket"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	for _, m := range rep.Meetings {
		row := []string{
			"meeting",
			m.ID,
			m.Title,
			strconv.Itoa(m.DurationMinutes),
			m.StartedAt.Format(time.RFC3339),
			string(m.MeetingType),
			"",
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing meeting row: %w", err)
		}
	}
	for _, e := range rep.Entries {
		row := []string{
			"entry",
			e.ID,
			e.Description,
			strconv.Itoa(e.DurationMinutes),
			e.RecordedAt.Format(time.RFC3339),
			strings.Join(e.Tags, " "),
			e.JiraTicket,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing entry row: %w", err)
		}
	}

	total := []string{"total", "", "", strconv.Itoa(rep.TotalMinutes), "", "", ""}
	if err := w.Write(total); err != nil {
		return nil, fmt.Errorf("writing totals row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}
