package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/worklogd/worklogd/internal/domain/report"
	"github.com/worklogd/worklogd/internal/domain/workday"
)

// registerTools registers all worklog tools on the SDK server.
func registerTools(server *sdkmcp.Server, services Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_work_day",
		Description: "Start tracking a new work day, optionally noting the initial activity",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params StartWorkDayParams) (*sdkmcp.CallToolResult, *workday.WorkDay, error) {
		day, err := services.Tracking.StartWorkDay(ctx, getOwnerID(ctx), workday.StartDayRequest{
			InitialActivity: params.InitialActivity,
		})
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, day, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "stop_work_day",
		Description: "Stop the active work day; a still-running meeting is stopped with it",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params StopWorkDayParams) (*sdkmcp.CallToolResult, *workday.WorkDay, error) {
		day, err := services.Tracking.StopWorkDay(ctx, getOwnerID(ctx))
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, day, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_status",
		Description: "Get the current work day and running meeting, if any",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params GetStatusParams) (*sdkmcp.CallToolResult, StatusResponse, error) {
		status, err := services.Tracking.GetStatus(ctx, getOwnerID(ctx))
		if err != nil {
			return nil, StatusResponse{}, mapError(err)
		}
		return nil, StatusResponse{
			WorkDay:        status.WorkDay,
			RunningMeeting: status.RunningMeeting,
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_activity",
		Description: "Update the free-text description of what is being worked on right now",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params UpdateActivityParams) (*sdkmcp.CallToolResult, *workday.WorkDay, error) {
		day, err := services.Tracking.UpdateActivity(ctx, getOwnerID(ctx), params.Activity)
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, day, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_meeting",
		Description: "Start a meeting timer under the active work day (standup, review, one_on_one, ...)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params StartMeetingParams) (*sdkmcp.CallToolResult, *workday.Meeting, error) {
		meeting, err := services.Tracking.StartMeeting(ctx, getOwnerID(ctx), workday.StartMeetingRequest{
			Title:         params.Title,
			Description:   params.Description,
			MeetingType:   meetingType(params.MeetingType),
			Location:      params.Location,
			AttendeeCount: params.AttendeeCount,
		})
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, meeting, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "stop_meeting",
		Description: "Stop a running meeting timer and record its duration",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params StopMeetingParams) (*sdkmcp.CallToolResult, *workday.Meeting, error) {
		meeting, err := services.Tracking.StopMeeting(ctx, getOwnerID(ctx), params.MeetingID)
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, meeting, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_entry",
		Description: "Log a completed chunk of work with its duration in minutes; omit work_day_id to attach to the active day",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params AddEntryParams) (*sdkmcp.CallToolResult, *workday.TimeEntry, error) {
		entry, err := services.Tracking.AddEntry(ctx, getOwnerID(ctx), workday.AddEntryRequest{
			WorkDayID:       params.WorkDayID,
			Description:     params.Description,
			DurationMinutes: params.DurationMinutes,
			CommitHash:      params.CommitHash,
			JiraTicket:      params.JiraTicket,
			Tags:            params.Tags,
			Billable:        params.Billable,
		})
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, entry, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_report",
		Description: "Build the aggregated report for one work day (defaults to the most recent)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params GetReportParams) (*sdkmcp.CallToolResult, *report.Report, error) {
		rep, err := services.Reports.ForDay(ctx, getOwnerID(ctx), params.WorkDayID)
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, rep, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_range_report",
		Description: "Build one aggregated report over a date range (from inclusive, to exclusive)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params GetRangeReportParams) (*sdkmcp.CallToolResult, *report.Report, error) {
		from, to, err := parseRange(params.From, params.To)
		if err != nil {
			return nil, nil, mapError(err)
		}
		rep, err := services.Reports.ForRange(ctx, getOwnerID(ctx), from, to)
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, rep, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_report",
		Description: "Render a work day report through a registered export format (csv, jira)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ExportReportParams) (*sdkmcp.CallToolResult, ExportResponse, error) {
		adapter, err := services.Exports.Get(params.Format)
		if err != nil {
			return nil, ExportResponse{}, mapError(err)
		}
		rep, err := services.Reports.ForDay(ctx, getOwnerID(ctx), params.WorkDayID)
		if err != nil {
			return nil, ExportResponse{}, mapError(err)
		}
		payload, err := adapter.Render(rep)
		if err != nil {
			return nil, ExportResponse{}, mapError(err)
		}
		return nil, ExportResponse{
			Format:      params.Format,
			ContentType: adapter.ContentType(),
			Payload:     string(payload),
		}, nil
	})
}
