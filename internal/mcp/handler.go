package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/worklogd/worklogd/internal/domain/report"
	"github.com/worklogd/worklogd/internal/domain/workday"
	"github.com/worklogd/worklogd/internal/export"
)

// TrackingService defines tracking engine operations needed by the surfaces.
type TrackingService interface {
	StartWorkDay(ctx context.Context, ownerID string, req workday.StartDayRequest) (*workday.WorkDay, error)
	StopWorkDay(ctx context.Context, ownerID string) (*workday.WorkDay, error)
	UpdateActivity(ctx context.Context, ownerID, activity string) (*workday.WorkDay, error)
	StartMeeting(ctx context.Context, ownerID string, req workday.StartMeetingRequest) (*workday.Meeting, error)
	StopMeeting(ctx context.Context, ownerID, meetingID string) (*workday.Meeting, error)
	AddEntry(ctx context.Context, ownerID string, req workday.AddEntryRequest) (*workday.TimeEntry, error)
	GetStatus(ctx context.Context, ownerID string) (*workday.Status, error)
}

// ReportService defines report operations needed by the surfaces.
type ReportService interface {
	ForDay(ctx context.Context, ownerID, workDayID string) (*report.Report, error)
	ForRange(ctx context.Context, ownerID string, from, to time.Time) (*report.Report, error)
}

// Handler dispatches JSON-RPC methods to domain services.
type Handler struct {
	tracking TrackingService
	reports  ReportService
	exports  *export.Registry
}

// NewHandler creates a new method dispatch handler.
func NewHandler(tracking TrackingService, reports ReportService, exports *export.Registry) *Handler {
	return &Handler{
		tracking: tracking,
		reports:  reports,
		exports:  exports,
	}
}

// Handle dispatches a request to the matching domain operation.
func (h *Handler) Handle(ctx context.Context, ownerID, method string, params json.RawMessage) (any, error) {
	switch method {
	case "start_work_day":
		var req StartWorkDayParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		day, err := h.tracking.StartWorkDay(ctx, ownerID, workday.StartDayRequest{
			InitialActivity: req.InitialActivity,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return day, nil
	case "stop_work_day":
		day, err := h.tracking.StopWorkDay(ctx, ownerID)
		if err != nil {
			return nil, mapError(err)
		}
		return day, nil
	case "get_status":
		status, err := h.tracking.GetStatus(ctx, ownerID)
		if err != nil {
			return nil, mapError(err)
		}
		return StatusResponse{
			WorkDay:        status.WorkDay,
			RunningMeeting: status.RunningMeeting,
		}, nil
	case "update_activity":
		var req UpdateActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		day, err := h.tracking.UpdateActivity(ctx, ownerID, req.Activity)
		if err != nil {
			return nil, mapError(err)
		}
		return day, nil
	case "start_meeting":
		var req StartMeetingParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		meeting, err := h.tracking.StartMeeting(ctx, ownerID, workday.StartMeetingRequest{
			Title:         req.Title,
			Description:   req.Description,
			MeetingType:   meetingType(req.MeetingType),
			Location:      req.Location,
			AttendeeCount: req.AttendeeCount,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return meeting, nil
	case "stop_meeting":
		var req StopMeetingParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		meeting, err := h.tracking.StopMeeting(ctx, ownerID, req.MeetingID)
		if err != nil {
			return nil, mapError(err)
		}
		return meeting, nil
	case "add_entry":
		var req AddEntryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		entry, err := h.tracking.AddEntry(ctx, ownerID, workday.AddEntryRequest{
			WorkDayID:       req.WorkDayID,
			Description:     req.Description,
			DurationMinutes: req.DurationMinutes,
			CommitHash:      req.CommitHash,
			JiraTicket:      req.JiraTicket,
			Tags:            req.Tags,
			Billable:        req.Billable,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return entry, nil
	case "get_report":
		var req GetReportParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		rep, err := h.reports.ForDay(ctx, ownerID, req.WorkDayID)
		if err != nil {
			return nil, mapError(err)
		}
		return rep, nil
	case "get_range_report":
		var req GetRangeReportParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		from, to, err := parseRange(req.From, req.To)
		if err != nil {
			return nil, mapError(err)
		}
		rep, err := h.reports.ForRange(ctx, ownerID, from, to)
		if err != nil {
			return nil, mapError(err)
		}
		return rep, nil
	case "export_report":
		var req ExportReportParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.exportReport(ctx, ownerID, req)
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func (h *Handler) exportReport(ctx context.Context, ownerID string, req ExportReportParams) (any, error) {
	adapter, err := h.exports.Get(req.Format)
	if err != nil {
		return nil, mapError(err)
	}
	rep, err := h.reports.ForDay(ctx, ownerID, req.WorkDayID)
	if err != nil {
		return nil, mapError(err)
	}
	payload, err := adapter.Render(rep)
	if err != nil {
		return nil, fmt.Errorf("rendering export: %w", err)
	}
	return ExportResponse{
		Format:      req.Format,
		ContentType: adapter.ContentType(),
		Payload:     string(payload),
	}, nil
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := parseDay(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid from date", workday.ErrInvalidInput)
	}
	to, err := parseDay(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid to date", workday.ErrInvalidInput)
	}
	return from, to, nil
}

// parseDay accepts either an RFC 3339 timestamp or a bare date.
func parseDay(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func meetingType(value string) workday.MeetingType {
	if value == "" {
		return workday.MeetingOther
	}
	return workday.MeetingType(value)
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, out)
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
