package mcp

import (
	"errors"
	"fmt"

	"github.com/worklogd/worklogd/internal/domain/workday"
	"github.com/worklogd/worklogd/internal/export"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, workday.ErrDayAlreadyActive):
		return &APIError{Code: "DAY_ALREADY_ACTIVE", Message: "work day already active", RecoveryHint: "Stop the current work day first"}
	case errors.Is(err, workday.ErrNoActiveDay):
		return &APIError{Code: "NO_ACTIVE_DAY", Message: "no active work day", RecoveryHint: "Start a work day first"}
	case errors.Is(err, workday.ErrDayNotFound):
		return &APIError{Code: "DAY_NOT_FOUND", Message: "work day not found", RecoveryHint: "Check the work day id"}
	case errors.Is(err, workday.ErrDayEnded):
		return &APIError{Code: "DAY_ENDED", Message: "work day already ended", RecoveryHint: "Start a new work day"}
	case errors.Is(err, workday.ErrMeetingAlreadyRunning):
		return &APIError{Code: "MEETING_ALREADY_RUNNING", Message: "another meeting is already running", RecoveryHint: "Stop the running meeting first"}
	case errors.Is(err, workday.ErrMeetingNotFound):
		return &APIError{Code: "MEETING_NOT_FOUND", Message: "meeting not found", RecoveryHint: "Check the meeting id"}
	case errors.Is(err, workday.ErrMeetingNotRunning):
		return &APIError{Code: "MEETING_NOT_RUNNING", Message: "meeting is not running", RecoveryHint: "Only running meetings can be stopped"}
	case errors.Is(err, workday.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, export.ErrUnknownFormat):
		return &APIError{Code: "UNKNOWN_FORMAT", Message: err.Error(), RecoveryHint: "Use one of the registered export formats"}
	default:
		return nil
	}
}
