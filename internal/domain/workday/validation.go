package workday

import (
	"fmt"
	"strings"
)

// ValidateMeetingInput validates fields required to start a meeting.
func ValidateMeetingInput(req StartMeetingRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: meeting title is required", ErrInvalidInput)
	}
	if req.AttendeeCount < 0 {
		return fmt.Errorf("%w: attendee count must not be negative", ErrInvalidInput)
	}
	if req.MeetingType == "" {
		return fmt.Errorf("%w: meeting type is required", ErrInvalidInput)
	}
	return nil
}

// ValidateEntryInput validates fields required to log a time entry.
func ValidateEntryInput(req AddEntryRequest) error {
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: entry description is required", ErrInvalidInput)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be a positive number of minutes", ErrInvalidInput)
	}
	return nil
}
