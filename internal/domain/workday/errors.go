package workday

import "errors"

var (
	// ErrDayAlreadyActive indicates the owner already has an active work day.
	ErrDayAlreadyActive = errors.New("work day already active")
	// ErrNoActiveDay indicates no active work day exists for the owner.
	ErrNoActiveDay = errors.New("no active work day")
	// ErrDayNotFound indicates the referenced work day doesn't exist.
	ErrDayNotFound = errors.New("work day not found")
	// ErrDayEnded indicates the work day is ended and cannot transition.
	ErrDayEnded = errors.New("work day already ended")
	// ErrMeetingNotFound indicates the referenced meeting doesn't exist.
	ErrMeetingNotFound = errors.New("meeting not found")
	// ErrMeetingAlreadyRunning indicates another meeting is already running.
	ErrMeetingAlreadyRunning = errors.New("another meeting is already running")
	// ErrMeetingNotRunning indicates the meeting is not currently running.
	ErrMeetingNotRunning = errors.New("meeting is not running")
	// ErrInvalidInput indicates malformed tracking input.
	ErrInvalidInput = errors.New("invalid tracking input")
)

// Kind classifies domain failures for surface layers to translate to
// protocol-specific responses.
type Kind int

const (
	KindUnknown Kind = iota
	KindConflict
	KindNotFound
	KindInvalidState
	KindValidation
)

// KindOf maps a domain error to its failure kind.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrDayAlreadyActive), errors.Is(err, ErrMeetingAlreadyRunning):
		return KindConflict
	case errors.Is(err, ErrNoActiveDay), errors.Is(err, ErrDayNotFound), errors.Is(err, ErrMeetingNotFound):
		return KindNotFound
	case errors.Is(err, ErrDayEnded), errors.Is(err, ErrMeetingNotRunning):
		return KindInvalidState
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	default:
		return KindUnknown
	}
}
