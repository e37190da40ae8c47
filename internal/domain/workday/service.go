package workday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/worklogd/worklogd/internal/clock"
	"github.com/worklogd/worklogd/internal/repository"
)

// Service is the session and timer state engine. It enforces legal
// lifecycle transitions for work days and their nested meeting timers and
// appends manually logged time entries.
//
// Every mutating operation runs as a single load-mutate-save sequence
// under a per-owner lock, so at most one transition per owner is in
// flight at any instant and no operation partially applies.
type Service struct {
	days   Repository
	clock  clock.Clock
	locks  *ownerLocks
	logger *slog.Logger
}

// NewService creates a new tracking service.
func NewService(days Repository, clk clock.Clock, logger *slog.Logger) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		days:   days,
		clock:  clk,
		locks:  newOwnerLocks(),
		logger: logger,
	}
}

// StartDayRequest describes a work day start.
type StartDayRequest struct {
	InitialActivity string
}

// StartMeetingRequest describes a meeting timer start.
type StartMeetingRequest struct {
	Title         string
	Description   string
	MeetingType   MeetingType
	Location      string
	AttendeeCount int
}

// AddEntryRequest describes a manual time entry.
type AddEntryRequest struct {
	WorkDayID       string // optional; empty resolves to the active day
	Description     string
	DurationMinutes int
	CommitHash      string
	JiraTicket      string
	Tags            []string
	Billable        bool
}

// StartWorkDay begins a new work day for the owner. Starting while a day
// is already active fails with ErrDayAlreadyActive; a fresh aggregate is
// created rather than reopening an ended one.
func (s *Service) StartWorkDay(ctx context.Context, ownerID string, req StartDayRequest) (*WorkDay, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	mu := s.locks.get(ownerID)
	mu.Lock()
	defer mu.Unlock()

	current, err := s.loadCurrent(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.Status == StatusActive {
		return nil, ErrDayAlreadyActive
	}

	now := s.clock.Now()
	day := &WorkDay{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Status:          StatusActive,
		StartedAt:       &now,
		InitialActivity: strings.TrimSpace(req.InitialActivity),
		CurrentActivity: strings.TrimSpace(req.InitialActivity),
		Meetings:        []Meeting{},
		Entries:         []TimeEntry{},
	}

	if err := s.days.Save(ctx, day); err != nil {
		return nil, fmt.Errorf("saving work day: %w", err)
	}

	s.logger.Info("work day started", "owner_id", ownerID, "work_day_id", day.ID)
	return day.Clone(), nil
}

// StopWorkDay ends the owner's active work day. A still-running meeting
// is stopped first with the same timestamp, so no running meeting can
// outlive its parent. The cascade and the day transition persist as one
// unit.
func (s *Service) StopWorkDay(ctx context.Context, ownerID string) (*WorkDay, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	mu := s.locks.get(ownerID)
	mu.Lock()
	defer mu.Unlock()

	day, err := s.loadCurrent(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if day == nil || day.Status != StatusActive {
		return nil, ErrNoActiveDay
	}

	now := s.clock.Now()
	if m := day.RunningMeeting(); m != nil {
		stopMeetingAt(m, now)
	}
	day.Status = StatusEnded
	day.EndedAt = &now
	day.CurrentActivity = ""

	if err := s.days.Save(ctx, day); err != nil {
		return nil, fmt.Errorf("saving work day: %w", err)
	}

	s.logger.Info("work day stopped", "owner_id", ownerID, "work_day_id", day.ID)
	return day.Clone(), nil
}

// UpdateActivity replaces the free-text current activity on the active day.
func (s *Service) UpdateActivity(ctx context.Context, ownerID, activity string) (*WorkDay, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	mu := s.locks.get(ownerID)
	mu.Lock()
	defer mu.Unlock()

	day, err := s.loadCurrent(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if day == nil || day.Status != StatusActive {
		return nil, ErrNoActiveDay
	}

	day.CurrentActivity = strings.TrimSpace(activity)
	if err := s.days.Save(ctx, day); err != nil {
		return nil, fmt.Errorf("saving work day: %w", err)
	}
	return day.Clone(), nil
}

// StartMeeting starts a meeting timer under the owner's active work day.
// Fails with ErrMeetingAlreadyRunning while another meeting is running.
func (s *Service) StartMeeting(ctx context.Context, ownerID string, req StartMeetingRequest) (*Meeting, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if err := ValidateMeetingInput(req); err != nil {
		return nil, err
	}

	mu := s.locks.get(ownerID)
	mu.Lock()
	defer mu.Unlock()

	day, err := s.loadCurrent(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if day == nil || day.Status != StatusActive {
		return nil, ErrNoActiveDay
	}
	if day.RunningMeeting() != nil {
		return nil, ErrMeetingAlreadyRunning
	}

	meeting := Meeting{
		ID:            uuid.NewString(),
		WorkDayID:     day.ID,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		MeetingType:   req.MeetingType,
		Location:      req.Location,
		AttendeeCount: req.AttendeeCount,
		Status:        MeetingRunning,
		StartedAt:     s.clock.Now(),
	}
	day.Meetings = append(day.Meetings, meeting)

	if err := s.days.Save(ctx, day); err != nil {
		return nil, fmt.Errorf("saving work day: %w", err)
	}

	s.logger.Info("meeting started", "owner_id", ownerID, "meeting_id", meeting.ID, "type", meeting.MeetingType)
	return &meeting, nil
}

// StopMeeting stops a running meeting and fixes its duration.
func (s *Service) StopMeeting(ctx context.Context, ownerID, meetingID string) (*Meeting, error) {
	if ownerID == "" || meetingID == "" {
		return nil, fmt.Errorf("%w: owner and meeting id are required", ErrInvalidInput)
	}

	mu := s.locks.get(ownerID)
	mu.Lock()
	defer mu.Unlock()

	day, err := s.loadCurrent(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, ErrMeetingNotFound
	}

	var meeting *Meeting
	for i := range day.Meetings {
		if day.Meetings[i].ID == meetingID {
			meeting = &day.Meetings[i]
			break
		}
	}
	if meeting == nil {
		return nil, ErrMeetingNotFound
	}
	if meeting.Status != MeetingRunning {
		return nil, ErrMeetingNotRunning
	}

	stopMeetingAt(meeting, s.clock.Now())

	if err := s.days.Save(ctx, day); err != nil {
		return nil, fmt.Errorf("saving work day: %w", err)
	}

	s.logger.Info("meeting stopped", "owner_id", ownerID, "meeting_id", meeting.ID, "duration_minutes", meeting.DurationMinutes)
	stopped := *meeting
	return &stopped, nil
}

// AddEntry appends a manually logged time entry. With no work day id the
// entry attaches to the owner's active day; with an explicit id it may be
// backfilled onto an ended day.
func (s *Service) AddEntry(ctx context.Context, ownerID string, req AddEntryRequest) (*TimeEntry, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if err := ValidateEntryInput(req); err != nil {
		return nil, err
	}

	mu := s.locks.get(ownerID)
	mu.Lock()
	defer mu.Unlock()

	var day *WorkDay
	var err error
	if req.WorkDayID == "" {
		day, err = s.loadCurrent(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if day == nil || day.Status != StatusActive {
			return nil, ErrNoActiveDay
		}
	} else {
		day, err = s.days.Get(ctx, ownerID, req.WorkDayID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrDayNotFound
			}
			return nil, fmt.Errorf("loading work day: %w", err)
		}
	}

	entry := TimeEntry{
		ID:              uuid.NewString(),
		WorkDayID:       day.ID,
		Description:     strings.TrimSpace(req.Description),
		DurationMinutes: req.DurationMinutes,
		RecordedAt:      s.clock.Now(),
		CommitHash:      req.CommitHash,
		JiraTicket:      req.JiraTicket,
		Tags:            append([]string(nil), req.Tags...),
		Billable:        req.Billable,
	}
	day.Entries = append(day.Entries, entry)

	if err := s.days.Save(ctx, day); err != nil {
		return nil, fmt.Errorf("saving work day: %w", err)
	}

	s.logger.Info("entry logged", "owner_id", ownerID, "entry_id", entry.ID, "duration_minutes", entry.DurationMinutes)
	return &entry, nil
}

// GetStatus returns a consistent snapshot of the owner's current
// aggregate: the work day and its running meeting, if any.
func (s *Service) GetStatus(ctx context.Context, ownerID string) (*Status, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	mu := s.locks.get(ownerID)
	mu.Lock()
	defer mu.Unlock()

	day, err := s.loadCurrent(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return &Status{}, nil
	}

	snapshot := day.Clone()
	return &Status{
		WorkDay:        snapshot,
		RunningMeeting: snapshot.RunningMeeting(),
	}, nil
}

// Day returns a snapshot of a specific work day with children.
func (s *Service) Day(ctx context.Context, ownerID, id string) (*WorkDay, error) {
	mu := s.locks.get(ownerID)
	mu.Lock()
	defer mu.Unlock()

	day, err := s.days.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("loading work day: %w", err)
	}
	return day.Clone(), nil
}

// CurrentDay returns a snapshot of the owner's most recent work day.
func (s *Service) CurrentDay(ctx context.Context, ownerID string) (*WorkDay, error) {
	mu := s.locks.get(ownerID)
	mu.Lock()
	defer mu.Unlock()

	day, err := s.loadCurrent(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, ErrDayNotFound
	}
	return day.Clone(), nil
}

// Days returns snapshots of the owner's work days started within [from, to).
func (s *Service) Days(ctx context.Context, ownerID string, from, to time.Time) ([]WorkDay, error) {
	mu := s.locks.get(ownerID)
	mu.Lock()
	defer mu.Unlock()

	days, err := s.days.ListRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing work days: %w", err)
	}
	out := make([]WorkDay, len(days))
	for i := range days {
		out[i] = *days[i].Clone()
	}
	return out, nil
}

// loadCurrent fetches the owner's latest aggregate, mapping absence to nil.
func (s *Service) loadCurrent(ctx context.Context, ownerID string) (*WorkDay, error) {
	day, err := s.days.Current(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading current work day: %w", err)
	}
	return day, nil
}

func stopMeetingAt(m *Meeting, now time.Time) {
	stopped := now
	m.Status = MeetingStopped
	m.StoppedAt = &stopped
	m.DurationMinutes = durationMinutes(m.StartedAt, stopped)
}
