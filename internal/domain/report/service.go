package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/worklogd/worklogd/internal/domain/workday"
)

// DayReader provides consistent work day snapshots for report building.
type DayReader interface {
	Day(ctx context.Context, ownerID, id string) (*workday.WorkDay, error)
	CurrentDay(ctx context.Context, ownerID string) (*workday.WorkDay, error)
	Days(ctx context.Context, ownerID string, from, to time.Time) ([]workday.WorkDay, error)
}

// Service builds reports on demand from work day snapshots.
type Service struct {
	days   DayReader
	logger *slog.Logger
}

// NewService creates a new report service.
func NewService(days DayReader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{days: days, logger: logger}
}

// ForDay builds a report for one work day. An empty id targets the
// owner's most recent day.
func (s *Service) ForDay(ctx context.Context, ownerID, workDayID string) (*Report, error) {
	var day *workday.WorkDay
	var err error
	if workDayID == "" {
		day, err = s.days.CurrentDay(ctx, ownerID)
	} else {
		day, err = s.days.Day(ctx, ownerID, workDayID)
	}
	if err != nil {
		return nil, err
	}

	rep := Build(day)
	return &rep, nil
}

// ForRange builds one aggregated report over [from, to).
func (s *Service) ForRange(ctx context.Context, ownerID string, from, to time.Time) (*Report, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: range end must be after start", workday.ErrInvalidInput)
	}

	days, err := s.days.Days(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	rep := BuildRange(days)
	if rep.OwnerID == "" {
		rep.OwnerID = ownerID
	}
	return &rep, nil
}
