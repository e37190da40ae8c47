package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/worklogd/worklogd/internal/domain/workday"
)

// WorkDayRepository is a mock for repository.WorkDayRepository.
type WorkDayRepository struct {
	mock.Mock
}

func (m *WorkDayRepository) Current(ctx context.Context, ownerID string) (*workday.WorkDay, error) {
	args := m.Called(ctx, ownerID)
	if day, ok := args.Get(0).(*workday.WorkDay); ok {
		return day, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorkDayRepository) Get(ctx context.Context, ownerID, id string) (*workday.WorkDay, error) {
	args := m.Called(ctx, ownerID, id)
	if day, ok := args.Get(0).(*workday.WorkDay); ok {
		return day, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorkDayRepository) Save(ctx context.Context, day *workday.WorkDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func (m *WorkDayRepository) ListRange(ctx context.Context, ownerID string, from, to time.Time) ([]workday.WorkDay, error) {
	args := m.Called(ctx, ownerID, from, to)
	if days, ok := args.Get(0).([]workday.WorkDay); ok {
		return days, args.Error(1)
	}
	return nil, args.Error(1)
}

// APIKeyRepository is a mock for repository.APIKeyRepository.
type APIKeyRepository struct {
	mock.Mock
}

func (m *APIKeyRepository) Add(ctx context.Context, keyHash, ownerID, description string) error {
	args := m.Called(ctx, keyHash, ownerID, description)
	return args.Error(0)
}

func (m *APIKeyRepository) ResolveOwner(ctx context.Context, keyHash string) (string, error) {
	args := m.Called(ctx, keyHash)
	return args.String(0), args.Error(1)
}
