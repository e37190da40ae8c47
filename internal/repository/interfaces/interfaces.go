// Package interfaces declares the repository contracts over domain
// aggregates. It lives apart from package repository so that domain
// packages can import repository's error sentinels without a cycle.
package interfaces

import (
	"context"
	"time"

	"github.com/worklogd/worklogd/internal/domain/workday"
)

// WorkDayRepository manages work day aggregate persistence. The engine
// invokes it under its per-owner exclusivity discipline; Save must apply
// the whole aggregate atomically.
type WorkDayRepository interface {
	Current(ctx context.Context, ownerID string) (*workday.WorkDay, error)
	Get(ctx context.Context, ownerID, id string) (*workday.WorkDay, error)
	Save(ctx context.Context, day *workday.WorkDay) error
	ListRange(ctx context.Context, ownerID string, from, to time.Time) ([]workday.WorkDay, error)
}

// APIKeyRepository manages API key persistence for owner resolution.
type APIKeyRepository interface {
	Add(ctx context.Context, keyHash, ownerID, description string) error
	ResolveOwner(ctx context.Context, keyHash string) (string, error)
}
