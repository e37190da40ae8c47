package workday

import (
	"context"
	"time"
)

// Repository provides persistence for work day aggregates. Save persists
// the whole aggregate (day, meetings, entries) as one atomic unit;
// implementations must not expose partially written state.
type Repository interface {
	// Current returns the owner's most recent work day with children.
	Current(ctx context.Context, ownerID string) (*WorkDay, error)
	// Get returns a specific work day with children, scoped to the owner.
	Get(ctx context.Context, ownerID, id string) (*WorkDay, error)
	// Save upserts the aggregate and its children in one transaction.
	Save(ctx context.Context, day *WorkDay) error
	// ListRange returns the owner's work days started within [from, to),
	// oldest first, each with children.
	ListRange(ctx context.Context, ownerID string, from, to time.Time) ([]WorkDay, error)
}
