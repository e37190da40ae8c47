package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/worklogd/worklogd/internal/repository"
)

// APIKeyRepository implements repository.APIKeyRepository for SQLite
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Add stores a hashed API key for an owner.
func (r *APIKeyRepository) Add(ctx context.Context, keyHash, ownerID, description string) error {
	query := `
		INSERT INTO api_keys (key_hash, owner_id, created_at, description)
		VALUES (?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, keyHash, ownerID, time.Now(), description); err != nil {
		return fmt.Errorf("failed to add api key: %w", err)
	}
	return nil
}

// ResolveOwner returns the owner for a hashed API key and records its use.
func (r *APIKeyRepository) ResolveOwner(ctx context.Context, keyHash string) (string, error) {
	var ownerID string
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id FROM api_keys WHERE key_hash = ?`, keyHash,
	).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now(), keyHash,
	); err != nil {
		return "", fmt.Errorf("failed to touch api key: %w", err)
	}
	return ownerID, nil
}
