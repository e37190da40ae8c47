package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/worklogd/worklogd/internal/repository"
)

func TestAPIKeyRepository_AddAndResolve(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "hash1", "owner1", "laptop key"))

	ownerID, err := repo.ResolveOwner(ctx, "hash1")
	require.NoError(t, err)
	require.Equal(t, "owner1", ownerID)
}

func TestAPIKeyRepository_ResolveUnknown(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	_, err := repo.ResolveOwner(ctx, "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAPIKeyRepository_ResolveTouchesLastUsed(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "hash1", "owner1", ""))

	var before any
	require.NoError(t, db.QueryRow("SELECT last_used FROM api_keys WHERE key_hash = ?", "hash1").Scan(&before))
	require.Nil(t, before)

	_, err := repo.ResolveOwner(ctx, "hash1")
	require.NoError(t, err)

	var after any
	require.NoError(t, db.QueryRow("SELECT last_used FROM api_keys WHERE key_hash = ?", "hash1").Scan(&after))
	require.NotNil(t, after)
}
