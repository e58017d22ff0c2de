package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spriteforge/autopaint/internal/store/model"
)

func newTestRepo(t *testing.T) *SqliteRepository {
	t.Helper()
	repo, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo.(*SqliteRepository)
}

func TestSessions_LogAndGetRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, s := range []model.Session{
		{ID: "run-1", Prompt: "draw a tree", ProviderID: "gemini", Status: "completed", HasCode: true, LatencyMS: 1200},
		{ID: "run-2", Prompt: "draw a cat", Status: "exhausted", ErrorMessage: "bad key"},
		{ID: "run-3", Prompt: "draw a dog", Status: "cancelled"},
	} {
		s.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Sessions().Log(ctx, &s))
	}

	recent, err := repo.Sessions().GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Newest first
	assert.Equal(t, "run-3", recent[0].ID)
	assert.Equal(t, "run-2", recent[1].ID)
	assert.Equal(t, "bad key", recent[1].ErrorMessage)
}

func TestSessions_GetRecentEmpty(t *testing.T) {
	repo := newTestRepo(t)

	recent, err := repo.Sessions().GetRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
