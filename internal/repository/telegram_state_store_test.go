package repository

import (
	"context"
	"testing"

	"github.com/MVVYSHNAV/idea-generator/internal/telegram/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramStateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTelegramStateRepository(NewMemoryStore())

	_, err := repo.Get(ctx, 42)
	assert.ErrorIs(t, err, state.ErrSessionNotFound)

	require.NoError(t, repo.Set(ctx, &state.TelegramSession{UserID: 42, ProjectID: "p1"}))

	got, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ProjectID)

	require.NoError(t, repo.Delete(ctx, 42))
	_, err = repo.Get(ctx, 42)
	assert.ErrorIs(t, err, state.ErrSessionNotFound)
}
