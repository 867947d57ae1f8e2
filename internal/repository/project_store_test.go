package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(id string, updated time.Time) *entity.Project {
	return &entity.Project{
		ID:        id,
		Title:     "title " + id,
		Idea:      "idea " + id,
		Mode:      entity.ModeBrainstorm,
		CreatedAt: updated,
		UpdatedAt: updated,
	}
}

func TestProjectRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(NewMemoryStore())

	p := newProject("p1", time.Now())
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "idea p1", got.Idea)

	got.Summary = "# Summary"
	require.NoError(t, repo.Save(ctx, got))

	got, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "# Summary", got.Summary)

	require.NoError(t, repo.Delete(ctx, "p1"))
	_, err = repo.Get(ctx, "p1")
	assert.ErrorIs(t, err, entity.ErrProjectNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProjectRepositoryMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(NewMemoryStore())

	_, err := repo.Get(ctx, "nope")
	assert.ErrorIs(t, err, entity.ErrProjectNotFound)
	assert.ErrorIs(t, repo.Save(ctx, newProject("nope", time.Now())), entity.ErrProjectNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nope"), entity.ErrProjectNotFound)
	assert.ErrorIs(t, repo.Create(ctx, &entity.Project{}), entity.ErrInvalidProject)
}

func TestProjectRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(NewMemoryStore())
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newProject("old", base)))
	require.NoError(t, repo.Create(ctx, newProject("new", base.Add(2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newProject("mid", base.Add(time.Hour))))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "mid", list[1].ID)
	assert.Equal(t, "old", list[2].ID)
}

func TestProjectRepositoryConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(NewMemoryStore())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Create(ctx, newProject(fmt.Sprintf("p%d", i), time.Now())))
		}(i)
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
