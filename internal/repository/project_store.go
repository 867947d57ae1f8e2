package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
)

const (
	projectKeyPrefix = "project:"
	projectIndexKey  = "projects"
)

// ProjectRepository stores projects as JSON documents in a Store plus an
// index document listing every known project ID.
type ProjectRepository struct {
	store Store
	// guards read-modify-write of the index document
	mu sync.Mutex
}

func NewProjectRepository(store Store) *ProjectRepository {
	return &ProjectRepository{store: store}
}

func projectKey(id string) string {
	return projectKeyPrefix + id
}

// Create stores a new project and registers it in the index
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	if project.ID == "" {
		return fmt.Errorf("create project: %w", entity.ErrInvalidProject)
	}

	if err := r.put(ctx, project); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.index(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if id == project.ID {
			return nil
		}
	}

	return r.writeIndex(ctx, append(ids, project.ID))
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*entity.Project, error) {
	data, err := r.store.Get(ctx, projectKey(id))
	if err != nil {
		if errors.Is(err, entity.ErrKeyNotFound) {
			return nil, entity.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	var project entity.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}

	return &project, nil
}

// List returns all projects, most recently updated first. Index entries whose
// document is gone are skipped.
func (r *ProjectRepository) List(ctx context.Context) ([]*entity.Project, error) {
	r.mu.Lock()
	ids, err := r.index(ctx)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	projects := make([]*entity.Project, 0, len(ids))
	for _, id := range ids {
		project, err := r.Get(ctx, id)
		if err != nil {
			if errors.Is(err, entity.ErrProjectNotFound) {
				continue
			}
			return nil, err
		}
		projects = append(projects, project)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})

	return projects, nil
}

// Save overwrites an existing project
func (r *ProjectRepository) Save(ctx context.Context, project *entity.Project) error {
	if _, err := r.store.Get(ctx, projectKey(project.ID)); err != nil {
		if errors.Is(err, entity.ErrKeyNotFound) {
			return entity.ErrProjectNotFound
		}
		return fmt.Errorf("save project: %w", err)
	}

	return r.put(ctx, project)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.store.Get(ctx, projectKey(id)); err != nil {
		if errors.Is(err, entity.ErrKeyNotFound) {
			return entity.ErrProjectNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}

	if err := r.store.Delete(ctx, projectKey(id)); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.index(ctx)
	if err != nil {
		return err
	}

	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}

	return r.writeIndex(ctx, kept)
}

func (r *ProjectRepository) put(ctx context.Context, project *entity.Project) error {
	data, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("encode project %s: %w", project.ID, err)
	}

	return r.store.Set(ctx, projectKey(project.ID), data)
}

func (r *ProjectRepository) index(ctx context.Context) ([]string, error) {
	data, err := r.store.Get(ctx, projectIndexKey)
	if err != nil {
		if errors.Is(err, entity.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project index: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode project index: %w", err)
	}

	return ids, nil
}

func (r *ProjectRepository) writeIndex(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode project index: %w", err)
	}

	return r.store.Set(ctx, projectIndexKey, data)
}
