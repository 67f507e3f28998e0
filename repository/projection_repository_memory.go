package repository

import (
	"context"
	"sync"

	"mortgage-agent/domain"
)

// ProjectionRepositoryMemory is an in-memory implementation of ProjectionRepository.
type ProjectionRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.ProjectionResult
}

// NewProjectionRepositoryMemory creates a new in-memory projection repository.
func NewProjectionRepositoryMemory() *ProjectionRepositoryMemory {
	return &ProjectionRepositoryMemory{
		data: make(map[string]domain.ProjectionResult),
	}
}

// Save stores a copy of the projection in memory.
func (r *ProjectionRepositoryMemory) Save(
	_ context.Context,
	result domain.ProjectionResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[result.RunID] = result.Clone()
	return nil
}

// Get returns a copy of the stored projection.
func (r *ProjectionRepositoryMemory) Get(
	_ context.Context,
	runID string,
) (domain.ProjectionResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.data[runID]
	if !ok {
		return domain.ProjectionResult{}, ErrNotFound
	}
	return result.Clone(), nil
}
