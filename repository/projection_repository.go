package repository

import (
	"context"
	"errors"

	"mortgage-agent/domain"
)

// ErrNotFound is returned when no projection is stored under the requested id.
var ErrNotFound = errors.New("not found")

// ProjectionRepository archives projection runs for the current session.
// Implementations store and return deep copies.
type ProjectionRepository interface {
	Save(ctx context.Context, result domain.ProjectionResult) error
	Get(ctx context.Context, runID string) (domain.ProjectionResult, error)
}
