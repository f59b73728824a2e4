package ports

import (
	"context"

	"postsmith/internal/domain"
)

// BuildHistory records completed build runs
type BuildHistory interface {
	Record(ctx context.Context, run *domain.BuildRun) error
	Recent(ctx context.Context, limit int) ([]domain.BuildRun, error)
	Close() error
}
