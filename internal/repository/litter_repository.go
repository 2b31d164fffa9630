package repository

import (
	"context"

	"github.com/mrayan007/MonitoringLitterDetection/internal/entity"

	"github.com/google/uuid"
)

// LitterRepository is an append-only store for raw and enriched records.
// Creates are fail-fast: inserting an existing id returns an error, it never
// overwrites. Callers check Exists first; a lost race between Exists and
// Create still surfaces as a create error.
type LitterRepository interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CreateLitter(ctx context.Context, litter *entity.Litter) error
	CreateEnrichedLitter(ctx context.Context, enriched *entity.EnrichedLitter) error

	GetEnrichedLitters(ctx context.Context) ([]entity.EnrichedLitter, error)
	GetEnrichedLitterById(ctx context.Context, id uuid.UUID) (*entity.EnrichedLitter, error)
}
