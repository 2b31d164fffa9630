package implementation

import (
	"context"

	"github.com/mrayan007/MonitoringLitterDetection/internal/entity"
	"github.com/mrayan007/MonitoringLitterDetection/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LitterRepositoryImpl struct {
	db *gorm.DB
}

func NewLitterRepository(db *gorm.DB) repository.LitterRepository {
	return &LitterRepositoryImpl{db: db}
}

func (r *LitterRepositoryImpl) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Litter{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *LitterRepositoryImpl) CreateLitter(ctx context.Context, litter *entity.Litter) error {
	return r.db.WithContext(ctx).Create(litter).Error
}

func (r *LitterRepositoryImpl) CreateEnrichedLitter(ctx context.Context, enriched *entity.EnrichedLitter) error {
	return r.db.WithContext(ctx).Create(enriched).Error
}

func (r *LitterRepositoryImpl) GetEnrichedLitters(ctx context.Context) ([]entity.EnrichedLitter, error) {
	var records []entity.EnrichedLitter
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Find(&records).Error
	return records, err
}

func (r *LitterRepositoryImpl) GetEnrichedLitterById(ctx context.Context, id uuid.UUID) (*entity.EnrichedLitter, error) {
	var record entity.EnrichedLitter
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
