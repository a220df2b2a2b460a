package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/judn/backend/internal/domain/identity"
	"github.com/judn/backend/internal/infrastructure/persistence/models"
)

// GormActivityRepository implements identity.ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GORM activity repository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

var _ identity.ActivityRepository = (*GormActivityRepository)(nil)

// Append stores an audit trail entry
func (r *GormActivityRepository) Append(ctx context.Context, activity *identity.Activity) error {
	var model models.ActivityModel
	model.FromDomain(activity)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindAll finds audit entries matching the filter, newest first by default
func (r *GormActivityRepository) FindAll(ctx context.Context, filter identity.ActivityFilter) ([]*identity.Activity, error) {
	var activityModels []models.ActivityModel
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ActivityModel{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ActivitySortFields, "timestamp")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&activityModels).Error; err != nil {
		return nil, err
	}

	activities := make([]*identity.Activity, 0, len(activityModels))
	for i := range activityModels {
		activities = append(activities, activityModels[i].ToDomain())
	}
	return activities, nil
}

// Count counts audit entries matching the filter
func (r *GormActivityRepository) Count(ctx context.Context, filter identity.ActivityFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ActivityModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormActivityRepository) applyFilterWithoutPagination(query *gorm.DB, filter identity.ActivityFilter) *gorm.DB {
	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.From != nil {
		query = query.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("timestamp <= ?", *filter.To)
	}

	return query
}
