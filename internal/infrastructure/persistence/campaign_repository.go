package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/judn/backend/internal/domain/marketing"
	"github.com/judn/backend/internal/domain/shared"
	"github.com/judn/backend/internal/infrastructure/persistence/models"
)

// GormCampaignRepository implements marketing.Repository using GORM
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewGormCampaignRepository creates a new GORM campaign repository
func NewGormCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

var _ marketing.Repository = (*GormCampaignRepository)(nil)

// FindByID finds a campaign by ID including its performance logs
func (r *GormCampaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketing.Campaign, error) {
	var model models.CampaignModel
	if err := r.db.WithContext(ctx).
		Preload("Logs", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds campaigns matching the filter
func (r *GormCampaignRepository) FindAll(ctx context.Context, filter marketing.CampaignFilter) ([]*marketing.Campaign, error) {
	var campaignModels []models.CampaignModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CampaignModel{}).Preload("Logs"),
		filter,
	)

	if err := query.Find(&campaignModels).Error; err != nil {
		return nil, err
	}

	campaigns := make([]*marketing.Campaign, 0, len(campaignModels))
	for i := range campaignModels {
		campaigns = append(campaigns, campaignModels[i].ToDomain())
	}
	return campaigns, nil
}

// Count counts campaigns matching the filter
func (r *GormCampaignRepository) Count(ctx context.Context, filter marketing.CampaignFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CampaignModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindRunning finds active campaigns inside their scheduled window
func (r *GormCampaignRepository) FindRunning(ctx context.Context, now time.Time) ([]*marketing.Campaign, error) {
	var campaignModels []models.CampaignModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND start_date <= ? AND end_date >= ?", string(marketing.StatusActive), now, now).
		Order("start_date ASC").
		Find(&campaignModels).Error; err != nil {
		return nil, err
	}

	campaigns := make([]*marketing.Campaign, 0, len(campaignModels))
	for i := range campaignModels {
		campaigns = append(campaigns, campaignModels[i].ToDomain())
	}
	return campaigns, nil
}

// StatsByPlatform aggregates campaign counts, budget and metrics per platform
func (r *GormCampaignRepository) StatsByPlatform(ctx context.Context) ([]marketing.PlatformStats, error) {
	var rows []struct {
		Platform         string
		Count            int64
		TotalBudget      decimal.Decimal
		TotalSpent       decimal.Decimal
		TotalClicks      int64
		TotalImpressions int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Select("platform, COUNT(*) AS count, " +
			"COALESCE(SUM(budget), 0) AS total_budget, " +
			"COALESCE(SUM(spent), 0) AS total_spent, " +
			"COALESCE(SUM(total_clicks), 0) AS total_clicks, " +
			"COALESCE(SUM(total_impressions), 0) AS total_impressions").
		Group("platform").
		Order("platform ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := make([]marketing.PlatformStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, marketing.PlatformStats{
			Platform:         marketing.Platform(row.Platform),
			Count:            row.Count,
			TotalBudget:      row.TotalBudget.StringFixed(2),
			TotalSpent:       row.TotalSpent.StringFixed(2),
			TotalClicks:      row.TotalClicks,
			TotalImpressions: row.TotalImpressions,
		})
	}
	return stats, nil
}

// Save creates or updates a campaign with an optimistic version check.
// Performance logs are append-only.
func (r *GormCampaignRepository) Save(ctx context.Context, campaign *marketing.Campaign) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var versions []int
		if err := tx.Model(&models.CampaignModel{}).
			Where("id = ?", campaign.ID).
			Pluck("version", &versions).Error; err != nil {
			return err
		}

		var model models.CampaignModel
		if len(versions) == 0 {
			model.FromDomain(campaign)
			return tx.Create(&model).Error
		}

		currentVersion := versions[0]
		if currentVersion != campaign.Version {
			return shared.ErrConcurrencyConflict
		}

		campaign.Version++
		campaign.UpdatedAt = time.Now()
		model.FromDomain(campaign)

		result := tx.Model(&models.CampaignModel{}).
			Where("id = ? AND version = ?", campaign.ID, currentVersion).
			Updates(map[string]interface{}{
				"name":               model.Name,
				"platform":           model.Platform,
				"goal":               model.Goal,
				"status":             model.Status,
				"start_date":         model.StartDate,
				"end_date":           model.EndDate,
				"budget":             model.Budget,
				"spent":              model.Spent,
				"instagram_views":    model.InstagramViews,
				"facebook_ad_clicks": model.FacebookAdClicks,
				"whats_app_clicks":   model.WhatsAppClicks,
				"total_impressions":  model.TotalImpressions,
				"total_clicks":       model.TotalClicks,
				"conversion_rate":    model.ConversionRate,
				"notes":              model.Notes,
				"tags":               model.Tags,
				"updated_by":         model.UpdatedBy,
				"updated_at":         model.UpdatedAt,
				"version":            model.Version,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		for i := range model.Logs {
			if err := tx.Save(&model.Logs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a campaign and its performance logs
func (r *GormCampaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&models.PerformanceLogModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.CampaignModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormCampaignRepository) applyFilter(query *gorm.DB, filter marketing.CampaignFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CampaignSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormCampaignRepository) applyFilterWithoutPagination(query *gorm.DB, filter marketing.CampaignFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Platform != nil {
		query = query.Where("platform = ?", string(*filter.Platform))
	}
	if filter.Goal != nil {
		query = query.Where("goal = ?", string(*filter.Goal))
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR tags::text ILIKE ?", searchPattern, searchPattern)
	}

	return query
}
