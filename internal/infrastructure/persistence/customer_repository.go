package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/judn/backend/internal/domain/crm"
	"github.com/judn/backend/internal/domain/shared"
	"github.com/judn/backend/internal/infrastructure/persistence/models"
)

// GormCustomerRepository implements crm.Repository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GORM customer repository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

var _ crm.Repository = (*GormCustomerRepository)(nil)

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhone finds a customer by their phone number
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) (*crm.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter crm.CustomerFilter) ([]*crm.Customer, error) {
	var customerModels []models.CustomerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)

	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]*crm.Customer, 0, len(customerModels))
	for i := range customerModels {
		customers = append(customers, customerModels[i].ToDomain())
	}
	return customers, nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter crm.CustomerFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindTopSpenders finds customers ordered by total spent
func (r *GormCustomerRepository) FindTopSpenders(ctx context.Context, limit int) ([]*crm.Customer, error) {
	var customerModels []models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("total_orders > 0").
		Order("total_spent DESC").
		Limit(limit).
		Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]*crm.Customer, 0, len(customerModels))
	for i := range customerModels {
		customers = append(customers, customerModels[i].ToDomain())
	}
	return customers, nil
}

// CountByStatus counts customers per lifecycle stage
func (r *GormCustomerRepository) CountByStatus(ctx context.Context) (map[crm.CustomerStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[crm.CustomerStatus]int64, len(rows))
	for _, row := range rows {
		counts[crm.CustomerStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// CountCreatedSince counts customers created since t
func (r *GormCustomerRepository) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("created_at >= ?", t).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a customer with an optimistic version check
func (r *GormCustomerRepository) Save(ctx context.Context, customer *crm.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var versions []int
		if err := tx.Model(&models.CustomerModel{}).
			Where("id = ?", customer.ID).
			Pluck("version", &versions).Error; err != nil {
			return err
		}

		var model models.CustomerModel
		if len(versions) == 0 {
			model.FromDomain(customer)
			return tx.Create(&model).Error
		}

		currentVersion := versions[0]
		if currentVersion != customer.Version {
			return shared.ErrConcurrencyConflict
		}

		customer.Version++
		customer.UpdatedAt = time.Now()
		model.FromDomain(customer)

		result := tx.Model(&models.CustomerModel{}).
			Where("id = ? AND version = ?", customer.ID, currentVersion).
			Updates(map[string]interface{}{
				"name":               model.Name,
				"email":              model.Email,
				"interest":           model.Interest,
				"platform":           model.Platform,
				"status":             model.Status,
				"notes":              model.Notes,
				"tags":               model.Tags,
				"total_orders":       model.TotalOrders,
				"total_spent":        model.TotalSpent,
				"last_order_date":    model.LastOrderDate,
				"follow_up_required": model.FollowUpRequired,
				"follow_up_date":     model.FollowUpDate,
				"follow_up_notes":    model.FollowUpNotes,
				"history":            model.History,
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
		return nil
	})
}

// Delete removes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter crm.CustomerFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CustomerSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormCustomerRepository) applyFilterWithoutPagination(query *gorm.DB, filter crm.CustomerFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Platform != nil {
		query = query.Where("platform = ?", string(*filter.Platform))
	}
	if filter.Interest != nil {
		query = query.Where("interest = ?", string(*filter.Interest))
	}
	if filter.FollowUp != nil {
		if *filter.FollowUp {
			query = query.Where("follow_up_required = ? AND follow_up_date <= ?", true, time.Now())
		} else {
			query = query.Where("follow_up_required = ?", false)
		}
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ? OR tags::text ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	return query
}
