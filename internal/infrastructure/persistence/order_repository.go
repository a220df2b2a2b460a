package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/judn/backend/internal/domain/order"
	"github.com/judn/backend/internal/domain/shared"
	"github.com/judn/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

var _ order.Repository = (*GormOrderRepository)(nil)

// FindByID finds an order by ID including its items and status history
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("timestamp ASC") }).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds an order by its public order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("timestamp ASC") }).
		Where("order_number = ?", orderNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Preload("Items").Preload("StatusHistory"),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, *orderModels[i].ToDomain())
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindRecent finds the most recently created orders
func (r *GormOrderRepository) FindRecent(ctx context.Context, limit int) ([]order.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory").
		Order("created_at DESC").
		Limit(limit).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, *orderModels[i].ToDomain())
	}
	return orders, nil
}

// FindByDateRange finds orders created within [start, end]
func (r *GormOrderRepository) FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]order.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).
			Preload("Items").
			Preload("StatusHistory").
			Where("created_at >= ? AND created_at <= ?", start, end),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, *orderModels[i].ToDomain())
	}
	return orders, nil
}

// CountByStatus counts orders per status
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int64, len(rows))
	for _, row := range rows {
		counts[order.Status(row.Status)] = row.Count
	}
	return counts, nil
}

// SummarizeSales aggregates count and revenue over sales-counting orders,
// optionally bounded by a creation date range
func (r *GormOrderRepository) SummarizeSales(ctx context.Context, start, end *time.Time) (*order.SalesSummary, error) {
	var row struct {
		OrderCount int64
		TotalSales decimal.Decimal
	}

	query := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("COUNT(*) AS order_count, COALESCE(SUM(total), 0) AS total_sales").
		Where("status IN ?", salesStatusStrings())
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}

	if err := query.Scan(&row).Error; err != nil {
		return nil, err
	}

	return &order.SalesSummary{
		OrderCount: row.OrderCount,
		TotalSales: row.TotalSales,
	}, nil
}

// SalesByDay buckets sales-counting orders by creation day, oldest first
func (r *GormOrderRepository) SalesByDay(ctx context.Context, start, end time.Time) ([]order.DailySales, error) {
	var rows []struct {
		Day        time.Time
		OrderCount int64
		TotalSales decimal.Decimal
	}

	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("DATE(created_at) AS day, COUNT(*) AS order_count, COALESCE(SUM(total), 0) AS total_sales").
		Where("status IN ?", salesStatusStrings()).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	buckets := make([]order.DailySales, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, order.DailySales{
			Date:       row.Day,
			OrderCount: row.OrderCount,
			TotalSales: row.TotalSales,
		})
	}
	return buckets, nil
}

// Save creates or updates an order together with its items and status
// history. Updates take an optimistic lock on the aggregate version.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var versions []int
		if err := tx.Model(&models.OrderModel{}).
			Where("id = ?", o.ID).
			Pluck("version", &versions).Error; err != nil {
			return err
		}

		var model models.OrderModel
		if len(versions) == 0 {
			model.FromDomain(o)
			return tx.Create(&model).Error
		}

		currentVersion := versions[0]
		if currentVersion != o.Version {
			return shared.ErrConcurrencyConflict
		}

		o.Version++
		o.UpdatedAt = time.Now()
		model.FromDomain(o)

		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND version = ?", o.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":          model.Status,
				"subtotal":        model.Subtotal,
				"tax":             model.Tax,
				"shipping":        model.Shipping,
				"discount":        model.Discount,
				"total":           model.Total,
				"payment_status":  model.PaymentStatus,
				"tracking_number": model.TrackingNumber,
				"customer_notes":  model.CustomerNotes,
				"admin_notes":     model.AdminNotes,
				"updated_by":      model.UpdatedBy,
				"updated_at":      model.UpdatedAt,
				"version":         model.Version,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		// Reconcile line items: delete removed ones, upsert the rest
		itemIDs := make([]uuid.UUID, len(model.Items))
		for i, item := range model.Items {
			itemIDs[i] = item.ID
		}
		if len(itemIDs) > 0 {
			if err := tx.Where("order_id = ? AND id NOT IN ?", o.ID, itemIDs).
				Delete(&models.OrderItemModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("order_id = ?", o.ID).
				Delete(&models.OrderItemModel{}).Error; err != nil {
				return err
			}
		}
		for i := range model.Items {
			if err := tx.Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}

		// Status history is append-only
		for i := range model.StatusHistory {
			if err := tx.Save(&model.StatusHistory[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ? OR customer_phone ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "payment_method":
			query = query.Where("payment_method = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

func salesStatusStrings() []string {
	statuses := order.SalesStatuses()
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return values
}
