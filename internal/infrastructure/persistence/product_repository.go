package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/judn/backend/internal/domain/catalog"
	"github.com/judn/backend/internal/domain/shared"
	"github.com/judn/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements catalog.Repository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

var _ catalog.Repository = (*GormProductRepository)(nil)

// FindByID finds a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySKU finds a product by SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, 0, len(productModels))
	for i := range productModels {
		products = append(products, productModels[i].ToDomain())
	}
	return products, nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter catalog.ProductFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySKU checks whether a product with the SKU exists
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("sku = ?", sku).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product with an optimistic version check
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var versions []int
		if err := tx.Model(&models.ProductModel{}).
			Where("id = ?", product.ID).
			Pluck("version", &versions).Error; err != nil {
			return err
		}

		var model models.ProductModel
		if len(versions) == 0 {
			model.FromDomain(product)
			return tx.Create(&model).Error
		}

		currentVersion := versions[0]
		if currentVersion != product.Version {
			return shared.ErrConcurrencyConflict
		}

		product.Version++
		product.UpdatedAt = time.Now()
		model.FromDomain(product)

		result := tx.Model(&models.ProductModel{}).
			Where("id = ? AND version = ?", product.ID, currentVersion).
			Updates(map[string]interface{}{
				"name":              model.Name,
				"description":       model.Description,
				"short_description": model.ShortDescription,
				"category":          model.Category,
				"brand":             model.Brand,
				"price":             model.Price,
				"original_price":    model.OriginalPrice,
				"sizes":             model.Sizes,
				"colors":            model.Colors,
				"images":            model.Images,
				"tags":              model.Tags,
				"fabric_material":   model.FabricMaterial,
				"stock_level":       model.StockLevel,
				"available":         model.Available,
				"featured":          model.Featured,
				"updated_by":        model.UpdatedBy,
				"updated_at":        model.UpdatedAt,
				"version":           model.Version,
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

// Delete removes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter catalog.ProductFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter catalog.ProductFilter) *gorm.DB {
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.Available != nil {
		query = query.Where("available = ?", *filter.Available)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.OnSale != nil {
		// On sale means marked down from a recorded original price
		if *filter.OnSale {
			query = query.Where("original_price > 0 AND price < original_price")
		} else {
			query = query.Where("original_price = 0 OR price >= original_price")
		}
	}
	if filter.MaxStockLevel != nil {
		query = query.Where("stock_level <= ?", *filter.MaxStockLevel)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR brand ILIKE ? OR tags::text ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	return query
}
