package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/catalog"
	"github.com/judn/backend/internal/domain/shared"
)

// Service handles product catalog operations
type Service struct {
	productRepo    catalog.Repository
	eventPublisher shared.EventPublisher
}

// NewService creates a new catalog Service
func NewService(productRepo catalog.Repository) *Service {
	return &Service{
		productRepo: productRepo,
	}
}

// SetEventPublisher sets the event publisher
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, req CreateRequest) (*Response, error) {
	if req.SKU != "" {
		exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_SKU", "A product with this SKU already exists")
		}
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Description, catalog.Category(req.Category), req.Brand, req.Price)
	if err != nil {
		return nil, err
	}
	product.CreatedBy = &actorID

	if err := s.applyOptionalFields(product, req); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToResponse(product)
	return &response, nil
}

// GetByID retrieves a product by id
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *Service) GetBySKU(ctx context.Context, sku string) (*Response, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	response := ToResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Response, int64, error) {
	domainFilter := s.buildFilter(filter)

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToResponses(products), total, nil
}

// Update updates a product. The SKU is immutable and cannot be changed.
func (s *Service) Update(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req UpdateRequest) (*Response, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	description := product.Description
	shortDescription := product.ShortDescription
	category := product.Category
	brand := product.Brand
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.ShortDescription != nil {
		shortDescription = *req.ShortDescription
	}
	if req.Category != nil {
		category = catalog.Category(*req.Category)
	}
	if req.Brand != nil {
		brand = *req.Brand
	}
	if err := product.Update(name, description, shortDescription, category, brand); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.OriginalPrice != nil {
		if err := product.SetOriginalPrice(*req.OriginalPrice); err != nil {
			return nil, err
		}
	}
	if req.Sizes != nil {
		if err := product.SetSizes(req.Sizes); err != nil {
			return nil, err
		}
	}
	if req.Colors != nil {
		product.SetColors(toColors(req.Colors))
	}
	if req.Images != nil {
		if err := product.SetImages(toImages(req.Images)); err != nil {
			return nil, err
		}
	}
	if req.Tags != nil {
		product.SetTags(req.Tags)
	}
	if req.FabricMaterial != nil {
		product.SetFabricMaterial(*req.FabricMaterial)
	}
	if req.StockLevel != nil {
		if err := product.SetStockLevel(*req.StockLevel); err != nil {
			return nil, err
		}
	}
	if req.Available != nil {
		product.SetAvailability(*req.Available)
	}
	if req.Featured != nil {
		product.SetFeatured(*req.Featured)
	}

	product.SetUpdatedBy(actorID)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToResponse(product)
	return &response, nil
}

// AdjustStock changes a product's stock level by delta
func (s *Service) AdjustStock(ctx context.Context, id uuid.UUID, actorID uuid.UUID, delta int) (*Response, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.AdjustStock(delta); err != nil {
		return nil, err
	}
	product.SetUpdatedBy(actorID)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *Service) applyOptionalFields(product *catalog.Product, req CreateRequest) error {
	if req.ShortDescription != "" {
		product.ShortDescription = req.ShortDescription
	}
	if req.OriginalPrice != nil {
		if err := product.SetOriginalPrice(*req.OriginalPrice); err != nil {
			return err
		}
	}
	if len(req.Sizes) > 0 {
		if err := product.SetSizes(req.Sizes); err != nil {
			return err
		}
	}
	if len(req.Colors) > 0 {
		product.SetColors(toColors(req.Colors))
	}
	if len(req.Images) > 0 {
		if err := product.SetImages(toImages(req.Images)); err != nil {
			return err
		}
	}
	if len(req.Tags) > 0 {
		product.SetTags(req.Tags)
	}
	if req.FabricMaterial != "" {
		product.SetFabricMaterial(req.FabricMaterial)
	}
	if req.StockLevel > 0 {
		if err := product.SetStockLevel(req.StockLevel); err != nil {
			return err
		}
	}
	if req.Featured {
		product.SetFeatured(true)
	}
	return nil
}

func (s *Service) buildFilter(filter ListFilter) catalog.ProductFilter {
	domainFilter := catalog.ProductFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.Category != nil {
		category := catalog.Category(*filter.Category)
		domainFilter.Category = &category
	}
	domainFilter.Available = filter.Available
	domainFilter.Featured = filter.Featured
	domainFilter.OnSale = filter.OnSale
	if filter.LowStock != nil && *filter.LowStock {
		threshold := catalog.LowStockThreshold
		domainFilter.MaxStockLevel = &threshold
	}

	return domainFilter
}

func (s *Service) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range product.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	product.ClearDomainEvents()
}

func toColors(inputs []ColorInput) []catalog.Color {
	colors := make([]catalog.Color, len(inputs))
	for i, c := range inputs {
		colors[i] = catalog.Color{Name: c.Name, Hex: c.Hex}
	}
	return colors
}

func toImages(inputs []ImageInput) []catalog.Image {
	images := make([]catalog.Image, len(inputs))
	for i, img := range inputs {
		images[i] = catalog.Image{URL: img.URL, Alt: img.Alt, Primary: img.Primary}
	}
	return images
}
