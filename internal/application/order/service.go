package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/order"
	"github.com/judn/backend/internal/domain/shared"
)

// Service handles order business operations for the admin panel
type Service struct {
	orderRepo      order.Repository
	eventPublisher shared.EventPublisher
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository) *Service {
	return &Service{
		orderRepo: orderRepo,
	}
}

// SetEventPublisher sets the event publisher for push notifications
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByID retrieves an order by id
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToResponse(o)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its public JUDN-xxx number
func (s *Service) GetByOrderNumber(ctx context.Context, orderNumber string) (*Response, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToResponse(o)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *Service) List(ctx context.Context, filter ListFilter) ([]ListItemResponse, int64, error) {
	domainFilter := s.buildFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToListItemResponses(orders), total, nil
}

// Recent returns the most recently placed orders
func (s *Service) Recent(ctx context.Context, limit int) ([]ListItemResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	orders, err := s.orderRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToListItemResponses(orders), nil
}

// Timeline returns an order's full status history, oldest first
func (s *Service) Timeline(ctx context.Context, id uuid.UUID) ([]StatusChangeResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTimelineResponses(o.Timeline()), nil
}

// UpdateStatus moves an order to a new status and appends the change to
// its history. The actor is recorded on the history entry.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req UpdateStatusRequest) (*Response, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := order.Status(req.Status)
	if err := o.SetStatus(newStatus, &actorID, req.Notes); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToResponse(o)
	return &response, nil
}

// Update updates an order's payment status, tracking number, notes and
// charges. Totals are recomputed on any charge change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req UpdateRequest) (*Response, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PaymentStatus != nil {
		if err := o.SetPaymentStatus(order.PaymentStatus(*req.PaymentStatus)); err != nil {
			return nil, err
		}
	}
	if req.TrackingNumber != nil {
		o.SetTrackingNumber(*req.TrackingNumber)
	}
	if req.AdminNotes != nil {
		o.SetNotes(o.CustomerNotes, *req.AdminNotes)
	}
	if req.Tax != nil || req.Shipping != nil || req.Discount != nil {
		tax, shipping, discount := o.Tax, o.Shipping, o.Discount
		if req.Tax != nil {
			tax = *req.Tax
		}
		if req.Shipping != nil {
			shipping = *req.Shipping
		}
		if req.Discount != nil {
			discount = *req.Discount
		}
		if err := o.SetCharges(tax, shipping, discount); err != nil {
			return nil, err
		}
	}

	o.SetUpdatedBy(actorID)

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToResponse(o)
	return &response, nil
}

func (s *Service) buildFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
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

	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.PaymentStatus != nil {
		domainFilter.Filters["payment_status"] = *filter.PaymentStatus
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	return domainFilter
}

func (s *Service) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		// event delivery is best-effort, a failed publish never fails
		// the operation
		_ = s.eventPublisher.Publish(ctx, event)
	}
	o.ClearDomainEvents()
}
