package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/crm"
	"github.com/judn/backend/internal/domain/shared"
)

// Service handles customer relationship operations
type Service struct {
	customerRepo   crm.Repository
	eventPublisher shared.EventPublisher
}

// NewService creates a new crm Service
func NewService(customerRepo crm.Repository) *Service {
	return &Service{
		customerRepo: customerRepo,
	}
}

// SetEventPublisher sets the event publisher
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new customer record
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, req CreateRequest) (*Response, error) {
	phone := crm.NormalizePhone(req.Phone)
	if existing, err := s.customerRepo.FindByPhone(ctx, phone); err == nil && existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_PHONE", "A customer with this phone number already exists")
	}

	customer, err := crm.NewCustomer(req.Name, req.Phone, crm.Platform(req.Platform))
	if err != nil {
		return nil, err
	}
	customer.CreatedBy = &actorID

	interest := crm.InterestGeneral
	if req.Interest != "" {
		interest = crm.Interest(req.Interest)
	}
	if err := customer.Update(req.Name, req.Email, interest, req.Notes); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	response := ToResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by id
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToResponse(customer)
	return &response, nil
}

// GetByPhone retrieves a customer by phone number
func (s *Service) GetByPhone(ctx context.Context, phone string) (*Response, error) {
	customer, err := s.customerRepo.FindByPhone(ctx, crm.NormalizePhone(phone))
	if err != nil {
		return nil, err
	}
	response := ToResponse(customer)
	return &response, nil
}

// List retrieves customers with filtering and pagination
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Response, int64, error) {
	domainFilter := s.buildFilter(filter)

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToResponses(customers), total, nil
}

// TopSpenders returns the highest-value customers
func (s *Service) TopSpenders(ctx context.Context, limit int) ([]Response, error) {
	if limit <= 0 {
		limit = 10
	}
	customers, err := s.customerRepo.FindTopSpenders(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToResponses(customers), nil
}

// Update updates a customer's profile, status and tags
func (s *Service) Update(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req UpdateRequest) (*Response, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	email := customer.Email
	interest := customer.Interest
	notes := customer.Notes
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Interest != nil {
		interest = crm.Interest(*req.Interest)
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := customer.Update(name, email, interest, notes); err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := customer.SetStatus(crm.CustomerStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Tags != nil {
		customer.SetTags(req.Tags)
	}

	customer.SetUpdatedBy(actorID)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	response := ToResponse(customer)
	return &response, nil
}

// SetFollowUp schedules or clears a customer follow-up
func (s *Service) SetFollowUp(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req FollowUpRequest) (*Response, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Required {
		if req.Date == nil {
			return nil, shared.NewDomainError("INVALID_FOLLOW_UP", "A follow-up date is required")
		}
		customer.ScheduleFollowUp(*req.Date, req.Notes)
	} else {
		customer.ClearFollowUp()
	}

	customer.SetUpdatedBy(actorID)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToResponse(customer)
	return &response, nil
}

// AddContact appends an entry to the customer's communication history
func (s *Service) AddContact(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req ContactRequest) (*Response, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := customer.AddContact(crm.ContactType(req.Type), req.Notes, req.Outcome); err != nil {
		return nil, err
	}
	customer.SetUpdatedBy(actorID)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToResponse(customer)
	return &response, nil
}

// Delete removes a customer record
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

func (s *Service) buildFilter(filter ListFilter) crm.CustomerFilter {
	domainFilter := crm.CustomerFilter{Filter: shared.DefaultFilter()}
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
		status := crm.CustomerStatus(*filter.Status)
		domainFilter.Status = &status
	}
	if filter.Platform != nil {
		platform := crm.Platform(*filter.Platform)
		domainFilter.Platform = &platform
	}
	if filter.Interest != nil {
		interest := crm.Interest(*filter.Interest)
		domainFilter.Interest = &interest
	}
	domainFilter.FollowUp = filter.FollowUp

	return domainFilter
}

func (s *Service) publishEvents(ctx context.Context, customer *crm.Customer) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range customer.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	customer.ClearDomainEvents()
}
