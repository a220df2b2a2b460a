package marketing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/marketing"
	"github.com/judn/backend/internal/domain/shared"
)

// Service handles marketing campaign operations
type Service struct {
	campaignRepo   marketing.Repository
	eventPublisher shared.EventPublisher
}

// NewService creates a new marketing Service
func NewService(campaignRepo marketing.Repository) *Service {
	return &Service{
		campaignRepo: campaignRepo,
	}
}

// SetEventPublisher sets the event publisher
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft campaign
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, req CreateRequest) (*Response, error) {
	campaign, err := marketing.NewCampaign(
		req.Name,
		marketing.Platform(req.Platform),
		marketing.Goal(req.Goal),
		req.StartDate,
		req.EndDate,
		req.Budget,
	)
	if err != nil {
		return nil, err
	}
	campaign.CreatedBy = &actorID
	campaign.Notes = req.Notes
	if len(req.Tags) > 0 {
		campaign.SetTags(req.Tags)
	}

	if err := s.campaignRepo.Save(ctx, campaign); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, campaign)

	response := ToResponse(campaign)
	return &response, nil
}

// GetByID retrieves a campaign by id
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToResponse(campaign)
	return &response, nil
}

// List retrieves campaigns with filtering and pagination
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Response, int64, error) {
	domainFilter := s.buildFilter(filter)

	campaigns, err := s.campaignRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.campaignRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToResponses(campaigns), total, nil
}

// Running returns active campaigns inside their scheduled window
func (s *Service) Running(ctx context.Context) ([]Response, error) {
	campaigns, err := s.campaignRepo.FindRunning(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	return ToResponses(campaigns), nil
}

// StatsByPlatform aggregates campaign numbers per platform
func (s *Service) StatsByPlatform(ctx context.Context) ([]marketing.PlatformStats, error) {
	return s.campaignRepo.StatsByPlatform(ctx)
}

// Update updates a campaign's plan, status and tags
func (s *Service) Update(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req UpdateRequest) (*Response, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := campaign.Name
	goal := campaign.Goal
	start := campaign.StartDate
	end := campaign.EndDate
	budget := campaign.Budget
	notes := campaign.Notes
	if req.Name != nil {
		name = *req.Name
	}
	if req.Goal != nil {
		goal = marketing.Goal(*req.Goal)
	}
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if req.Budget != nil {
		budget = *req.Budget
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := campaign.Update(name, goal, start, end, budget, notes); err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := campaign.SetStatus(marketing.CampaignStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Tags != nil {
		campaign.SetTags(req.Tags)
	}

	campaign.SetUpdatedBy(actorID)

	if err := s.campaignRepo.Save(ctx, campaign); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, campaign)

	response := ToResponse(campaign)
	return &response, nil
}

// LogPerformance records a metrics snapshot and optional spend
func (s *Service) LogPerformance(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req LogPerformanceRequest) (*Response, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	campaign.LogPerformance(marketing.Metrics{
		InstagramViews:   req.Metrics.InstagramViews,
		FacebookAdClicks: req.Metrics.FacebookAdClicks,
		WhatsAppClicks:   req.Metrics.WhatsAppClicks,
		TotalImpressions: req.Metrics.TotalImpressions,
		TotalClicks:      req.Metrics.TotalClicks,
		ConversionRate:   req.Metrics.ConversionRate,
	}, req.Notes)

	if req.Spend != nil {
		if err := campaign.RecordSpend(*req.Spend); err != nil {
			return nil, err
		}
	}

	campaign.SetUpdatedBy(actorID)

	if err := s.campaignRepo.Save(ctx, campaign); err != nil {
		return nil, err
	}

	response := ToResponse(campaign)
	return &response, nil
}

// Delete removes a campaign
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.campaignRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.campaignRepo.Delete(ctx, id)
}

func (s *Service) buildFilter(filter ListFilter) marketing.CampaignFilter {
	domainFilter := marketing.CampaignFilter{Filter: shared.DefaultFilter()}
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
		status := marketing.CampaignStatus(*filter.Status)
		domainFilter.Status = &status
	}
	if filter.Platform != nil {
		platform := marketing.Platform(*filter.Platform)
		domainFilter.Platform = &platform
	}
	if filter.Goal != nil {
		goal := marketing.Goal(*filter.Goal)
		domainFilter.Goal = &goal
	}

	return domainFilter
}

func (s *Service) publishEvents(ctx context.Context, campaign *marketing.Campaign) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range campaign.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	campaign.ClearDomainEvents()
}
