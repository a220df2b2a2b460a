package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/identity"
	"github.com/judn/backend/internal/domain/shared"
)

// ActivityService records and queries the admin audit trail. Recording is
// fire-and-forget: failures are logged and swallowed so the audited action
// itself never fails.
type ActivityService struct {
	activityRepo identity.ActivityRepository
	logger       *zap.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo identity.ActivityRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Record appends an audit entry
func (s *ActivityService) Record(ctx context.Context, actorID uuid.UUID, actorRole identity.Role, action, resource, detail string) {
	activity := identity.NewActivity(actorID, actorRole, action, resource, detail)
	if err := s.activityRepo.Append(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity",
			zap.String("action", action),
			zap.String("resource", resource),
			zap.Error(err))
	}
}

// ListActivitiesFilter narrows audit trail queries
type ListActivitiesFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	ActorID  string `form:"actor_id"`
	Action   string `form:"action"`
}

// List returns audit entries, newest first
func (s *ActivityService) List(ctx context.Context, filter ListActivitiesFilter) ([]ActivityResponse, int64, error) {
	domainFilter := identity.ActivityFilter{
		Filter: shared.DefaultFilter(),
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.ActorID != "" {
		if id, err := uuid.Parse(filter.ActorID); err == nil {
			domainFilter.ActorID = &id
		}
	}
	domainFilter.Action = filter.Action

	activities, err := s.activityRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.activityRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToActivityResponses(activities), total, nil
}
