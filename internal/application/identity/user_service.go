package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/identity"
	"github.com/judn/backend/internal/domain/shared"
	"github.com/judn/backend/internal/infrastructure/auth"
)

// UserService handles staff account administration
type UserService struct {
	userRepo       identity.Repository
	tokenBlacklist auth.TokenBlacklist
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.Repository, tokenBlacklist auth.TokenBlacklist, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:       userRepo,
		tokenBlacklist: tokenBlacklist,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *UserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new staff account
func (s *UserService) Create(ctx context.Context, actorID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_EMAIL", "A user with this email already exists")
	}

	user, err := identity.NewUser(req.Name, req.Email, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := user.Update(req.Name, req.Phone); err != nil {
			return nil, err
		}
	}
	user.CreatedBy = &actorID

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)
	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a staff account
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves staff accounts with filtering and pagination
func (s *UserService) List(ctx context.Context, filter ListUsersFilter) ([]UserResponse, int64, error) {
	domainFilter := s.buildFilter(filter)

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// Update applies partial changes to a staff account. Deactivation and role
// changes revoke all the user's outstanding tokens.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := user.Name
	phone := user.Phone
	if req.Name != nil {
		name = *req.Name
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := user.Update(name, phone); err != nil {
		return nil, err
	}

	revokeSessions := false
	if req.Role != nil && identity.Role(*req.Role) != user.Role {
		if err := user.SetRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
		revokeSessions = true
	}
	if req.Active != nil && *req.Active != user.Active {
		if *req.Active {
			user.Activate()
		} else {
			user.Deactivate()
			revokeSessions = true
		}
	}
	user.UpdatedBy = &actorID

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	if revokeSessions {
		if err := s.tokenBlacklist.RevokeAllForUser(ctx, id.String(), 168*time.Hour); err != nil {
			s.logger.Warn("failed to revoke sessions after account change", zap.Error(err))
		}
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Unlock clears a lockout so the user can log in again
func (s *UserService) Unlock(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Unlock()
	user.UpdatedBy = &actorID

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user unlocked",
		zap.String("user_id", id.String()),
		zap.String("actor_id", actorID.String()))

	response := ToUserResponse(user)
	return &response, nil
}

// ResetPassword sets a new password without the old one and revokes all
// the user's sessions. Admin only.
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, actorID uuid.UUID, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	user.UpdatedBy = &actorID

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	if err := s.tokenBlacklist.RevokeAllForUser(ctx, id.String(), 168*time.Hour); err != nil {
		s.logger.Warn("failed to revoke sessions after password reset", zap.Error(err))
	}
	return nil
}

// Delete removes a staff account. Users cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	if id == actorID {
		return shared.NewDomainError("SELF_DELETE", "You cannot delete your own account")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.tokenBlacklist.RevokeAllForUser(ctx, id.String(), 168*time.Hour); err != nil {
		s.logger.Warn("failed to revoke sessions after deletion", zap.Error(err))
	}
	return nil
}

func (s *UserService) buildFilter(filter ListUsersFilter) identity.UserFilter {
	domainFilter := identity.UserFilter{
		Filter: shared.DefaultFilter(),
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Role != "" {
		role := identity.Role(filter.Role)
		domainFilter.Role = &role
	}
	domainFilter.Active = filter.Active
	domainFilter.Search = filter.Search
	return domainFilter
}

func (s *UserService) publishEvents(ctx context.Context, user *identity.User) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range user.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	user.ClearDomainEvents()
}
