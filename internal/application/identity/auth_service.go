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

// AuthService handles staff authentication: login with lockout,
// token refresh, logout and password changes.
type AuthService struct {
	userRepo       identity.Repository
	jwtService     *auth.JWTService
	tokenBlacklist auth.TokenBlacklist
	resetTokens    auth.ResetTokenStore
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.Repository, jwtService *auth.JWTService, tokenBlacklist auth.TokenBlacklist, resetTokens auth.ResetTokenStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		jwtService:     jwtService,
		tokenBlacklist: tokenBlacklist,
		resetTokens:    resetTokens,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *AuthService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Login authenticates a staff user. Failed attempts count toward lockout;
// the fifth consecutive failure locks the account for two hours. The error
// for a wrong password and an unknown email is deliberately the same.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Info("login failed: unknown email", zap.String("email", req.Email))
		return nil, shared.ErrUnauthorized
	}

	if user.IsLocked() {
		s.logger.Warn("login rejected: account locked",
			zap.String("user_id", user.ID.String()),
			zap.Timep("locked_until", user.LockedUntil))
		return nil, shared.ErrAccountLocked
	}

	if !user.Active {
		s.logger.Info("login rejected: account deactivated", zap.String("user_id", user.ID.String()))
		return nil, shared.ErrUnauthorized
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure()
		if saveErr := s.userRepo.Save(ctx, user); saveErr != nil {
			s.logger.Error("failed to persist login failure", zap.Error(saveErr))
		}
		s.publishEvents(ctx, user)
		if locked {
			s.logger.Warn("account locked after repeated failures",
				zap.String("user_id", user.ID.String()),
				zap.Int("attempts", user.FailedAttempts))
			return nil, shared.ErrAccountLocked
		}
		return nil, shared.ErrUnauthorized
	}

	tokens, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("failed to generate tokens", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_GENERATION_FAILED", "Could not complete login")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("failed to persist login success", zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
		User:         ToUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The used
// refresh token is revoked so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	if revoked, err := s.tokenBlacklist.IsRevoked(ctx, claims.ID); err == nil && revoked {
		return nil, shared.ErrUnauthorized
	}
	if revoked, err := s.tokenBlacklist.IsRevokedForUser(ctx, claims.UserID.String(), claims.IssuedAt.Time); err == nil && revoked {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !user.CanLogin() {
		return nil, shared.ErrUnauthorized
	}

	tokens, err := s.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
		if err := s.tokenBlacklist.Revoke(ctx, claims.ID, ttl); err != nil {
			s.logger.Warn("failed to revoke used refresh token", zap.Error(err))
		}
	}

	return &LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
		User:         ToUserResponse(user),
	}, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.tokenBlacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("failed to revoke token on logout", zap.Error(err))
		return shared.NewDomainError("LOGOUT_FAILED", "Could not complete logout")
	}
	s.logger.Info("user logged out", zap.String("user_id", claims.UserID.String()))
	return nil
}

// CurrentUser returns the profile of the authenticated user
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword changes the caller's own password after verifying the old
// one, then revokes all their outstanding tokens.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	if err := s.tokenBlacklist.RevokeAllForUser(ctx, userID.String(), 168*time.Hour); err != nil {
		s.logger.Warn("failed to revoke sessions after password change", zap.Error(err))
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}

// Register creates a staff account and logs it straight in
func (s *AuthService) Register(ctx context.Context, req CreateUserRequest) (*LoginResponse, error) {
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

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, user)

	tokens, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("failed to generate tokens", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_GENERATION_FAILED", "Could not complete registration")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("failed to persist first login", zap.Error(err))
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
		User:         ToUserResponse(user),
	}, nil
}

// ForgotPassword issues a single-use reset token for the account. The
// response is identical whether or not the email exists so the endpoint
// cannot be used to probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Info("password reset requested for unknown email", zap.String("email", req.Email))
		return "", nil
	}

	token, err := s.resetTokens.Issue(ctx, user.ID.String(), 30*time.Minute)
	if err != nil {
		s.logger.Error("failed to issue reset token", zap.Error(err))
		return "", shared.NewDomainError("RESET_FAILED", "Could not start password reset")
	}

	s.logger.Info("password reset token issued", zap.String("user_id", user.ID.String()))
	return token, nil
}

// ResetPassword consumes a reset token, sets the new password and revokes
// all the user's outstanding sessions
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	userIDStr, err := s.resetTokens.Consume(ctx, req.Token)
	if err != nil {
		return shared.NewDomainError("INVALID_RESET_TOKEN", "Reset token is invalid or expired")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return shared.NewDomainError("INVALID_RESET_TOKEN", "Reset token is invalid or expired")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	user.Unlock()

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	if err := s.tokenBlacklist.RevokeAllForUser(ctx, userID.String(), 168*time.Hour); err != nil {
		s.logger.Warn("failed to revoke sessions after password reset", zap.Error(err))
	}

	s.logger.Info("password reset completed", zap.String("user_id", userID.String()))
	return nil
}

func (s *AuthService) publishEvents(ctx context.Context, user *identity.User) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range user.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	user.ClearDomainEvents()
}
