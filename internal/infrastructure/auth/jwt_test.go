package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judn/backend/internal/domain/identity"
	"github.com/judn/backend/internal/infrastructure/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "judn-backend",
		MaxRefreshCount:        3,
	}
}

func testUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Test User", "test@judn.store", "password123", role)
	require.NoError(t, err)
	return user
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	user := testUser(t, identity.RoleOrderManager)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), pair.ExpiresAt, 5*time.Second)
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	user := testUser(t, identity.RoleOrderManager)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, identity.RoleOrderManager, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	// access tokens carry the role's permission set
	assert.Contains(t, claims.Permissions, string(identity.PermOrdersWrite))
	assert.NotContains(t, claims.Permissions, string(identity.PermProductsWrite))
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	user := testUser(t, identity.RoleAdmin)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	user := testUser(t, identity.RoleAdmin)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
	_, err = svc.ValidateAccessToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpiration = -time.Minute
	svc := NewJWTService(cfg)
	user := testUser(t, identity.RoleAdmin)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	issuing := testJWTConfig()
	issuing.Issuer = "someone-else"
	svc := NewJWTService(testJWTConfig())
	other := NewJWTService(issuing)
	user := testUser(t, identity.RoleAdmin)

	pair, err := other.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	user := testUser(t, identity.RoleMarketingTeam)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(refreshed.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.RefreshCount)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, identity.RoleMarketingTeam, claims.Role)
}

func TestJWTService_RefreshChainLimit(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	user := testUser(t, identity.RoleAdmin)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	// config allows 3 refreshes; the 4th must fail
	for i := 0; i < 3; i++ {
		pair, err = svc.RefreshTokenPair(pair.RefreshToken)
		require.NoError(t, err)
	}

	_, err = svc.RefreshTokenPair(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryTokenBlacklist()

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// expired entries drop out
	require.NoError(t, bl.Revoke(ctx, "jti-2", -time.Second))
	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_UserCutoff(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryTokenBlacklist()
	userID := "user-1"

	issuedBefore := time.Now().Add(-time.Minute)
	require.NoError(t, bl.RevokeAllForUser(ctx, userID, time.Hour))

	revoked, err := bl.IsRevokedForUser(ctx, userID, issuedBefore)
	require.NoError(t, err)
	assert.True(t, revoked)

	issuedAfter := time.Now().Add(time.Minute)
	revoked, err = bl.IsRevokedForUser(ctx, userID, issuedAfter)
	require.NoError(t, err)
	assert.False(t, revoked)
}
