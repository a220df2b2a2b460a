package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/judn/backend/internal/domain/identity"
	"github.com/judn/backend/internal/infrastructure/config"
)

var (
	// ErrInvalidToken indicates the token is malformed or has an invalid signature
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("token expired")
	// ErrInvalidTokenType indicates the wrong token type was used
	ErrInvalidTokenType = errors.New("invalid token type")
	// ErrMaxRefreshExceeded indicates the refresh chain has reached its limit
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
)

// TokenType distinguishes access tokens from refresh tokens
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims represents the JWT claims for authenticated users
type Claims struct {
	jwt.RegisteredClaims
	UserID       uuid.UUID     `json:"uid"`
	Email        string        `json:"email"`
	Role         identity.Role `json:"role"`
	Permissions  []string      `json:"perms,omitempty"`
	TokenType    TokenType     `json:"typ"`
	RefreshCount int           `json:"rfc,omitempty"`
}

// TokenPair holds an access token with its companion refresh token
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// JWTService issues and validates signed tokens
type JWTService struct {
	secret          []byte
	refreshSecret   []byte
	accessTTL       time.Duration
	refreshTTL      time.Duration
	issuer          string
	maxRefreshCount int
}

// NewJWTService creates a JWT service from configuration. When no separate
// refresh secret is configured, the access secret signs both token types.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}
	return &JWTService{
		secret:          []byte(cfg.Secret),
		refreshSecret:   []byte(refreshSecret),
		accessTTL:       cfg.AccessTokenExpiration,
		refreshTTL:      cfg.RefreshTokenExpiration,
		issuer:          cfg.Issuer,
		maxRefreshCount: cfg.MaxRefreshCount,
	}
}

// GenerateTokenPair creates an access/refresh token pair for a user
func (s *JWTService) GenerateTokenPair(user *identity.User) (*TokenPair, error) {
	return s.generatePair(user.ID, user.Email, user.Role, 0)
}

func (s *JWTService) generatePair(userID uuid.UUID, email string, role identity.Role, refreshCount int) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.accessTTL)

	perms := make([]string, 0, len(role.Permissions()))
	for _, p := range role.Permissions() {
		perms = append(perms, string(p))
	}

	accessClaims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
		},
		UserID:      userID,
		Email:       email,
		Role:        role,
		Permissions: perms,
		TokenType:   TokenTypeAccess,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refreshClaims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
		UserID:       userID,
		Email:        email,
		Role:         role,
		TokenType:    TokenTypeRefresh,
		RefreshCount: refreshCount,
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry,
	}, nil
}

// ValidateAccessToken parses and validates an access token
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString, s.secret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

// ValidateRefreshToken parses and validates a refresh token
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString, s.refreshSecret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

// RefreshTokenPair exchanges a valid refresh token for a new token pair.
// Each exchange increments the refresh count; once the chain reaches the
// configured maximum the user has to log in again.
func (s *JWTService) RefreshTokenPair(refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if s.maxRefreshCount > 0 && claims.RefreshCount >= s.maxRefreshCount {
		return nil, ErrMaxRefreshExceeded
	}

	return s.generatePair(claims.UserID, claims.Email, claims.Role, claims.RefreshCount+1)
}

func (s *JWTService) parse(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
