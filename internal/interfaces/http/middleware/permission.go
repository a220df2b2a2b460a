package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/identity"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	Logger *zap.Logger
}

// RequirePermission creates middleware that requires the given permission.
// The check runs against the role carried in the access token; admins
// pass every check.
func RequirePermission(permission identity.Permission) gin.HandlerFunc {
	return RequirePermissionWithConfig(permission, PermissionConfig{})
}

// RequirePermissionWithConfig creates permission middleware with custom config
func RequirePermissionWithConfig(permission identity.Permission, cfg PermissionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortForbidden(c, cfg, permission, "No authentication claims found")
			return
		}

		if !claims.Role.HasPermission(permission) {
			abortForbidden(c, cfg, permission, "Role lacks required permission")
			return
		}

		c.Next()
	}
}

// RequireRole creates middleware that requires one of the given roles
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims != nil {
			for _, role := range roles {
				if claims.Role == role {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ERR_FORBIDDEN",
				"message": "You do not have access to this resource",
			},
		})
	}
}

func abortForbidden(c *gin.Context, cfg PermissionConfig, permission identity.Permission, reason string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Permission denied",
			zap.String("permission", string(permission)),
			zap.String("path", c.Request.URL.Path),
			zap.String("reason", reason),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": "You do not have permission to perform this action",
		},
	})
}
