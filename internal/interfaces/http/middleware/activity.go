package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/judn/backend/internal/application/identity"
)

// actionForMethod maps mutating HTTP methods to audit trail verbs
var actionForMethod = map[string]string{
	http.MethodPost:   "create",
	http.MethodPut:    "update",
	http.MethodPatch:  "update",
	http.MethodDelete: "delete",
}

// ActivityLog records mutating admin requests in the audit trail after the
// handler completes. Reads, failures and unauthenticated requests are not
// recorded.
func ActivityLog(activities *identityapp.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		verb, mutating := actionForMethod[c.Request.Method]
		if !mutating {
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		claims := GetJWTClaims(c)
		if claims == nil || claims.UserID == uuid.Nil {
			return
		}

		resource, entity := auditResource(c.Request.URL.Path)
		if resource == "" {
			return
		}

		activities.Record(c.Request.Context(),
			claims.UserID, claims.Role,
			entity+"."+verb, resource, c.Request.Method+" "+c.Request.URL.Path)
	}
}

// auditResource derives the audit resource and entity name from an admin
// path, e.g. /api/v1/admin/orders/123 -> ("orders/123", "orders")
func auditResource(path string) (string, string) {
	const adminPrefix = "/admin/"
	idx := strings.Index(path, adminPrefix)
	if idx < 0 {
		return "", ""
	}
	rest := strings.Trim(path[idx+len(adminPrefix):], "/")
	if rest == "" {
		return "", ""
	}
	entity := rest
	if slash := strings.Index(rest, "/"); slash >= 0 {
		entity = rest[:slash]
	}
	return rest, entity
}
