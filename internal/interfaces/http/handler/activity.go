package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/judn/backend/internal/application/identity"
)

// ActivityHandler exposes the audit trail to admins
type ActivityHandler struct {
	BaseHandler
	activityService *identityapp.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *identityapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// List returns audit trail entries, newest first
func (h *ActivityHandler) List(c *gin.Context) {
	var filter identityapp.ListActivitiesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	entries, total, err := h.activityService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, entries, total, page, pageSize)
}
