package handler

import (
	"github.com/gin-gonic/gin"

	marketingapp "github.com/judn/backend/internal/application/marketing"
)

// CampaignHandler handles admin marketing campaign endpoints
type CampaignHandler struct {
	BaseHandler
	campaignService *marketingapp.Service
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaignService *marketingapp.Service) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// List returns a paginated campaign listing
func (h *CampaignHandler) List(c *gin.Context) {
	var filter marketingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	campaigns, total, err := h.campaignService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, campaigns, total, page, pageSize)
}

// GetByID returns one campaign with its performance log
func (h *CampaignHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	resp, err := h.campaignService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Running returns campaigns currently within their date window
func (h *CampaignHandler) Running(c *gin.Context) {
	campaigns, err := h.campaignService.Running(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, campaigns)
}

// StatsByPlatform returns aggregated spend and engagement per platform
func (h *CampaignHandler) StatsByPlatform(c *gin.Context) {
	stats, err := h.campaignService.StatsByPlatform(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// Create adds a marketing campaign
func (h *CampaignHandler) Create(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req marketingapp.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.campaignService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update edits a campaign
func (h *CampaignHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req marketingapp.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.campaignService.Update(c.Request.Context(), id, actorID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// LogPerformance records a metrics snapshot against a campaign
func (h *CampaignHandler) LogPerformance(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req marketingapp.LogPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.campaignService.LogPerformance(c.Request.Context(), id, actorID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a campaign and its performance log
func (h *CampaignHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	if err := h.campaignService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
