package handler

import (
	"github.com/gin-gonic/gin"

	storefrontapp "github.com/judn/backend/internal/application/storefront"
)

// StorefrontHandler handles the public storefront endpoints. No
// authentication, no admin fields in any response.
type StorefrontHandler struct {
	BaseHandler
	storefrontService *storefrontapp.Service
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(storefrontService *storefrontapp.Service) *StorefrontHandler {
	return &StorefrontHandler{storefrontService: storefrontService}
}

// Checkout places an order from the public storefront. The
// X-Idempotency-Key header guards against double submission: a replay
// returns the original order without creating anything.
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	var req storefrontapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.IdempotencyKey = c.GetHeader("X-Idempotency-Key")

	resp, err := h.storefrontService.Checkout(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if resp.Replayed {
		h.Success(c, resp)
		return
	}
	h.Created(c, resp)
}

// LookupOrder returns the public view of an order by its order number
func (h *StorefrontHandler) LookupOrder(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	resp, err := h.storefrontService.LookupOrder(c.Request.Context(), number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetCart returns a saved cart by its client-generated key
func (h *StorefrontHandler) GetCart(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		h.BadRequest(c, "Cart key is required")
		return
	}

	resp, err := h.storefrontService.GetCart(c.Request.Context(), key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// SaveCart stores a cart under its client-generated key
func (h *StorefrontHandler) SaveCart(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		h.BadRequest(c, "Cart key is required")
		return
	}

	var req storefrontapp.CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.storefrontService.SaveCart(c.Request.Context(), key, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
