package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/syatt-io/syatt-fulfillment/internal/application"
	"github.com/syatt-io/syatt-fulfillment/pkg/errors"
	"github.com/syatt-io/syatt-fulfillment/pkg/logging"
	"github.com/syatt-io/syatt-fulfillment/pkg/middleware"
)

// CreateCartRequest creates a storefront cart with an optional preference
type CreateCartRequest struct {
	Lines            []application.CartLineInput `json:"lines" binding:"required,min=1,dive"`
	FulfillmentType  string                      `json:"fulfillmentType" binding:"omitempty,fulfillment_type"`
	PickupLocationID string                      `json:"pickupLocationId" binding:"omitempty,location_id"`
}

// UpdatePreferenceRequest replaces a cart's fulfillment preference
type UpdatePreferenceRequest struct {
	FulfillmentType  string `json:"fulfillmentType" binding:"required,fulfillment_type"`
	PickupLocationID string `json:"pickupLocationId" binding:"omitempty,location_id"`
}

// CartHandler handles cart HTTP requests
type CartHandler struct {
	service *application.CartApplicationService
	logger  *logging.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *application.CartApplicationService, logger *logging.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the cart routes
func (h *CartHandler) RegisterRoutes(r *gin.RouterGroup) {
	carts := r.Group("/carts")
	{
		carts.POST("", h.CreateCart)
		carts.PUT("/:cartId/preference", h.UpdatePreference)
		carts.GET("/:cartId/preference", h.GetPreference)
		carts.GET("/:cartId/preference/history", h.GetPreferenceHistory)
	}
}

// CreateCart handles POST /carts
func (h *CartHandler) CreateCart(c *gin.Context) {
	var req CreateCartRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		middleware.AbortWithAppError(c, appErr)
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"cart.fulfillment_type": req.FulfillmentType,
		"cart.lines":            len(req.Lines),
		"operation":             "create_cart",
	})

	cart, err := h.service.CreateCart(c.Request.Context(), application.CreateCartCommand{
		Lines:            req.Lines,
		FulfillmentType:  req.FulfillmentType,
		PickupLocationID: req.PickupLocationID,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cart)
}

// UpdatePreference handles PUT /carts/:cartId/preference
func (h *CartHandler) UpdatePreference(c *gin.Context) {
	cartID := c.Param("cartId")

	var req UpdatePreferenceRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		middleware.AbortWithAppError(c, appErr)
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"cart.id":               cartID,
		"cart.fulfillment_type": req.FulfillmentType,
		"operation":             "update_preference",
	})

	cart, err := h.service.UpdatePreference(c.Request.Context(), application.UpdatePreferenceCommand{
		CartID:           cartID,
		FulfillmentType:  req.FulfillmentType,
		PickupLocationID: req.PickupLocationID,
		RequestID:        middleware.GetRequestID(c),
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// GetPreferenceHistory handles GET /carts/:cartId/preference/history
func (h *CartHandler) GetPreferenceHistory(c *gin.Context) {
	cartID := c.Param("cartId")

	limit := int64(0)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			middleware.AbortWithAppError(c, errors.ErrBadRequest("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"cart.id":   cartID,
		"operation": "get_preference_history",
	})

	history, err := h.service.GetPreferenceHistory(c.Request.Context(), application.GetPreferenceHistoryQuery{
		CartID: cartID,
		Limit:  limit,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cartId": cartID, "history": history})
}

// GetPreference handles GET /carts/:cartId/preference
func (h *CartHandler) GetPreference(c *gin.Context) {
	cartID := c.Param("cartId")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"cart.id":   cartID,
		"operation": "get_preference",
	})

	preference, err := h.service.GetPreference(c.Request.Context(), application.GetPreferenceQuery{
		CartID: cartID,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, preference)
}
