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

// CreateLocationRequest registers a pickup location
type CreateLocationRequest struct {
	LocationID   string `json:"locationId" binding:"required,location_id"`
	Name         string `json:"name" binding:"required,safe_string"`
	Address      string `json:"address" binding:"omitempty,safe_string"`
	City         string `json:"city" binding:"omitempty,safe_string"`
	Province     string `json:"province" binding:"omitempty,safe_string"`
	Country      string `json:"country" binding:"omitempty,safe_string"`
	PostalCode   string `json:"postalCode" binding:"omitempty,safe_string"`
	Phone        string `json:"phone" binding:"omitempty,safe_string"`
	Instructions string `json:"instructions" binding:"omitempty,safe_string"`
}

// UpdateLocationRequest updates a pickup location
type UpdateLocationRequest struct {
	Name         string `json:"name" binding:"required,safe_string"`
	Address      string `json:"address" binding:"omitempty,safe_string"`
	Instructions string `json:"instructions" binding:"omitempty,safe_string"`
}

// LocationHandler handles pickup location HTTP requests
type LocationHandler struct {
	service *application.LocationApplicationService
	logger  *logging.Logger
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(service *application.LocationApplicationService, logger *logging.Logger) *LocationHandler {
	return &LocationHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the pickup location routes
func (h *LocationHandler) RegisterRoutes(r *gin.RouterGroup) {
	locations := r.Group("/pickup-locations")
	{
		locations.GET("", h.ListLocations)
		locations.POST("", h.CreateLocation)
		locations.GET("/:locationId", h.GetLocation)
		locations.PUT("/:locationId", h.UpdateLocation)
		locations.DELETE("/:locationId", h.DeleteLocation)
	}
}

// ListLocations handles GET /pickup-locations. activeOnly defaults to
// true, the storefront widget only ever shows active locations.
func (h *LocationHandler) ListLocations(c *gin.Context) {
	activeOnly := true
	if raw := c.Query("activeOnly"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.AbortWithAppError(c, errors.ErrBadRequest("activeOnly must be a boolean"))
			return
		}
		activeOnly = parsed
	}

	locations, err := h.service.ListLocations(c.Request.Context(), application.ListLocationsQuery{
		ActiveOnly: activeOnly,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// CreateLocation handles POST /pickup-locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		middleware.AbortWithAppError(c, appErr)
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"location.id": req.LocationID,
		"operation":   "create_location",
	})

	location, err := h.service.CreateLocation(c.Request.Context(), application.CreateLocationCommand{
		LocationID:   req.LocationID,
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		Province:     req.Province,
		Country:      req.Country,
		PostalCode:   req.PostalCode,
		Phone:        req.Phone,
		Instructions: req.Instructions,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, location)
}

// GetLocation handles GET /pickup-locations/:locationId
func (h *LocationHandler) GetLocation(c *gin.Context) {
	location, err := h.service.GetLocation(c.Request.Context(), c.Param("locationId"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// UpdateLocation handles PUT /pickup-locations/:locationId
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		middleware.AbortWithAppError(c, appErr)
		return
	}

	location, err := h.service.UpdateLocation(c.Request.Context(), application.UpdateLocationCommand{
		LocationID:   c.Param("locationId"),
		Name:         req.Name,
		Address:      req.Address,
		Instructions: req.Instructions,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// DeleteLocation handles DELETE /pickup-locations/:locationId
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	err := h.service.DeleteLocation(c.Request.Context(), application.DeleteLocationCommand{
		LocationID: c.Param("locationId"),
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
