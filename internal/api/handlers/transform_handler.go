package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/syatt-io/syatt-fulfillment/internal/application"
	"github.com/syatt-io/syatt-fulfillment/pkg/logging"
	"github.com/syatt-io/syatt-fulfillment/pkg/middleware"
)

// TransformRequest is the checkout evaluation payload. Every field is
// optional; missing collections are treated as empty.
type TransformRequest struct {
	Preference       string                           `json:"preference"`
	PickupLocationID string                           `json:"pickupLocationId"`
	DeliveryGroups   []application.DeliveryGroupInput `json:"deliveryGroups"`
}

// TransformHandler handles delivery option evaluation requests
type TransformHandler struct {
	service *application.TransformApplicationService
	logger  *logging.Logger
}

// NewTransformHandler creates a new transform handler
func NewTransformHandler(service *application.TransformApplicationService, logger *logging.Logger) *TransformHandler {
	return &TransformHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the transform routes
func (h *TransformHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/delivery-options/transform", h.Transform)
}

// Transform handles POST /delivery-options/transform. It always answers
// 200 with an operations array; a malformed body degrades to an empty
// evaluation rather than an error, so the checkout is never blocked.
func (h *TransformHandler) Transform(c *gin.Context) {
	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Unreadable transform request, returning no operations", "error", err.Error())
		c.JSON(http.StatusOK, application.EvaluationResultDTO{Operations: []application.OperationDTO{}})
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"transform.preference": req.Preference,
		"transform.groups":     len(req.DeliveryGroups),
		"operation":            "evaluate_delivery_options",
	})

	result, err := h.service.EvaluateOptions(c.Request.Context(), application.EvaluateOptionsQuery{
		Preference:       req.Preference,
		PickupLocationID: req.PickupLocationID,
		DeliveryGroups:   req.DeliveryGroups,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
