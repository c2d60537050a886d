// internal/interfaces/http/handlers/system.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/thequick-backend/internal/domain/pricing"
)

// SystemHandler handles the platform-wide delivery condition toggles
type SystemHandler struct {
	pricing *pricing.Service
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(svcs *Services) *SystemHandler {
	return &SystemHandler{pricing: svcs.Pricing}
}

// GetConditions handles GET /system/conditions
func (h *SystemHandler) GetConditions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery conditions retrieved successfully",
		"data":    h.pricing.Conditions(),
	})
}

// UpdateConditionsRequest represents condition toggles. Pointer
// fields distinguish "not sent" from "set to false".
type UpdateConditionsRequest struct {
	RainMode     *bool   `json:"rain_mode"`
	TrafficDelay *bool   `json:"traffic_delay"`
	DemandLevel  *string `json:"demand_level"`
}

// UpdateConditions handles PUT /system/conditions (admin)
func (h *SystemHandler) UpdateConditions(c *gin.Context) {
	var req UpdateConditionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	if req.RainMode != nil {
		if _, err := h.pricing.SetRainMode(ctx, *req.RainMode); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update rain mode",
			})
			return
		}
	}

	if req.TrafficDelay != nil {
		if _, err := h.pricing.SetTrafficDelay(ctx, *req.TrafficDelay); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update traffic delay",
			})
			return
		}
	}

	if req.DemandLevel != nil {
		if _, err := h.pricing.SetDemandLevel(ctx, pricing.DemandLevel(*req.DemandLevel)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery conditions updated successfully",
		"data":    h.pricing.Conditions(),
	})
}

// GetQuote handles GET /system/quote: the surcharge-adjusted fee and
// ETA for a given base, as shown in admin and rider views
func (h *SystemHandler) GetQuote(c *gin.Context) {
	type quoteQuery struct {
		BaseFee int64 `form:"base_fee" binding:"min=0"`
		BaseETA int   `form:"base_eta" binding:"min=0"`
	}

	var q quoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quote computed successfully",
		"data": gin.H{
			"adjusted_fee": h.pricing.AdjustedFee(q.BaseFee),
			"adjusted_eta": h.pricing.AdjustedETA(q.BaseETA),
			"conditions":   h.pricing.Conditions(),
		},
	})
}
