// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/thequick-backend/internal/domain/cart"
	"github.com/your-org/thequick-backend/internal/domain/order"
	"github.com/your-org/thequick-backend/internal/interfaces/http/middleware"
	"github.com/your-org/thequick-backend/internal/pkg/pdf"
)

// OrderHandler handles checkout and order tracking endpoints
type OrderHandler struct {
	cartService *cart.Service
	tracker     *order.Tracker
	pdfService  *pdf.Service
	log         *logrus.Entry
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(svcs *Services, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		cartService: svcs.Cart,
		tracker:     svcs.Orders,
		pdfService:  svcs.PDF,
		log:         log.WithField("component", "order-handler"),
	}
}

// CreateOrderRequest represents checkout data
type CreateOrderRequest struct {
	DeliveryAddress order.DeliveryAddress `json:"delivery_address" binding:"required"`
	PaymentMethod   string                `json:"payment_method" binding:"required,oneof=cash card upi wallet"`
}

// CreateOrder handles POST /orders. Placing the order and clearing
// the cart must both happen or neither: a failed cart clear cancels
// the freshly placed order so no ghost cart survives checkout.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	sessionID := getOrCreateSessionID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	snapshot, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	ord, err := h.tracker.CreateOrder(order.CreateOrderRequest{
		UserID:          userID,
		Cart:            snapshot,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   order.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if _, err := h.cartService.ClearCart(c.Request.Context(), sessionID); err != nil {
		// Compensate: the order must not survive with its cart intact
		if _, cancelErr := h.tracker.Cancel(userID, ord.ID, "checkout failed to clear cart"); cancelErr != nil {
			h.log.WithError(cancelErr).Error("Failed to cancel order after cart clear failure")
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to complete checkout",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    ord,
	})
}

// ownerScope returns the user id order lookups are scoped to.
// Customers see only their own orders; staff see everything.
func ownerScope(c *gin.Context) string {
	if role, ok := middleware.GetUserRoleFromContext(c); ok && role.IsStaff() {
		return ""
	}
	userID, _ := middleware.GetUserIDFromContext(c)
	return userID
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	status := order.Status(c.Query("status"))
	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    h.tracker.ListOrders(ownerScope(c), status),
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	ord, err := h.tracker.GetOrder(ownerScope(c), c.Param("id"))
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    ord,
	})
}

// GetCurrentOrder handles GET /orders/current
func (h *OrderHandler) GetCurrentOrder(c *gin.Context) {
	ord, err := h.tracker.CurrentOrder()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No order is currently being tracked",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Current order retrieved successfully",
		"data":    ord,
	})
}

// AdvanceOrder handles PUT /orders/:id/advance (admin). The same
// legality rules apply as for the automatic progression.
func (h *OrderHandler) AdvanceOrder(c *gin.Context) {
	ord, err := h.tracker.Advance(c.Param("id"))
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order advanced successfully",
		"data":    ord,
	})
}

// CancelOrderRequest carries an optional cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder handles PUT /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	var req CancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	ord, err := h.tracker.Cancel(ownerScope(c), c.Param("id"), req.Reason)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"data":    ord,
	})
}

// GetReceipt handles GET /orders/:id/receipt
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	ord, err := h.tracker.GetOrder(ownerScope(c), c.Param("id"))
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	receipt, err := h.pdfService.GenerateReceipt(ord)
	if err != nil {
		h.log.WithError(err).Error("Failed to generate receipt")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", ord.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", receipt.Bytes())
}

// respondOrderError maps order domain errors to HTTP responses
func (h *OrderHandler) respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errors.Is(err, order.ErrTerminalState):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Order is already in a terminal state",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Order operation failed",
		})
	}
}
