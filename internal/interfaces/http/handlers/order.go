// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/domain/checkout"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/payment"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// OrderHandler handles order and checkout endpoints
type OrderHandler struct {
	orderService    *order.Service
	checkoutService *checkout.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, checkoutService *checkout.Service) *OrderHandler {
	return &OrderHandler{
		orderService:    order.NewService(db),
		checkoutService: checkoutService,
	}
}

// PlaceOrder handles POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req checkout.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.checkoutService.PlaceOrder(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    o,
	})
}

// CreatePaymentIntent handles POST /orders/payment-intent
func (h *OrderHandler) CreatePaymentIntent(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req checkout.IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.checkoutService.CreatePaymentIntent(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}

	message := "Payment intent created successfully"
	status := http.StatusOK
	if resp.IsDemoOrder {
		message = "Order placed in demo mode"
		status = http.StatusCreated
	}

	c.JSON(status, gin.H{
		"message": message,
		"data":    resp,
	})
}

// VerifyPayment handles POST /orders/verify-payment
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req checkout.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.checkoutService.VerifyPayment(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment verified and order placed",
		"data":    o,
	})
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	orders, err := h.orderService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	o, err := h.orderService.GetForUser(c.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, order.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "You do not have access to this order",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to retrieve order",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// ListAllOrders handles GET /admin/orders
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	orders, err := h.orderService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// UpdateOrderStatusRequest carries the target status for an order.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update order status",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    o,
	})
}

// DeleteOrder handles DELETE /admin/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted successfully",
	})
}

// writeCheckoutError maps checkout failures to HTTP statuses.
func (h *OrderHandler) writeCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cart is empty",
		})
	case errors.Is(err, checkout.ErrConcurrentCheckout):
		c.JSON(http.StatusConflict, gin.H{
			"error": "A checkout is already in progress",
		})
	case errors.Is(err, checkout.ErrCartUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Cart is no longer available for this payment",
		})
	case errors.Is(err, payment.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Payment verification failed",
		})
	case errors.Is(err, payment.ErrGatewayUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Payment gateway unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process checkout",
		})
	}
}
