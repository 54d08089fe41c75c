// internal/interfaces/http/handlers/newsletter.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/domain/newsletter"
	"gorm.io/gorm"
)

// NewsletterHandler handles newsletter endpoints
type NewsletterHandler struct {
	newsletterService *newsletter.Service
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(db *gorm.DB) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterService: newsletter.NewService(db),
	}
}

// Subscribe handles POST /newsletter/subscribe
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req newsletter.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sub, err := h.newsletterService.Subscribe(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, newsletter.ErrAlreadySubscribed) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Email already subscribed",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to subscribe",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Subscribed successfully",
		"data":    sub,
	})
}

// List handles GET /admin/newsletter
func (h *NewsletterHandler) List(c *gin.Context) {
	subs, err := h.newsletterService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve subscribers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscribers retrieved successfully",
		"data":    subs,
	})
}

// Delete handles DELETE /admin/newsletter/:id
func (h *NewsletterHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.newsletterService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, newsletter.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Subscriber not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete subscriber",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscriber deleted successfully",
	})
}
