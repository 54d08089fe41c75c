// internal/interfaces/http/handlers/content.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/domain/content"
	"gorm.io/gorm"
)

// ContentHandler handles carousel and contact endpoints
type ContentHandler struct {
	contentService *content.Service
}

// NewContentHandler creates a new content handler
func NewContentHandler(db *gorm.DB) *ContentHandler {
	return &ContentHandler{
		contentService: content.NewService(db),
	}
}

// Carousel handles GET /carousel
func (h *ContentHandler) Carousel(c *gin.Context) {
	slides, err := h.contentService.ActiveSlides(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve carousel",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Carousel retrieved successfully",
		"data":    slides,
	})
}

// AllSlides handles GET /admin/carousel
func (h *ContentHandler) AllSlides(c *gin.Context) {
	slides, err := h.contentService.AllSlides(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve carousel",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Carousel retrieved successfully",
		"data":    slides,
	})
}

// CreateSlide handles POST /admin/carousel
func (h *ContentHandler) CreateSlide(c *gin.Context) {
	var req content.SlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	slide, err := h.contentService.CreateSlide(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create slide",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Slide created successfully",
		"data":    slide,
	})
}

// UpdateSlide handles PUT /admin/carousel/:id
func (h *ContentHandler) UpdateSlide(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req content.SlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	slide, err := h.contentService.UpdateSlide(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slide not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update slide",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Slide updated successfully",
		"data":    slide,
	})
}

// DeleteSlide handles DELETE /admin/carousel/:id
func (h *ContentHandler) DeleteSlide(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.contentService.DeleteSlide(c.Request.Context(), id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slide not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete slide",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Slide deleted successfully",
	})
}

// SubmitContact handles POST /contact
func (h *ContentHandler) SubmitContact(c *gin.Context) {
	var req content.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	msg, err := h.contentService.SubmitContact(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to submit message",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message submitted successfully",
		"data":    msg,
	})
}

// ListContacts handles GET /admin/contacts
func (h *ContentHandler) ListContacts(c *gin.Context) {
	msgs, err := h.contentService.ListContacts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve messages",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Messages retrieved successfully",
		"data":    msgs,
	})
}

// DeleteContact handles DELETE /admin/contacts/:id
func (h *ContentHandler) DeleteContact(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.contentService.DeleteContact(c.Request.Context(), id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Message not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete message",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message deleted successfully",
	})
}
