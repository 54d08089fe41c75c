// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/domain/wishlist"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlist.NewService(db),
	}
}

// List handles GET /wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	resp, err := h.wishlistService.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data":    resp,
	})
}

// Add handles POST /wishlist
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req wishlist.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.wishlistService.Add(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add wishlist item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to wishlist",
		"data":    resp,
	})
}

// Remove handles DELETE /wishlist/:id
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	resp, err := h.wishlistService.Remove(c.Request.Context(), userID, productID)
	if err != nil {
		if errors.Is(err, wishlist.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found in wishlist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove wishlist item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from wishlist",
		"data":    resp,
	})
}
