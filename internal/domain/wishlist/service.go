// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-api/internal/domain/product"
	"gorm.io/gorm"
)

// ErrItemNotFound is returned when removing a product that is not on
// the wishlist.
var ErrItemNotFound = errors.New("item not found in wishlist")

// Service handles wishlist business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ItemResponse is a wishlist entry with its product loaded.
type ItemResponse struct {
	ID        uint             `json:"id"`
	ProductID uint             `json:"product_id"`
	Product   *product.Product `json:"product,omitempty"`
}

// ListResponse is a user's full wishlist.
type ListResponse struct {
	Items []ItemResponse `json:"items"`
	Count int            `json:"count"`
}

// AddRequest identifies a product to wishlist.
type AddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// List returns the user's wishlist with product details.
func (s *Service) List(ctx context.Context, userID uint) (*ListResponse, error) {
	var items []Item
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist: %w", err)
	}

	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		resp := ItemResponse{ID: item.ID, ProductID: item.ProductID}

		var prod product.Product
		if err := s.db.WithContext(ctx).First(&prod, item.ProductID).Error; err == nil {
			resp.Product = &prod
		}

		responses = append(responses, resp)
	}

	return &ListResponse{Items: responses, Count: len(responses)}, nil
}

// Add wishlists a product. Adding a product that is already on the
// wishlist succeeds without creating a duplicate.
func (s *Service) Add(ctx context.Context, userID uint, req *AddRequest) (*ListResponse, error) {
	var prod product.Product
	if err := s.db.WithContext(ctx).First(&prod, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	var existing Item
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, req.ProductID).
		First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := Item{UserID: userID, ProductID: req.ProductID}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add wishlist item: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to look up wishlist item: %w", err)
	}

	return s.List(ctx, userID)
}

// Remove takes a product off the wishlist.
func (s *Service) Remove(ctx context.Context, userID, productID uint) (*ListResponse, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&Item{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	return s.List(ctx, userID)
}
