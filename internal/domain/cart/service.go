// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-api/internal/domain/pricing"
	"github.com/your-org/storefront-api/internal/domain/product"
	"gorm.io/gorm"
)

// ErrItemNotFound is returned when an update or remove targets a line
// that is not in the cart.
var ErrItemNotFound = errors.New("item not found in cart")

// Service handles cart business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new cart service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CartItemResponse represents a cart line with product details
type CartItemResponse struct {
	ProductID uint             `json:"product_id"`
	Size      string           `json:"size"`
	Color     string           `json:"color"`
	Quantity  int              `json:"quantity"`
	Price     int64            `json:"price"`
	Product   *product.Product `json:"product,omitempty"`
}

// CartResponse represents a shopping cart with items and totals
type CartResponse struct {
	UserID uint               `json:"user_id"`
	Items  []CartItemResponse `json:"items"`
	Totals pricing.Totals     `json:"totals"`
}

// AddToCartRequest represents an add-to-cart request
type AddToCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents an update request for one line
type UpdateCartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// RemoveCartItemRequest identifies one line to remove
type RemoveCartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// GetCart retrieves the user's cart. A user without cart rows simply
// gets an empty cart; there is nothing to create lazily.
func (s *Service) GetCart(ctx context.Context, userID uint) (*CartResponse, error) {
	var items []CartItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	return s.buildResponse(ctx, userID, items)
}

// AddToCart adds a line to the cart. Adding an existing
// (product, size, color) line increments its quantity.
func (s *Service) AddToCart(ctx context.Context, userID uint, req *AddToCartRequest) (*CartResponse, error) {
	var prod product.Product
	if err := s.db.WithContext(ctx).First(&prod, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	var existing CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
			userID, req.ProductID, req.Size, req.Color).
		First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			Size:      req.Size,
			Color:     req.Color,
			Quantity:  req.Quantity,
			Price:     prod.Price,
		}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	default:
		existing.Quantity += req.Quantity
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	}

	return s.GetCart(ctx, userID)
}

// UpdateItem sets the quantity of an existing line.
func (s *Service) UpdateItem(ctx context.Context, userID uint, req *UpdateCartItemRequest) (*CartResponse, error) {
	result := s.db.WithContext(ctx).Model(&CartItem{}).
		Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
			userID, req.ProductID, req.Size, req.Color).
		Update("quantity", req.Quantity)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem deletes one line from the cart.
func (s *Service) RemoveItem(ctx context.Context, userID uint, req *RemoveCartItemRequest) (*CartResponse, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
			userID, req.ProductID, req.Size, req.Color).
		Delete(&CartItem{})

	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	return s.GetCart(ctx, userID)
}

// Clear removes every line from the user's cart.
func (s *Service) Clear(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&CartItem{}).Error
}

// Snapshot returns the cart lines joined with current product names,
// the shape checkout freezes into order items. Line prices are the
// prices captured when the items were added.
func (s *Service) Snapshot(ctx context.Context, userID uint) ([]Line, error) {
	var items []CartItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		var prod product.Product
		if err := s.db.WithContext(ctx).Select("id", "name").First(&prod, item.ProductID).Error; err != nil {
			return nil, fmt.Errorf("failed to load product %d: %w", item.ProductID, err)
		}
		lines = append(lines, Line{
			ProductID: item.ProductID,
			Name:      prod.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
		})
	}

	return lines, nil
}

// buildResponse loads product details and computes totals for a cart.
func (s *Service) buildResponse(ctx context.Context, userID uint, items []CartItem) (*CartResponse, error) {
	responses := make([]CartItemResponse, 0, len(items))
	lineItems := make([]pricing.LineItem, 0, len(items))

	for _, item := range items {
		resp := CartItemResponse{
			ProductID: item.ProductID,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}

		var prod product.Product
		if err := s.db.WithContext(ctx).First(&prod, item.ProductID).Error; err == nil {
			resp.Product = &prod
		}

		responses = append(responses, resp)
		lineItems = append(lineItems, pricing.LineItem{UnitPrice: item.Price, Quantity: item.Quantity})
	}

	return &CartResponse{
		UserID: userID,
		Items:  responses,
		Totals: pricing.Calculate(lineItems),
	}, nil
}
