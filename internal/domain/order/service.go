// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-api/internal/domain/cart"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an order does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrInvalidStatus is returned for a status value outside the
	// enumerated set.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrNotOwner is returned when a user requests an order that
	// belongs to someone else.
	ErrNotOwner = errors.New("order belongs to another user")
)

// Service handles order persistence
type Service struct {
	db *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateFromCart persists a new order and clears the user's cart in a
// single transaction. Either the order exists and the cart is empty, or
// neither happened.
func (s *Service) CreateFromCart(ctx context.Context, o *Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if err := tx.Where("user_id = ?", o.UserID).Delete(&cart.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
}

// Get returns one order with its items.
func (s *Service) Get(ctx context.Context, id uint) (*Order, error) {
	var o Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// GetForUser returns one order after checking ownership.
func (s *Service) GetForUser(ctx context.Context, id, userID uint) (*Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrNotOwner
	}
	return o, nil
}

// ListForUser returns the user's orders, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAll returns every order, newest first. Admin only.
func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets an order's fulfillment status. Any enumerated value
// is a valid target.
func (s *Service) UpdateStatus(ctx context.Context, id uint, raw string) (*Order, error) {
	status, err := ParseStatus(raw)
	if err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return s.Get(ctx, id)
}

// Delete removes an order and its items. Admin only.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		result := tx.Delete(&Order{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
