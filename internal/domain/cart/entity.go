// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// CartItem represents one line of a user's cart. The triple
// (user, product, size, color) identifies a line; adding the same
// triple again increments quantity instead of creating a new row.
// Price is captured at the time the item was added.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_items_line,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_cart_items_line,unique" json:"product_id"`
	Size      string    `gorm:"size:10;index:idx_cart_items_line,unique" json:"size"`
	Color     string    `gorm:"size:50;index:idx_cart_items_line,unique" json:"color"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"` // minor units, at time of adding
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// Line is a cart line joined with the current product name, the shape
// the checkout flow snapshots into order items.
type Line struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}
