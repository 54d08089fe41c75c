// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"
)

// Item represents one wishlisted product. The (user, product) pair is
// unique; adding it twice is a no-op.
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_wishlist_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_wishlist_user_product,unique" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Item) TableName() string {
	return "wishlist_items"
}
