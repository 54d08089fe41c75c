// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCanceled   Status = "canceled"
)

// ParseStatus validates a raw status value against the enumerated set.
// Any enumerated value is accepted as a target status; transitions are
// deliberately unrestricted so administrators can correct mistakes.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCanceled:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// PaymentMethod represents how an order is paid
type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCOD    PaymentMethod = "cod"
)

// ShippingInfo is the address block captured at checkout time. It is a
// value object embedded in the order and never updated afterwards.
type ShippingInfo struct {
	Name    string `gorm:"size:255" json:"name" binding:"required"`
	Email   string `gorm:"size:255" json:"email" binding:"required,email"`
	Phone   string `gorm:"size:20" json:"phone" binding:"required"`
	Address string `gorm:"size:255" json:"address" binding:"required"`
	City    string `gorm:"size:100" json:"city" binding:"required"`
	State   string `gorm:"size:100" json:"state" binding:"required"`
	ZipCode string `gorm:"size:20" json:"zip_code" binding:"required"`
	Country string `gorm:"size:100" json:"country" binding:"required"`
}

// Order represents a completed purchase. Items, totals and payment id
// are frozen at creation; only Status changes afterwards.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	ShippingInfo  ShippingInfo  `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_info"`
	Subtotal      int64         `gorm:"not null" json:"subtotal"` // minor units
	Tax           int64         `gorm:"not null" json:"tax"`
	Total         int64         `gorm:"not null" json:"total"`
	PaymentMethod PaymentMethod `gorm:"not null;size:10" json:"payment_method"`
	PaymentID     *string       `gorm:"size:255" json:"payment_id"`
	Status        Status        `gorm:"not null;size:20;default:'pending'" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is a snapshot of a cart line at the moment of purchase.
// Name and price are copied, not referenced: later catalog edits must
// not rewrite purchase history.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Price     int64     `gorm:"not null" json:"price"` // unit price, minor units
	Quantity  int       `gorm:"not null" json:"quantity"`
	Size      string    `gorm:"size:10" json:"size"`
	Color     string    `gorm:"size:50" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }
