// internal/domain/product/entity.go
package product

import (
	"time"
)

// Category buckets the catalog. Signature and limited items get their
// own storefront sections; everything else is regular.
type Category string

const (
	CategorySignature Category = "signature"
	CategoryLimited   Category = "limited"
	CategoryRegular   Category = "regular"
)

// ValidCategory reports whether raw names an enumerated category.
func ValidCategory(raw string) bool {
	switch Category(raw) {
	case CategorySignature, CategoryLimited, CategoryRegular:
		return true
	}
	return false
}

// Product represents a catalog item. Prices are stored in minor
// currency units. Rating and NumReviews are aggregates maintained by
// the review service.
type Product struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null;size:255;index" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Price       int64    `gorm:"not null" json:"price"` // minor units
	MRP         int64    `gorm:"column:mrp" json:"mrp"` // strike-through price, minor units
	Image       string   `gorm:"size:500" json:"image"`
	Images      []string `gorm:"serializer:json" json:"images"`
	Category    Category `gorm:"not null;size:20;index;default:'regular'" json:"category"`
	Sizes       []string `gorm:"serializer:json" json:"sizes"`
	Colors      []string `gorm:"serializer:json" json:"colors"`
	Stock       int      `gorm:"not null;default:0" json:"stock"`

	// Limited drops carry a deadline after which they fall back to the
	// regular category.
	LimitedDrop bool       `gorm:"default:false" json:"limited_drop"`
	DropEndDate *time.Time `json:"drop_end_date"`

	Rating     float64 `gorm:"default:0" json:"rating"`
	NumReviews int     `gorm:"default:0" json:"num_reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reviews []Review `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reviews,omitempty"`
}

// Review is one customer review. A user may review a product once.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index:idx_reviews_product_user,unique" json:"product_id"`
	UserID    uint      `gorm:"not null;index:idx_reviews_product_user,unique" json:"user_id"`
	Name      string    `gorm:"size:255" json:"name"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides
func (Product) TableName() string { return "products" }
func (Review) TableName() string  { return "reviews" }

// IsInStock returns true if the product has stock available
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// DiscountPercentage returns the discount relative to MRP, or 0 when
// there is no meaningful strike-through price.
func (p *Product) DiscountPercentage() int {
	if p.MRP <= p.Price || p.MRP == 0 {
		return 0
	}
	return int((p.MRP - p.Price) * 100 / p.MRP)
}

// DropExpired reports whether a limited drop has passed its deadline.
func (p *Product) DropExpired(now time.Time) bool {
	return p.LimitedDrop && p.DropEndDate != nil && now.After(*p.DropEndDate)
}
