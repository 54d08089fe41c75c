// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a product does not exist.
var ErrNotFound = errors.New("product not found")

// Service handles product business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new product service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListRequest carries catalog filters. Zero values mean "no filter".
type ListRequest struct {
	Category string `form:"category"`
	MinPrice int64  `form:"min_price"`
	MaxPrice int64  `form:"max_price"`
	Search   string `form:"search"`
	Sort     string `form:"sort"` // price-low, price-high, newest
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// ListResponse is a page of catalog items.
type ListResponse struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

// CreateRequest carries the fields an administrator sets on a product.
type CreateRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Price       int64      `json:"price" binding:"required,min=1"`
	MRP         int64      `json:"mrp"`
	Image       string     `json:"image"`
	Images      []string   `json:"images"`
	Category    string     `json:"category" binding:"required"`
	Sizes       []string   `json:"sizes"`
	Colors      []string   `json:"colors"`
	Stock       int        `json:"stock" binding:"min=0"`
	LimitedDrop bool       `json:"limited_drop"`
	DropEndDate *time.Time `json:"drop_end_date"`
}

// UpdateRequest mirrors CreateRequest with every field optional.
type UpdateRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *int64     `json:"price"`
	MRP         *int64     `json:"mrp"`
	Image       *string    `json:"image"`
	Images      []string   `json:"images"`
	Category    *string    `json:"category"`
	Sizes       []string   `json:"sizes"`
	Colors      []string   `json:"colors"`
	Stock       *int       `json:"stock"`
	LimitedDrop *bool      `json:"limited_drop"`
	DropEndDate *time.Time `json:"drop_end_date"`
}

// List returns a filtered, sorted page of the catalog. Expired limited
// drops are demoted before querying so listings never show a live drop
// past its deadline.
func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if err := s.expireDrops(ctx); err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Model(&Product{})

	if req.Category != "" {
		if !ValidCategory(req.Category) {
			return nil, fmt.Errorf("unknown category %q", req.Category)
		}
		query = query.Where("category = ?", req.Category)
	}
	if req.MinPrice > 0 {
		query = query.Where("price >= ?", req.MinPrice)
	}
	if req.MaxPrice > 0 {
		query = query.Where("price <= ?", req.MaxPrice)
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	switch req.Sort {
	case "price-low":
		query = query.Order("price ASC")
	case "price-high":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var products []Product
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ListResponse{
		Products:   products,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Get returns one product with its reviews.
func (s *Service) Get(ctx context.Context, id uint) (*Product, error) {
	var prod Product
	err := s.db.WithContext(ctx).
		Preload("Reviews").
		First(&prod, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if prod.DropExpired(time.Now()) {
		prod.Category = CategoryRegular
		prod.LimitedDrop = false
	}

	return &prod, nil
}

// Related returns up to limit products from the same category,
// excluding the product itself.
func (s *Service) Related(ctx context.Context, id uint, limit int) ([]Product, error) {
	prod, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if limit < 1 {
		limit = 4
	}

	var related []Product
	err = s.db.WithContext(ctx).
		Where("category = ? AND id != ?", prod.Category, id).
		Order("created_at DESC").
		Limit(limit).
		Find(&related).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list related products: %w", err)
	}

	return related, nil
}

// Create inserts a new catalog item.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Product, error) {
	if !ValidCategory(req.Category) {
		return nil, fmt.Errorf("unknown category %q", req.Category)
	}

	prod := Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		MRP:         req.MRP,
		Image:       req.Image,
		Images:      req.Images,
		Category:    Category(req.Category),
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Stock:       req.Stock,
		LimitedDrop: req.LimitedDrop,
		DropEndDate: req.DropEndDate,
	}

	if err := s.db.WithContext(ctx).Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &prod, nil
}

// Update applies the non-nil fields of req to an existing product.
func (s *Service) Update(ctx context.Context, id uint, req *UpdateRequest) (*Product, error) {
	var prod Product
	if err := s.db.WithContext(ctx).First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.MRP != nil {
		prod.MRP = *req.MRP
	}
	if req.Image != nil {
		prod.Image = *req.Image
	}
	if req.Images != nil {
		prod.Images = req.Images
	}
	if req.Category != nil {
		if !ValidCategory(*req.Category) {
			return nil, fmt.Errorf("unknown category %q", *req.Category)
		}
		prod.Category = Category(*req.Category)
	}
	if req.Sizes != nil {
		prod.Sizes = req.Sizes
	}
	if req.Colors != nil {
		prod.Colors = req.Colors
	}
	if req.Stock != nil {
		prod.Stock = *req.Stock
	}
	if req.LimitedDrop != nil {
		prod.LimitedDrop = *req.LimitedDrop
	}
	if req.DropEndDate != nil {
		prod.DropEndDate = req.DropEndDate
	}

	if err := s.db.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &prod, nil
}

// Delete removes a product. Reviews cascade with it.
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// expireDrops demotes limited drops whose deadline has passed back to
// the regular category.
func (s *Service) expireDrops(ctx context.Context) error {
	err := s.db.WithContext(ctx).Model(&Product{}).
		Where("limited_drop = ? AND drop_end_date IS NOT NULL AND drop_end_date < ?", true, time.Now()).
		Updates(map[string]interface{}{
			"category":     CategoryRegular,
			"limited_drop": false,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to expire limited drops: %w", err)
	}
	return nil
}
