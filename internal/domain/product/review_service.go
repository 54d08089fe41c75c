// internal/domain/product/review_service.go
package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-api/internal/domain/user"
	"gorm.io/gorm"
)

// ErrAlreadyReviewed is returned when a user reviews a product twice.
var ErrAlreadyReviewed = errors.New("product already reviewed")

// ReviewService handles product reviews and the rating aggregates on
// the product row.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// AddReviewRequest represents a review submission
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// AddReview records a review and recomputes the product's mean rating
// and review count in the same transaction. The reviewer's display
// name is snapshotted onto the review row.
func (s *ReviewService) AddReview(ctx context.Context, productID, userID uint, req *AddReviewRequest) (*Review, error) {
	var prod Product
	if err := s.db.WithContext(ctx).First(&prod, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	var reviewer user.User
	if err := s.db.WithContext(ctx).Select("id", "name").First(&reviewer, userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load reviewer: %w", err)
	}

	review := Review{
		ProductID: productID,
		UserID:    userID,
		Name:      reviewer.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Review
		err := tx.Where("product_id = ? AND user_id = ?", productID, userID).
			First(&existing).Error
		switch {
		case err == nil:
			return ErrAlreadyReviewed
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to look up review: %w", err)
		}

		if err := tx.Create(&review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		return s.refreshAggregates(tx, productID)
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// ListAll returns every review across all products, newest first.
// Admin only.
func (s *ReviewService) ListAll(ctx context.Context) ([]Review, error) {
	var reviews []Review
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// DeleteReview removes a review and recomputes the aggregates of the
// product it belonged to. Admin only.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to look up review: %w", err)
		}

		if err := tx.Delete(&Review{}, reviewID).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}

		return s.refreshAggregates(tx, review.ProductID)
	})
}

// refreshAggregates recomputes rating and num_reviews from the review
// rows inside the caller's transaction.
func (s *ReviewService) refreshAggregates(tx *gorm.DB, productID uint) error {
	var stats struct {
		Count int64
		Mean  float64
	}
	err := tx.Model(&Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS mean").
		Where("product_id = ?", productID).
		Scan(&stats).Error
	if err != nil {
		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	err = tx.Model(&Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":      stats.Mean,
			"num_reviews": stats.Count,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}
	return nil
}
