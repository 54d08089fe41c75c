// internal/domain/product/review_service_test.go
package product

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func reviewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection so every query sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&user.User{}, &Product{}, &Review{}))
	return db
}

func seedReviewers(t *testing.T, db *gorm.DB) (uint, []user.User) {
	t.Helper()

	prod := Product{Name: "Signature Tee", Price: 5000, Category: CategorySignature, Stock: 10}
	require.NoError(t, db.Create(&prod).Error)

	users := []user.User{
		{Name: "Asha Rao", Email: "asha@example.com", Password: "x"},
		{Name: "Vikram Nair", Email: "vikram@example.com", Password: "x"},
	}
	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error)
	}
	return prod.ID, users
}

func productAggregates(t *testing.T, db *gorm.DB, productID uint) (float64, int) {
	t.Helper()

	var prod Product
	require.NoError(t, db.First(&prod, productID).Error)
	return prod.Rating, prod.NumReviews
}

func TestAddReviewUpdatesAggregates(t *testing.T) {
	db := reviewTestDB(t)
	productID, users := seedReviewers(t, db)
	svc := NewReviewService(db)

	review, err := svc.AddReview(context.Background(), productID, users[0].ID, &AddReviewRequest{
		Rating:  5,
		Comment: "Great fit",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", review.Name)

	rating, count := productAggregates(t, db, productID)
	assert.Equal(t, 5.0, rating)
	assert.Equal(t, 1, count)

	_, err = svc.AddReview(context.Background(), productID, users[1].ID, &AddReviewRequest{
		Rating:  2,
		Comment: "Runs small",
	})
	require.NoError(t, err)

	rating, count = productAggregates(t, db, productID)
	assert.Equal(t, 3.5, rating)
	assert.Equal(t, 2, count)
}

func TestAddReviewRejectsSecondReview(t *testing.T) {
	db := reviewTestDB(t)
	productID, users := seedReviewers(t, db)
	svc := NewReviewService(db)

	_, err := svc.AddReview(context.Background(), productID, users[0].ID, &AddReviewRequest{
		Rating:  4,
		Comment: "Solid",
	})
	require.NoError(t, err)

	_, err = svc.AddReview(context.Background(), productID, users[0].ID, &AddReviewRequest{
		Rating:  1,
		Comment: "Changed my mind",
	})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	_, count := productAggregates(t, db, productID)
	assert.Equal(t, 1, count)
}

func TestDeleteReviewRecomputesAggregates(t *testing.T) {
	db := reviewTestDB(t)
	productID, users := seedReviewers(t, db)
	svc := NewReviewService(db)

	first, err := svc.AddReview(context.Background(), productID, users[0].ID, &AddReviewRequest{
		Rating:  5,
		Comment: "Great fit",
	})
	require.NoError(t, err)

	second, err := svc.AddReview(context.Background(), productID, users[1].ID, &AddReviewRequest{
		Rating:  2,
		Comment: "Runs small",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(context.Background(), second.ID))

	rating, count := productAggregates(t, db, productID)
	assert.Equal(t, 5.0, rating)
	assert.Equal(t, 1, count)

	// Removing the last review resets the aggregates to zero.
	require.NoError(t, svc.DeleteReview(context.Background(), first.ID))

	rating, count = productAggregates(t, db, productID)
	assert.Equal(t, 0.0, rating)
	assert.Equal(t, 0, count)
}

func TestDeleteReviewUnknownID(t *testing.T) {
	db := reviewTestDB(t)
	seedReviewers(t, db)
	svc := NewReviewService(db)

	err := svc.DeleteReview(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAllReviews(t *testing.T) {
	db := reviewTestDB(t)
	productID, users := seedReviewers(t, db)
	svc := NewReviewService(db)

	for i, u := range users {
		_, err := svc.AddReview(context.Background(), productID, u.ID, &AddReviewRequest{
			Rating:  i + 3,
			Comment: "ok",
		})
		require.NoError(t, err)
	}

	reviews, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
