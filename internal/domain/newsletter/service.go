// internal/domain/newsletter/service.go
package newsletter

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrAlreadySubscribed is returned for a duplicate signup.
	ErrAlreadySubscribed = errors.New("email already subscribed")

	// ErrNotFound is returned when a subscriber does not exist.
	ErrNotFound = errors.New("subscriber not found")
)

// Service handles newsletter subscriptions
type Service struct {
	db *gorm.DB
}

// NewService creates a new newsletter service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SubscribeRequest represents a newsletter signup
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe records a new signup.
func (s *Service) Subscribe(ctx context.Context, req *SubscribeRequest) (*Subscriber, error) {
	var existing Subscriber
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	switch {
	case err == nil:
		return nil, ErrAlreadySubscribed
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	sub := Subscriber{Email: req.Email}
	if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	return &sub, nil
}

// List returns every subscriber, newest first. Admin only.
func (s *Service) List(ctx context.Context) ([]Subscriber, error) {
	var subs []Subscriber
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}

// Delete removes a subscriber. Admin only.
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&Subscriber{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subscriber: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
