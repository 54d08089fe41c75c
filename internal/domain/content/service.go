// internal/domain/content/service.go
package content

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a slide or contact message does not
// exist.
var ErrNotFound = errors.New("content not found")

// Service handles storefront content: the homepage carousel and the
// contact form inbox.
type Service struct {
	db *gorm.DB
}

// NewService creates a new content service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SlideRequest carries the editable fields of a carousel slide.
type SlideRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image" binding:"required"`
	Link     string `json:"link"`
	Position int    `json:"position"`
	Active   *bool  `json:"active"`
}

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// ActiveSlides returns the slides shown on the storefront, in display
// order.
func (s *Service) ActiveSlides(ctx context.Context) ([]Slide, error) {
	var slides []Slide
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("position ASC, id ASC").
		Find(&slides).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list slides: %w", err)
	}
	return slides, nil
}

// AllSlides returns every slide, including inactive ones. Admin only.
func (s *Service) AllSlides(ctx context.Context) ([]Slide, error) {
	var slides []Slide
	err := s.db.WithContext(ctx).
		Order("position ASC, id ASC").
		Find(&slides).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list slides: %w", err)
	}
	return slides, nil
}

// CreateSlide adds a carousel slide.
func (s *Service) CreateSlide(ctx context.Context, req *SlideRequest) (*Slide, error) {
	slide := Slide{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Image:    req.Image,
		Link:     req.Link,
		Position: req.Position,
		Active:   true,
	}
	if req.Active != nil {
		slide.Active = *req.Active
	}

	if err := s.db.WithContext(ctx).Create(&slide).Error; err != nil {
		return nil, fmt.Errorf("failed to create slide: %w", err)
	}
	return &slide, nil
}

// UpdateSlide replaces the editable fields of a slide.
func (s *Service) UpdateSlide(ctx context.Context, id uint, req *SlideRequest) (*Slide, error) {
	var slide Slide
	if err := s.db.WithContext(ctx).First(&slide, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get slide: %w", err)
	}

	slide.Title = req.Title
	slide.Subtitle = req.Subtitle
	slide.Image = req.Image
	slide.Link = req.Link
	slide.Position = req.Position
	if req.Active != nil {
		slide.Active = *req.Active
	}

	if err := s.db.WithContext(ctx).Save(&slide).Error; err != nil {
		return nil, fmt.Errorf("failed to update slide: %w", err)
	}
	return &slide, nil
}

// DeleteSlide removes a slide.
func (s *Service) DeleteSlide(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&Slide{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete slide: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SubmitContact stores a contact form message.
func (s *Service) SubmitContact(ctx context.Context, req *ContactRequest) (*ContactMessage, error) {
	msg := ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}
	return &msg, nil
}

// ListContacts returns every contact message, newest first. Admin only.
func (s *Service) ListContacts(ctx context.Context) ([]ContactMessage, error) {
	var msgs []ContactMessage
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return msgs, nil
}

// DeleteContact removes a contact message. Admin only.
func (s *Service) DeleteContact(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&ContactMessage{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
