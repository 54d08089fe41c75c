// internal/domain/content/entity.go
package content

import (
	"time"
)

// Slide is one homepage carousel entry. Position controls display
// order, lowest first.
type Slide struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255" json:"title"`
	Subtitle  string    `gorm:"size:255" json:"subtitle"`
	Image     string    `gorm:"not null;size:500" json:"image"`
	Link      string    `gorm:"size:500" json:"link"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Email     string    `gorm:"not null;size:255" json:"email"`
	Subject   string    `gorm:"size:255" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Slide) TableName() string          { return "carousel_slides" }
func (ContactMessage) TableName() string { return "contact_messages" }
