package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is created lazily the first time an authenticated identity is seen.
// ExternalAuthID is the identity provider's opaque subject; it is nil for
// accounts registered through the local email/password path.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalAuthID *string        `gorm:"size:255;uniqueIndex" json:"-"`
	Email          string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	AuthProvider   string         `gorm:"size:50;default:'email'" json:"-"`
	Role           string         `gorm:"size:20;default:'user'" json:"role"`
	Program        string         `gorm:"size:100" json:"program"`
	Year           int            `json:"year"`
	Semester       string         `gorm:"size:50" json:"semester"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
