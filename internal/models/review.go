package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is always course-scoped, even when submitted from a professor page.
// The unique index enforces at most one review per (user, course) pair; the
// write path updates in place instead of inserting a second row.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_course" json:"user_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_course;index" json:"course_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewReport is a user-filed abuse report against a review.
type ReviewReport struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReviewID   uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	ReporterID uuid.UUID `gorm:"type:uuid;not null;index" json:"reporter_id"`
	Reason     string    `gorm:"type:text;not null" json:"reason"`
	Status     string    `gorm:"size:20;default:'pending';index" json:"status"`
	AdminNote  string    `gorm:"type:text" json:"admin_note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
