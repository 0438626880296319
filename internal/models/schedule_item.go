package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleItem assigns one course to one timetable slot. The unique index
// enforces at most one item per (user, semester, day, period); saving into an
// occupied slot replaces the course on the existing row.
//
// CourseID is deliberately not validated against the course's own day/period,
// so a course can be pinned to any slot regardless of its catalog meeting time.
type ScheduleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_schedule_user_slot" json:"user_id"`
	Semester  string    `gorm:"size:50;not null;uniqueIndex:idx_schedule_user_slot" json:"semester"`
	Day       string    `gorm:"size:20;not null;uniqueIndex:idx_schedule_user_slot" json:"day"`
	Period    int       `gorm:"not null;uniqueIndex:idx_schedule_user_slot" json:"period"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
