package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is shared reference data, not owned by any user. CourseCode is the
// university's numeric code and is not guaranteed globally unique.
type Course struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseCode int       `gorm:"not null;index" json:"courseCode"`
	CourseName string    `gorm:"not null;size:255" json:"courseName"`
	GradeReq   int       `json:"gradeReq"`
	Semester   string    `gorm:"size:50" json:"semester"`
	Credit     int       `json:"credit"`
	Category   string    `gorm:"size:100" json:"category"`
	Location   string    `gorm:"size:100" json:"location"`
	Period     int       `json:"period"`
	Day        string    `gorm:"size:20" json:"day"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Professor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255;index" json:"name"`
	Email     *string   `gorm:"size:255" json:"email,omitempty"`
	Lab       *string   `gorm:"size:255" json:"lab,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseProfessor is the many-to-many join between courses and professors.
type CourseProfessor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_professor" json:"course_id"`
	ProfessorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_professor;index" json:"professor_id"`
	CreatedAt   time.Time `json:"created_at"`
}
