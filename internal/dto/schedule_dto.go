package dto

import "github.com/google/uuid"

type SaveScheduleItemRequest struct {
	Semester string    `json:"semester"`
	Day      string    `json:"day"`
	Period   int       `json:"period"`
	CourseID uuid.UUID `json:"course_id"`
}

type RemoveScheduleItemRequest struct {
	Semester string `json:"semester"`
	Day      string `json:"day"`
	Period   int    `json:"period"`
}

// ScheduleEntry is a schedule item enriched with course metadata for display.
type ScheduleEntry struct {
	ItemID     uuid.UUID `json:"item_id"`
	CourseID   uuid.UUID `json:"course_id"`
	CourseName string    `json:"course_name"`
	Location   string    `json:"location"`
	Semester   string    `json:"semester"`
	Day        string    `json:"day"`
	Period     int       `json:"period"`
}

type ScheduleResponse struct {
	Semester string                   `json:"semester"`
	Items    []ScheduleEntry          `json:"items"`
	Grid     map[string]ScheduleEntry `json:"grid"`
}
