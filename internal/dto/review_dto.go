package dto

import "github.com/google/uuid"

type SubmitReviewRequest struct {
	CourseID uuid.UUID `json:"course_id"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
}

type ReportReviewRequest struct {
	Reason string `json:"reason"`
}

type ActionReportRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"admin_note"`
}
