package dto

type CreateCourseRequest struct {
	CourseCode int    `json:"courseCode"`
	CourseName string `json:"courseName"`
	GradeReq   int    `json:"gradeReq"`
	Semester   string `json:"semester"`
	Credit     int    `json:"credit"`
	Category   string `json:"category"`
	Location   string `json:"location"`
	Period     int    `json:"period"`
	Day        string `json:"day"`
}

type CreateProfessorRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Lab   string `json:"lab,omitempty"`
}
