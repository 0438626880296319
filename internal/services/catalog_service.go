package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aokimura/coursenavi/internal/dto"
	"github.com/aokimura/coursenavi/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrProfessorNotFound = errors.New("professor not found")
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// CourseDetails is the course page payload: metadata, teaching staff, the
// review list and its rating summary.
type CourseDetails struct {
	Course     models.Course      `json:"course"`
	Professors []models.Professor `json:"professors"`
	Reviews    []models.Review    `json:"reviews"`
	Summary    RatingSummary      `json:"summary"`
}

// ProfessorDetails aggregates over the union of reviews across every course
// the professor teaches. Reviews stay course-scoped; there is no
// professor-scoped review row.
type ProfessorDetails struct {
	Professor models.Professor `json:"professor"`
	Courses   []models.Course  `json:"courses"`
	Reviews   []models.Review  `json:"reviews"`
	Summary   RatingSummary    `json:"summary"`
}

// FindCourses returns all courses when term is blank; otherwise courses whose
// name contains the term case-insensitively, or whose numeric code equals the
// term when it parses as a number. Sorted by course code for display.
func (s *CatalogService) FindCourses(term string) ([]models.Course, error) {
	q := s.db.Model(&models.Course{})

	term = strings.TrimSpace(term)
	if term != "" {
		like := "%" + strings.ToLower(term) + "%"
		if code, err := strconv.Atoi(term); err == nil {
			q = q.Where("LOWER(course_name) LIKE ? OR course_code = ?", like, code)
		} else {
			q = q.Where("LOWER(course_name) LIKE ?", like)
		}
	}

	var courses []models.Course
	if err := q.Order("course_code ASC").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}
	return courses, nil
}

// FindProfessors matches name or lab, sorted by name.
func (s *CatalogService) FindProfessors(term string) ([]models.Professor, error) {
	q := s.db.Model(&models.Professor{})

	term = strings.TrimSpace(term)
	if term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(lab, '')) LIKE ?", like, like)
	}

	var professors []models.Professor
	if err := q.Order("LOWER(name) ASC").Find(&professors).Error; err != nil {
		return nil, fmt.Errorf("failed to search professors: %w", err)
	}
	return professors, nil
}

func (s *CatalogService) GetCourseDetails(courseID uuid.UUID) (*CourseDetails, error) {
	var course models.Course
	if err := s.db.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	var professors []models.Professor
	if err := s.db.
		Joins("JOIN course_professors ON course_professors.professor_id = professors.id").
		Where("course_professors.course_id = ?", courseID).
		Order("LOWER(professors.name) ASC").
		Find(&professors).Error; err != nil {
		return nil, fmt.Errorf("failed to load professors: %w", err)
	}

	var reviews []models.Review
	if err := s.db.Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	return &CourseDetails{
		Course:     course,
		Professors: professors,
		Reviews:    reviews,
		Summary:    AggregateRatings(ratingsOf(reviews)),
	}, nil
}

func (s *CatalogService) GetProfessorDetails(professorID uuid.UUID) (*ProfessorDetails, error) {
	var professor models.Professor
	if err := s.db.First(&professor, "id = ?", professorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		return nil, fmt.Errorf("failed to load professor: %w", err)
	}

	// The join drops links whose course row is gone.
	var courses []models.Course
	if err := s.db.
		Joins("JOIN course_professors ON course_professors.course_id = courses.id").
		Where("course_professors.professor_id = ?", professorID).
		Order("courses.course_code ASC").
		Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}

	var reviews []models.Review
	if len(courses) > 0 {
		courseIDs := make([]uuid.UUID, len(courses))
		for i, c := range courses {
			courseIDs[i] = c.ID
		}
		if err := s.db.Where("course_id IN ?", courseIDs).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			return nil, fmt.Errorf("failed to load reviews: %w", err)
		}
	}

	return &ProfessorDetails{
		Professor: professor,
		Courses:   courses,
		Reviews:   reviews,
		Summary:   AggregateRatings(ratingsOf(reviews)),
	}, nil
}

func (s *CatalogService) CreateCourse(req *dto.CreateCourseRequest) (*models.Course, error) {
	if strings.TrimSpace(req.CourseName) == "" {
		return nil, errors.New("courseName is required")
	}
	if req.CourseCode <= 0 {
		return nil, errors.New("courseCode must be positive")
	}

	course := models.Course{
		ID:         uuid.New(),
		CourseCode: req.CourseCode,
		CourseName: req.CourseName,
		GradeReq:   req.GradeReq,
		Semester:   req.Semester,
		Credit:     req.Credit,
		Category:   req.Category,
		Location:   req.Location,
		Period:     req.Period,
		Day:        req.Day,
	}
	if err := s.db.Create(&course).Error; err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return &course, nil
}

func (s *CatalogService) CreateProfessor(req *dto.CreateProfessorRequest) (*models.Professor, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("name is required")
	}

	professor := models.Professor{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if req.Email != "" {
		professor.Email = &req.Email
	}
	if req.Lab != "" {
		professor.Lab = &req.Lab
	}
	if err := s.db.Create(&professor).Error; err != nil {
		return nil, fmt.Errorf("failed to create professor: %w", err)
	}
	return &professor, nil
}

// LinkProfessor attaches a professor to a course. Linking twice is a no-op.
func (s *CatalogService) LinkProfessor(courseID, professorID uuid.UUID) error {
	var course models.Course
	if err := s.db.First(&course, "id = ?", courseID).Error; err != nil {
		return ErrCourseNotFound
	}
	var professor models.Professor
	if err := s.db.First(&professor, "id = ?", professorID).Error; err != nil {
		return ErrProfessorNotFound
	}

	link := models.CourseProfessor{
		ID:          uuid.New(),
		CourseID:    courseID,
		ProfessorID: professorID,
	}
	if err := s.db.Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("failed to link professor: %w", err)
	}
	return nil
}

func ratingsOf(reviews []models.Review) []int {
	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}
	return ratings
}
