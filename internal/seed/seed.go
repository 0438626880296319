package seed

import (
	"errors"
	"log/slog"

	"github.com/aokimura/coursenavi/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type courseRow struct {
	Code     int
	Name     string
	GradeReq int
	Semester string
	Credit   int
	Category string
	Location string
	Period   int
	Day      string
	// Professor names, linked after both sides exist.
	Professors []string
}

type professorRow struct {
	Name  string
	Email string
	Lab   string
}

var professors = []professorRow{
	{Name: "Tanaka Hiroshi", Email: "tanaka@example.ac.jp", Lab: "Systems Software Lab"},
	{Name: "Suzuki Ayaka", Email: "suzuki@example.ac.jp", Lab: "Data Intelligence Lab"},
	{Name: "Yamamoto Kenji", Email: "", Lab: "Networked Media Lab"},
	{Name: "Kobayashi Mei", Email: "kobayashi@example.ac.jp", Lab: ""},
	{Name: "Watanabe Sota", Email: "", Lab: "Human Interface Lab"},
}

var courses = []courseRow{
	{Code: 101, Name: "Introduction to Programming", GradeReq: 1, Semester: "Fall 2024", Credit: 2, Category: "Core", Location: "C301", Period: 2, Day: "Monday", Professors: []string{"Tanaka Hiroshi"}},
	{Code: 102, Name: "Discrete Mathematics", GradeReq: 1, Semester: "Fall 2024", Credit: 2, Category: "Core", Location: "C204", Period: 3, Day: "Tuesday", Professors: []string{"Kobayashi Mei"}},
	{Code: 201, Name: "Data Structures and Algorithms", GradeReq: 2, Semester: "Fall 2024", Credit: 2, Category: "Core", Location: "B102", Period: 1, Day: "Wednesday", Professors: []string{"Tanaka Hiroshi", "Suzuki Ayaka"}},
	{Code: 202, Name: "Computer Networks", GradeReq: 2, Semester: "Spring 2025", Credit: 2, Category: "Core", Location: "B210", Period: 4, Day: "Thursday", Professors: []string{"Yamamoto Kenji"}},
	{Code: 301, Name: "Database Systems", GradeReq: 3, Semester: "Fall 2024", Credit: 2, Category: "Elective", Location: "A105", Period: 2, Day: "Friday", Professors: []string{"Suzuki Ayaka"}},
	{Code: 302, Name: "Human-Computer Interaction", GradeReq: 3, Semester: "Spring 2025", Credit: 2, Category: "Elective", Location: "A220", Period: 5, Day: "Monday", Professors: []string{"Watanabe Sota"}},
	{Code: 303, Name: "Operating Systems", GradeReq: 3, Semester: "Fall 2024", Credit: 2, Category: "Core", Location: "C110", Period: 3, Day: "Wednesday", Professors: []string{"Tanaka Hiroshi"}},
}

// Run inserts the sample catalog, skipping anything already present so it is
// safe to call on every startup.
func Run(db *gorm.DB) error {
	profIDs := make(map[string]uuid.UUID, len(professors))
	seededProfs := 0

	for _, p := range professors {
		var existing models.Professor
		err := db.Where("name = ?", p.Name).First(&existing).Error
		if err == nil {
			profIDs[p.Name] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		prof := models.Professor{
			ID:   uuid.New(),
			Name: p.Name,
		}
		if p.Email != "" {
			email := p.Email
			prof.Email = &email
		}
		if p.Lab != "" {
			lab := p.Lab
			prof.Lab = &lab
		}
		if err := db.Create(&prof).Error; err != nil {
			return err
		}
		profIDs[p.Name] = prof.ID
		seededProfs++
	}

	seededCourses := 0
	for _, c := range courses {
		var course models.Course
		err := db.Where("course_code = ? AND semester = ?", c.Code, c.Semester).First(&course).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			course = models.Course{
				ID:         uuid.New(),
				CourseCode: c.Code,
				CourseName: c.Name,
				GradeReq:   c.GradeReq,
				Semester:   c.Semester,
				Credit:     c.Credit,
				Category:   c.Category,
				Location:   c.Location,
				Period:     c.Period,
				Day:        c.Day,
			}
			if err := db.Create(&course).Error; err != nil {
				return err
			}
			seededCourses++
		} else if err != nil {
			return err
		}

		for _, name := range c.Professors {
			profID, ok := profIDs[name]
			if !ok {
				continue
			}
			link := models.CourseProfessor{
				ID:          uuid.New(),
				CourseID:    course.ID,
				ProfessorID: profID,
			}
			if err := db.Create(&link).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					continue
				}
				return err
			}
		}
	}

	if seededProfs > 0 || seededCourses > 0 {
		slog.Info("catalog seeded", "professors", seededProfs, "courses", seededCourses)
	}
	return nil
}
