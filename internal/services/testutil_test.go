package services

import (
	"testing"
	"time"

	"github.com/aokimura/coursenavi/internal/config"
	"github.com/aokimura/coursenavi/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Course{},
		&models.Professor{},
		&models.CourseProfessor{},
		&models.Review{},
		&models.ReviewReport{},
		&models.ScheduleItem{},
		&models.Setting{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		DefaultProgram:   "Undeclared",
		DefaultYear:      1,
		DefaultSemester:  "Fall 2024",
	}
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		AuthProvider: "email",
		Program:      "Information Systems",
		Year:         2,
		Semester:     "Fall 2024",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, code int, name string) models.Course {
	t.Helper()

	course := models.Course{
		ID:         uuid.New(),
		CourseCode: code,
		CourseName: name,
		Semester:   "Fall 2024",
		Credit:     2,
		Category:   "Core",
		Location:   "C301",
		Period:     2,
		Day:        "Monday",
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createProfessor(t *testing.T, db *gorm.DB, name, lab string) models.Professor {
	t.Helper()

	prof := models.Professor{
		ID:   uuid.New(),
		Name: name,
	}
	if lab != "" {
		prof.Lab = &lab
	}
	require.NoError(t, db.Create(&prof).Error)
	return prof
}

func linkCourseProfessor(t *testing.T, db *gorm.DB, courseID, professorID uuid.UUID) {
	t.Helper()

	link := models.CourseProfessor{
		ID:          uuid.New(),
		CourseID:    courseID,
		ProfessorID: professorID,
	}
	require.NoError(t, db.Create(&link).Error)
}
