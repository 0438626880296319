package services

import (
	"testing"

	"github.com/aokimura/coursenavi/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCourses(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	createCourse(t, db, 101, "Introduction to Programming")
	createCourse(t, db, 201, "Data Structures and Algorithms")
	createCourse(t, db, 301, "Database Systems")

	t.Run("blank term returns all sorted by code", func(t *testing.T) {
		courses, err := svc.FindCourses("")
		require.NoError(t, err)
		require.Len(t, courses, 3)
		assert.Equal(t, 101, courses[0].CourseCode)
		assert.Equal(t, 301, courses[2].CourseCode)
	})

	t.Run("name match is case-insensitive", func(t *testing.T) {
		courses, err := svc.FindCourses("DATA")
		require.NoError(t, err)
		require.Len(t, courses, 2)
		assert.Equal(t, "Data Structures and Algorithms", courses[0].CourseName)
	})

	t.Run("numeric term matches course code", func(t *testing.T) {
		courses, err := svc.FindCourses("101")
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, 101, courses[0].CourseCode)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		courses, err := svc.FindCourses("quantum basket weaving")
		require.NoError(t, err)
		assert.Empty(t, courses)
	})
}

func TestFindProfessors(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	createProfessor(t, db, "Tanaka Hiroshi", "Systems Software Lab")
	createProfessor(t, db, "Suzuki Ayaka", "Data Intelligence Lab")
	createProfessor(t, db, "Yamamoto Kenji", "")

	t.Run("name match", func(t *testing.T) {
		profs, err := svc.FindProfessors("tanaka")
		require.NoError(t, err)
		require.Len(t, profs, 1)
		assert.Equal(t, "Tanaka Hiroshi", profs[0].Name)
	})

	t.Run("lab match", func(t *testing.T) {
		profs, err := svc.FindProfessors("intelligence")
		require.NoError(t, err)
		require.Len(t, profs, 1)
		assert.Equal(t, "Suzuki Ayaka", profs[0].Name)
	})

	t.Run("nil lab does not break matching", func(t *testing.T) {
		profs, err := svc.FindProfessors("yamamoto")
		require.NoError(t, err)
		require.Len(t, profs, 1)
	})

	t.Run("blank term returns all", func(t *testing.T) {
		profs, err := svc.FindProfessors("")
		require.NoError(t, err)
		assert.Len(t, profs, 3)
	})
}

func TestGetCourseDetails(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	reviewSvc := NewReviewService(db)

	course := createCourse(t, db, 101, "Introduction to Programming")
	prof := createProfessor(t, db, "Tanaka Hiroshi", "Systems Software Lab")
	linkCourseProfessor(t, db, course.ID, prof.ID)

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	_, err := reviewSvc.SubmitReview(alice.ID, course.ID, 5, "Best course of the semester")
	require.NoError(t, err)
	_, err = reviewSvc.SubmitReview(bob.ID, course.ID, 3, "Decent but the labs dragged")
	require.NoError(t, err)

	details, err := svc.GetCourseDetails(course.ID)
	require.NoError(t, err)

	assert.Equal(t, course.ID, details.Course.ID)
	require.Len(t, details.Professors, 1)
	assert.Equal(t, "Tanaka Hiroshi", details.Professors[0].Name)
	assert.Len(t, details.Reviews, 2)
	assert.Equal(t, 2, details.Summary.Count)
	assert.Equal(t, 4.0, details.Summary.Average)
}

func TestGetCourseDetailsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.GetCourseDetails(uuid.New())
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestGetProfessorDetails(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	reviewSvc := NewReviewService(db)

	prof := createProfessor(t, db, "Tanaka Hiroshi", "Systems Software Lab")
	intro := createCourse(t, db, 101, "Introduction to Programming")
	osCourse := createCourse(t, db, 303, "Operating Systems")
	linkCourseProfessor(t, db, intro.ID, prof.ID)
	linkCourseProfessor(t, db, osCourse.ID, prof.ID)

	alice := createUser(t, db, "alice@example.com")
	_, err := reviewSvc.SubmitReview(alice.ID, intro.ID, 5, "Best course of the semester")
	require.NoError(t, err)
	_, err = reviewSvc.SubmitReview(alice.ID, osCourse.ID, 3, "Scheduler assignment was brutal")
	require.NoError(t, err)

	details, err := svc.GetProfessorDetails(prof.ID)
	require.NoError(t, err)

	require.Len(t, details.Courses, 2)
	assert.Equal(t, 101, details.Courses[0].CourseCode)
	// The summary spans reviews across every course the professor teaches.
	assert.Len(t, details.Reviews, 2)
	assert.Equal(t, 2, details.Summary.Count)
	assert.Equal(t, 4.0, details.Summary.Average)
}

func TestGetProfessorDetailsNoCourses(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	prof := createProfessor(t, db, "Kobayashi Mei", "")

	details, err := svc.GetProfessorDetails(prof.ID)
	require.NoError(t, err)
	assert.Empty(t, details.Courses)
	assert.Empty(t, details.Reviews)
	assert.Equal(t, 0, details.Summary.Count)
}

func TestGetProfessorDetailsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.GetProfessorDetails(uuid.New())
	assert.ErrorIs(t, err, ErrProfessorNotFound)
}

func TestCreateCourseValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.CreateCourse(&dto.CreateCourseRequest{CourseCode: 101})
	assert.Error(t, err)

	_, err = svc.CreateCourse(&dto.CreateCourseRequest{CourseName: "No Code"})
	assert.Error(t, err)

	course, err := svc.CreateCourse(&dto.CreateCourseRequest{
		CourseCode: 101,
		CourseName: "Introduction to Programming",
		Semester:   "Fall 2024",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, course.ID)
}

func TestLinkProfessor(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	course := createCourse(t, db, 101, "Introduction to Programming")
	prof := createProfessor(t, db, "Tanaka Hiroshi", "")

	require.NoError(t, svc.LinkProfessor(course.ID, prof.ID))
	// Linking twice is a no-op.
	require.NoError(t, svc.LinkProfessor(course.ID, prof.ID))

	details, err := svc.GetCourseDetails(course.ID)
	require.NoError(t, err)
	assert.Len(t, details.Professors, 1)

	assert.ErrorIs(t, svc.LinkProfessor(uuid.New(), prof.ID), ErrCourseNotFound)
	assert.ErrorIs(t, svc.LinkProfessor(course.ID, uuid.New()), ErrProfessorNotFound)
}
