package services

import (
	"testing"

	"github.com/aokimura/coursenavi/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReviewCreates(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	user := createUser(t, db, "alice@example.com")
	course := createCourse(t, db, 101, "Introduction to Programming")

	reviewID, err := svc.SubmitReview(user.ID, course.ID, 4, "Good pacing, clear slides")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, reviewID)

	var review models.Review
	require.NoError(t, db.First(&review, "id = ?", reviewID).Error)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "Good pacing, clear slides", review.Comment)
}

func TestSubmitReviewOverwrites(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	user := createUser(t, db, "alice@example.com")
	course := createCourse(t, db, 101, "Introduction to Programming")

	firstID, err := svc.SubmitReview(user.ID, course.ID, 2, "Too fast in week one")
	require.NoError(t, err)

	var first models.Review
	require.NoError(t, db.First(&first, "id = ?", firstID).Error)

	secondID, err := svc.SubmitReview(user.ID, course.ID, 5, "Got much better after midterm")
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	var count int64
	db.Model(&models.Review{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var updated models.Review
	require.NoError(t, db.First(&updated, "id = ?", secondID).Error)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Got much better after midterm", updated.Comment)
	assert.Equal(t, first.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestSubmitReviewPerCourse(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	user := createUser(t, db, "alice@example.com")
	courseA := createCourse(t, db, 101, "Introduction to Programming")
	courseB := createCourse(t, db, 201, "Data Structures and Algorithms")

	_, err := svc.SubmitReview(user.ID, courseA.ID, 4, "Solid intro course")
	require.NoError(t, err)
	_, err = svc.SubmitReview(user.ID, courseB.ID, 3, "Heavy workload")
	require.NoError(t, err)

	var count int64
	db.Model(&models.Review{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestSubmitReviewValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	user := createUser(t, db, "alice@example.com")
	course := createCourse(t, db, 101, "Introduction to Programming")

	_, err := svc.SubmitReview(user.ID, course.ID, 0, "too low")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.SubmitReview(user.ID, course.ID, 6, "too high")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.SubmitReview(user.ID, course.ID, 3, "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = svc.SubmitReview(user.ID, course.ID, 3, "check https://spam.example.com now")
	assert.ErrorIs(t, err, ErrCommentRejected)

	_, err = svc.SubmitReview(user.ID, uuid.New(), 3, "fine course")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestReportReview(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	author := createUser(t, db, "alice@example.com")
	reporter := createUser(t, db, "bob@example.com")
	course := createCourse(t, db, 101, "Introduction to Programming")

	reviewID, err := svc.SubmitReview(author.ID, course.ID, 1, "Worst lectures I have attended")
	require.NoError(t, err)

	report, err := svc.ReportReview(reporter.ID, reviewID, "Unfair and personal")
	require.NoError(t, err)
	assert.Equal(t, "pending", report.Status)
	assert.Equal(t, reviewID, report.ReviewID)

	_, err = svc.ReportReview(reporter.ID, uuid.New(), "no such review")
	assert.ErrorIs(t, err, ErrReviewNotFound)

	_, err = svc.ReportReview(reporter.ID, reviewID, "  ")
	assert.ErrorIs(t, err, ErrEmptyReason)
}

func TestActionReport(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	author := createUser(t, db, "alice@example.com")
	reporter := createUser(t, db, "bob@example.com")
	course := createCourse(t, db, 101, "Introduction to Programming")

	reviewID, err := svc.SubmitReview(author.ID, course.ID, 1, "Worst lectures I have attended")
	require.NoError(t, err)
	report, err := svc.ReportReview(reporter.ID, reviewID, "Unfair and personal")
	require.NoError(t, err)

	require.NoError(t, svc.ActionReport(report.ID, "dismissed", "review is within the rules"))

	var updated models.ReviewReport
	require.NoError(t, db.First(&updated, "id = ?", report.ID).Error)
	assert.Equal(t, "dismissed", updated.Status)
	assert.Equal(t, "review is within the rules", updated.AdminNote)

	assert.Error(t, svc.ActionReport(report.ID, "bogus", ""))
	assert.ErrorIs(t, svc.ActionReport(uuid.New(), "reviewed", ""), ErrReportNotFound)
}

func TestListReports(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	author := createUser(t, db, "alice@example.com")
	reporter := createUser(t, db, "bob@example.com")
	course := createCourse(t, db, 101, "Introduction to Programming")

	reviewID, err := svc.SubmitReview(author.ID, course.ID, 1, "Worst lectures I have attended")
	require.NoError(t, err)
	report, err := svc.ReportReview(reporter.ID, reviewID, "Unfair and personal")
	require.NoError(t, err)
	require.NoError(t, svc.ActionReport(report.ID, "dismissed", ""))

	pending, total, err := svc.ListReports("pending", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, pending)

	all, total, err := svc.ListReports("", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, all, 1)
}
