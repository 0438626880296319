package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aokimura/coursenavi/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidRating   = errors.New("rating must be an integer between 1 and 5")
	ErrEmptyComment    = errors.New("comment is required")
	ErrCommentRejected = errors.New("comment rejected")
	ErrReviewNotFound  = errors.New("review not found")
	ErrReportNotFound  = errors.New("report not found")
	ErrEmptyReason     = errors.New("reason is required")
)

type ReviewService struct {
	db     *gorm.DB
	filter *ContentFilter
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db, filter: NewContentFilter()}
}

// SubmitReview upserts the caller's review for a course. At most one review
// exists per (user, course): a second submission overwrites rating and
// comment on the existing row, keeping its id and created_at.
func (s *ReviewService) SubmitReview(userID, courseID uuid.UUID, rating int, comment string) (uuid.UUID, error) {
	if rating < 1 || rating > 5 {
		return uuid.Nil, ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return uuid.Nil, ErrEmptyComment
	}
	if ok, reason := s.filter.Check(comment); !ok {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrCommentRejected, s.filter.RejectionMessage(reason))
	}

	var course models.Course
	if err := s.db.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrCourseNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to load course: %w", err)
	}

	var existing models.Review
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return existing.ID, s.overwrite(&existing, rating, comment)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fmt.Errorf("failed to look up review: %w", err)
	}

	review := models.Review{
		ID:       uuid.New(),
		UserID:   userID,
		CourseID: courseID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent submission won the insert; overwrite its row.
			if ferr := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; ferr == nil {
				return existing.ID, s.overwrite(&existing, rating, comment)
			}
		}
		return uuid.Nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review.ID, nil
}

func (s *ReviewService) overwrite(review *models.Review, rating int, comment string) error {
	if err := s.db.Model(review).Updates(map[string]interface{}{
		"rating":  rating,
		"comment": comment,
	}).Error; err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

// ReportReview files an abuse report against a review.
func (s *ReviewService) ReportReview(reporterID, reviewID uuid.UUID, reason string) (*models.ReviewReport, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrEmptyReason
	}

	var review models.Review
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}

	report := models.ReviewReport{
		ID:         uuid.New(),
		ReviewID:   reviewID,
		ReporterID: reporterID,
		Reason:     reason,
		Status:     "pending",
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func (s *ReviewService) ListReports(status string, limit, offset int) ([]models.ReviewReport, int64, error) {
	var reports []models.ReviewReport
	var total int64

	query := s.db.Model(&models.ReviewReport{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *ReviewService) ActionReport(reportID uuid.UUID, status, adminNote string) error {
	validStatuses := map[string]bool{"reviewed": true, "actioned": true, "dismissed": true}
	if !validStatuses[status] {
		return errors.New("invalid status: must be reviewed, actioned, or dismissed")
	}

	result := s.db.Model(&models.ReviewReport{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":     status,
			"admin_note": adminNote,
		})
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return result.Error
}
