package services

import (
	"errors"
	"fmt"

	"github.com/aokimura/coursenavi/internal/dto"
	"github.com/aokimura/coursenavi/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidSlot = errors.New("semester, day and a positive period are required")

type ScheduleService struct {
	db *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

// SaveItem assigns a course to the caller's (semester, day, period) slot.
// An occupied slot keeps its row and only swaps the course id. The course is
// deliberately not checked against its own catalog day/period, so a course
// can be pinned to any slot.
func (s *ScheduleService) SaveItem(userID uuid.UUID, semester, day string, period int, courseID uuid.UUID) (uuid.UUID, error) {
	if semester == "" || day == "" || period < 1 {
		return uuid.Nil, ErrInvalidSlot
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrUserNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to load user: %w", err)
	}

	var existing models.ScheduleItem
	err := s.db.Where("user_id = ? AND semester = ? AND day = ? AND period = ?",
		userID, semester, day, period).First(&existing).Error
	if err == nil {
		if uerr := s.db.Model(&existing).Update("course_id", courseID).Error; uerr != nil {
			return uuid.Nil, fmt.Errorf("failed to replace slot: %w", uerr)
		}
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fmt.Errorf("failed to look up slot: %w", err)
	}

	item := models.ScheduleItem{
		ID:       uuid.New(),
		UserID:   userID,
		Semester: semester,
		Day:      day,
		Period:   period,
		CourseID: courseID,
	}
	if err := s.db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent save claimed the slot first; replace its course.
			if ferr := s.db.Where("user_id = ? AND semester = ? AND day = ? AND period = ?",
				userID, semester, day, period).First(&existing).Error; ferr == nil {
				if uerr := s.db.Model(&existing).Update("course_id", courseID).Error; uerr != nil {
					return uuid.Nil, fmt.Errorf("failed to replace slot: %w", uerr)
				}
				return existing.ID, nil
			}
		}
		return uuid.Nil, fmt.Errorf("failed to create schedule item: %w", err)
	}
	return item.ID, nil
}

// RemoveItem clears a slot. Removing an empty slot is a no-op, not an error.
func (s *ScheduleService) RemoveItem(userID uuid.UUID, semester, day string, period int) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	result := s.db.Where("user_id = ? AND semester = ? AND day = ? AND period = ?",
		userID, semester, day, period).Delete(&models.ScheduleItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove schedule item: %w", result.Error)
	}
	return nil
}

// GetSchedule returns the user's items for a semester enriched with course
// name and location. Items whose course no longer exists are dropped, not
// surfaced as errors.
func (s *ScheduleService) GetSchedule(userID uuid.UUID, semester string) ([]dto.ScheduleEntry, error) {
	var items []models.ScheduleItem
	if err := s.db.Where("user_id = ? AND semester = ?", userID, semester).
		Order("day ASC, period ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	if len(items) == 0 {
		return []dto.ScheduleEntry{}, nil
	}

	courseIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		courseIDs[i] = item.CourseID
	}

	var courses []models.Course
	if err := s.db.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	byID := make(map[uuid.UUID]models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	entries := make([]dto.ScheduleEntry, 0, len(items))
	for _, item := range items {
		course, ok := byID[item.CourseID]
		if !ok {
			continue
		}
		entries = append(entries, dto.ScheduleEntry{
			ItemID:     item.ID,
			CourseID:   course.ID,
			CourseName: course.CourseName,
			Location:   course.Location,
			Semester:   item.Semester,
			Day:        item.Day,
			Period:     item.Period,
		})
	}
	return entries, nil
}
