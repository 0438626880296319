package handlers

import (
	"errors"

	"github.com/aokimura/coursenavi/internal/auth"
	"github.com/aokimura/coursenavi/internal/dto"
	"github.com/aokimura/coursenavi/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// Get handles GET /schedule?semester= and returns both the flat item list
// and the grid keyed by "Day-Period" for direct timetable rendering.
func (h *ScheduleHandler) Get(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	semester := c.Query("semester")
	if semester == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "semester query parameter is required",
		})
	}

	entries, err := h.scheduleService.GetSchedule(userID, semester)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load schedule",
		})
	}

	return c.JSON(dto.ScheduleResponse{
		Semester: semester,
		Items:    entries,
		Grid:     services.ProjectTimetable(entries),
	})
}

// Save handles PUT /schedule. Saving into an occupied slot replaces the
// course in that slot.
func (h *ScheduleHandler) Save(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SaveScheduleItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	itemID, err := h.scheduleService.SaveItem(userID, req.Semester, req.Day, req.Period, req.CourseID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSlot) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save schedule item",
		})
	}

	return c.JSON(fiber.Map{"item_id": itemID})
}

// Remove handles DELETE /schedule. Clearing an already-empty slot succeeds.
func (h *ScheduleHandler) Remove(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.RemoveScheduleItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.scheduleService.RemoveItem(userID, req.Semester, req.Day, req.Period); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to remove schedule item",
		})
	}

	return c.JSON(fiber.Map{"message": "Slot cleared"})
}
