package handlers

import (
	"errors"

	"github.com/aokimura/coursenavi/internal/dto"
	"github.com/aokimura/coursenavi/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCourses handles GET /courses?q= - the course explorer list.
func (h *CatalogHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.catalogService.FindCourses(c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search courses",
		})
	}
	return c.JSON(fiber.Map{"courses": courses})
}

// GetCourse handles GET /courses/:id - course detail with professors,
// reviews and the rating summary. A missing course is a 404, not a failure.
func (h *CatalogHandler) GetCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid course ID",
		})
	}

	details, err := h.catalogService.GetCourseDetails(courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load course",
		})
	}

	return c.JSON(details)
}

// ListProfessors handles GET /professors?q= - the professor explorer list.
func (h *CatalogHandler) ListProfessors(c *fiber.Ctx) error {
	professors, err := h.catalogService.FindProfessors(c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search professors",
		})
	}
	return c.JSON(fiber.Map{"professors": professors})
}

// GetProfessor handles GET /professors/:id - professor detail with courses
// and the review union across them.
func (h *CatalogHandler) GetProfessor(c *fiber.Ctx) error {
	professorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid professor ID",
		})
	}

	details, err := h.catalogService.GetProfessorDetails(professorID)
	if err != nil {
		if errors.Is(err, services.ErrProfessorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Professor not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load professor",
		})
	}

	return c.JSON(details)
}

// CreateCourse handles POST /admin/courses.
func (h *CatalogHandler) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	course, err := h.catalogService.CreateCourse(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

// CreateProfessor handles POST /admin/professors.
func (h *CatalogHandler) CreateProfessor(c *fiber.Ctx) error {
	var req dto.CreateProfessorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	professor, err := h.catalogService.CreateProfessor(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(professor)
}

// LinkProfessor handles POST /admin/courses/:id/professors/:profId.
func (h *CatalogHandler) LinkProfessor(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid course ID",
		})
	}
	professorID, err := uuid.Parse(c.Params("profId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid professor ID",
		})
	}

	if err := h.catalogService.LinkProfessor(courseID, professorID); err != nil {
		if errors.Is(err, services.ErrCourseNotFound) || errors.Is(err, services.ErrProfessorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to link professor",
		})
	}
	return c.JSON(fiber.Map{"message": "Professor linked"})
}
