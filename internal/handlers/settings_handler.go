package handlers

import (
	"encoding/json"
	"errors"

	"github.com/aokimura/coursenavi/internal/dto"
	"github.com/aokimura/coursenavi/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SettingsHandler serves the presentation parameters clients load at
// startup: the semester list, the weekday axis and the period counts.
type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// GetConfig returns all settings as a key -> value map (public).
func (h *SettingsHandler) GetConfig(c *fiber.Ctx) error {
	var settings []models.Setting
	if err := h.db.Find(&settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch configuration",
		})
	}

	result := make(map[string]interface{}, len(settings))
	for _, s := range settings {
		var value interface{}
		if err := json.Unmarshal(s.Value, &value); err != nil {
			continue
		}
		result[s.Key] = value
	}

	return c.JSON(result)
}

// SetKey upserts a setting (admin only). The body is stored verbatim as the
// JSON value for the key.
func (h *SettingsHandler) SetKey(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Key parameter is required",
		})
	}

	body := c.Body()
	if len(body) == 0 || !json.Valid(body) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Body must be a JSON value",
		})
	}

	var setting models.Setting
	err := h.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.Setting{
			ID:    uuid.New(),
			Key:   key,
			Value: datatypes.JSON(body),
		}
		if err := h.db.Create(&setting).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to create setting",
			})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to query setting",
		})
	} else {
		if err := h.db.Model(&setting).Update("value", datatypes.JSON(body)).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update setting",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Setting updated successfully",
		"key":     key,
	})
}

// DeleteKey removes a setting (admin only).
func (h *SettingsHandler) DeleteKey(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Key parameter is required",
		})
	}

	result := h.db.Where("key = ?", key).Delete(&models.Setting{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete setting",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Setting not found",
		})
	}

	return c.JSON(fiber.Map{"message": "Setting deleted successfully"})
}

// SeedDefaults creates the settings clients expect, skipping keys that
// already exist so operator overrides survive restarts.
func (h *SettingsHandler) SeedDefaults() error {
	defaults := map[string]interface{}{
		"semesters":        []string{"Spring 2024", "Fall 2024", "Spring 2025", "Fall 2025"},
		"default_semester": "Fall 2024",
		"weekdays":         []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		"default_periods":  7,
		"extended_periods": 8,
		"maintenance_mode": false,
	}

	for key, value := range defaults {
		var existing models.Setting
		err := h.db.Where("key = ?", key).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		setting := models.Setting{
			ID:    uuid.New(),
			Key:   key,
			Value: datatypes.JSON(raw),
		}
		if err := h.db.Create(&setting).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return err
		}
	}
	return nil
}
