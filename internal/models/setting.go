package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Setting is a key/JSON-value pair for presentation parameters the clients
// read at startup: the semester list, the timetable weekday axis and the
// period count for each view.
type Setting struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string         `gorm:"size:100;not null;uniqueIndex" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
