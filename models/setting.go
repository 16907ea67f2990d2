package models

import (
	"encoding/json"
	"time"
)

// Setting is a key/value record for site-wide configuration stored as
// raw JSON so the admin UI can round-trip arbitrary shapes.
type Setting struct {
	ID    int64           `json:"id" gorm:"primaryKey"`
	Key   string          `json:"key" gorm:"uniqueIndex;not null" validate:"required"`
	Value json.RawMessage `json:"value" gorm:"type:text;serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
