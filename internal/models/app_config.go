package models

import (
	"time"

	"gorm.io/datatypes"
)

// AppConfig stores one whole site document per key. Writes replace Value;
// there is no revision column, the last write wins.
type AppConfig struct {
	Key       string `gorm:"size:128;primaryKey"`
	Value     datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}
