package database

import (
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wecreatehub/site_backend/internal/models"
)

// SeedConfig creates the document row holding "{}" when it does not exist,
// so a read before the first save answers an empty object.
func SeedConfig(db *gorm.DB, key string, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.AppConfig{}).Where(&models.AppConfig{Key: key}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	rec := models.AppConfig{Key: key, Value: datatypes.JSON("{}")}
	if err := db.Create(&rec).Error; err != nil {
		return err
	}
	log.Info("seeded empty site document", zap.String("key", key))
	return nil
}
