package database

import (
	"fmt"

	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
