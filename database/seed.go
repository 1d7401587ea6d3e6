package database

import (
	"fmt"

	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/gorm"
)

var sampleTables = []models.Table{
	{Name: "Table 1", Capacity: 2, Status: models.TableStatusActive, LocationZone: "Main Dining"},
	{Name: "Table 2", Capacity: 4, Status: models.TableStatusActive, LocationZone: "Main Dining"},
	{Name: "Table 3", Capacity: 6, Status: models.TableStatusActive, LocationZone: "Private"},
	{Name: "Table 4", Capacity: 8, Status: models.TableStatusActive, LocationZone: "Outdoor"},
}

var sampleShifts = []models.Shift{
	{Name: "Lunch", Weekdays: "1,2,3,4,5", StartTime: "12:00:00", EndTime: "15:00:00", SlotLengthMinutes: 30, BufferMinutes: 15, MaxPartySize: 8, Timezone: "UTC"},
	{Name: "Dinner", Weekdays: "0,1,2,3,4,5,6", StartTime: "17:00:00", EndTime: "22:00:00", SlotLengthMinutes: 60, BufferMinutes: 15, MaxPartySize: 12, Timezone: "UTC"},
}

// SeedSampleData inserts the starter tables and shifts when each set is empty.
func SeedSampleData(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Table{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			tables := append([]models.Table(nil), sampleTables...)
			if err := tx.Create(&tables).Error; err != nil {
				return fmt.Errorf("seed tables: %w", err)
			}
			utils.InfoLogger.Printf("Seeded %d tables", len(tables))
		}

		if err := tx.Model(&models.Shift{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			shifts := append([]models.Shift(nil), sampleShifts...)
			if err := tx.Create(&shifts).Error; err != nil {
				return fmt.Errorf("seed shifts: %w", err)
			}
			utils.InfoLogger.Printf("Seeded %d shifts", len(shifts))
		}
		return nil
	})
}
