package services

import (
	"github.com/yeremiapane/table-booking/models"
	"gorm.io/gorm"
)

type TableAssigner struct {
	db *gorm.DB
}

func NewTableAssigner(db *gorm.DB) *TableAssigner {
	return &TableAssigner{db: db}
}

// AssignTable picks the best-fit free table: smallest capacity first, then lowest id.
// It returns nil when no table qualifies.
func (a *TableAssigner) AssignTable(date, clock string, partySize int) (*models.Table, error) {
	table, err := a.bestFit(a.db, date, clock, partySize, 0)
	if err != nil {
		return nil, storageErr("assign table", err)
	}
	return table, nil
}

func (a *TableAssigner) bestFit(tx *gorm.DB, date, clock string, partySize int, exclude uint) (*models.Table, error) {
	var table models.Table
	res := freeTables(tx, date, clock, partySize, exclude).
		Order("capacity ASC").
		Order("id ASC").
		Limit(1).
		Find(&table)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &table, nil
}

// keepOrReassign returns the table booking already holds while it is still active, big
// enough and not held by another booking at the slot. Otherwise it falls back to a fresh
// best-fit pick that ignores the booking's own hold.
func (a *TableAssigner) keepOrReassign(tx *gorm.DB, booking *models.Booking) (*models.Table, error) {
	if booking.TableID != nil {
		var current models.Table
		res := tx.Limit(1).Find(&current, *booking.TableID)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 && current.IsActive() && current.Capacity >= booking.PartySize {
			var others int64
			err := tx.Model(&models.Booking{}).
				Where("date = ? AND time = ? AND status IN ? AND table_id = ? AND id <> ?",
					booking.Date, booking.Time, models.HoldingStatuses, current.ID, booking.ID).
				Count(&others).Error
			if err != nil {
				return nil, err
			}
			if others == 0 {
				return &current, nil
			}
		}
	}
	return a.bestFit(tx, booking.Date, booking.Time, booking.PartySize, booking.ID)
}
