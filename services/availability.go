package services

import (
	"github.com/yeremiapane/table-booking/models"
	"gorm.io/gorm"
)

// SeatingPolicy selects the admission algorithm. The set is closed: per-table or pooled.
type SeatingPolicy int

const (
	PerTableSeating SeatingPolicy = iota
	PooledSeating
)

func (p SeatingPolicy) String() string {
	if p == PooledSeating {
		return "pooled"
	}
	return "per_table"
}

type AvailabilityEvaluator struct {
	db *gorm.DB
}

func NewAvailabilityEvaluator(db *gorm.DB) *AvailabilityEvaluator {
	return &AvailabilityEvaluator{db: db}
}

// IsAvailable decides admission for one (date, time, party size) under the policy carried
// by snap.
func (e *AvailabilityEvaluator) IsAvailable(snap Snapshot, date, clock string, partySize int) (bool, error) {
	ok, err := evaluate(e.db, snap.Policy(), date, clock, partySize)
	if err != nil {
		return false, storageErr("check availability", err)
	}
	return ok, nil
}

func evaluate(tx *gorm.DB, policy SeatingPolicy, date, clock string, partySize int) (bool, error) {
	switch policy {
	case PooledSeating:
		return pooledAvailable(tx, date, clock, partySize)
	default:
		return perTableAvailable(tx, date, clock, partySize)
	}
}

func perTableAvailable(tx *gorm.DB, date, clock string, partySize int) (bool, error) {
	var free int64
	if err := freeTables(tx, date, clock, partySize, 0).Count(&free).Error; err != nil {
		return false, err
	}
	return free > 0, nil
}

func pooledAvailable(tx *gorm.DB, date, clock string, partySize int) (bool, error) {
	capacity, booked, err := pooledUsage(tx, date, clock)
	if err != nil {
		return false, err
	}
	if capacity == 0 {
		return false, nil
	}
	return capacity-booked >= int64(partySize), nil
}

// pooledUsage returns total active capacity and the party size already held at (date, time).
func pooledUsage(tx *gorm.DB, date, clock string) (capacity, booked int64, err error) {
	err = tx.Model(&models.Table{}).
		Where("status = ?", models.TableStatusActive).
		Select("COALESCE(SUM(capacity), 0)").
		Scan(&capacity).Error
	if err != nil {
		return 0, 0, err
	}
	err = tx.Model(&models.Booking{}).
		Where("date = ? AND time = ? AND status IN ?", date, clock, models.HoldingStatuses).
		Select("COALESCE(SUM(party_size), 0)").
		Scan(&booked).Error
	return capacity, booked, err
}

// freeTables selects active tables that fit partySize and are not held at (date, time).
// A non-zero exclude ignores that booking's own hold.
func freeTables(tx *gorm.DB, date, clock string, partySize int, exclude uint) *gorm.DB {
	held := tx.Model(&models.Booking{}).
		Select("table_id").
		Where("date = ? AND time = ? AND status IN ? AND table_id IS NOT NULL", date, clock, models.HoldingStatuses)
	if exclude != 0 {
		held = held.Where("id <> ?", exclude)
	}
	return tx.Model(&models.Table{}).
		Where("status = ? AND capacity >= ?", models.TableStatusActive, partySize).
		Where("id NOT IN (?)", held)
}
