package services

import (
	"errors"
	"time"

	"github.com/yeremiapane/table-booking/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Admission int

const (
	Rejected Admission = iota
	Admitted
)

func (a Admission) String() string {
	if a == Admitted {
		return "admitted"
	}
	return "rejected"
}

// Reserver owns every write that consumes capacity. Each call holds the slot lock for
// its (date, time) and runs check and write in one transaction with the active tables
// row-locked, so concurrent admissions for the same slot are serialized.
type Reserver struct {
	db     *gorm.DB
	locks  *SlotLocks
	tables *TableAssigner
}

func NewReserver(db *gorm.DB, locks *SlotLocks) *Reserver {
	return &Reserver{db: db, locks: locks, tables: NewTableAssigner(db)}
}

// TryReserve inserts booking only if the slot still has room under policy. Under the
// per-table policy the best-fit table is held on the booking.
func (r *Reserver) TryReserve(policy SeatingPolicy, booking *models.Booking) (Admission, error) {
	unlock := r.locks.Lock(booking.Date, booking.Time)
	defer unlock()

	admission := Rejected
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockActiveTables(tx); err != nil {
			return err
		}
		switch policy {
		case PooledSeating:
			ok, err := pooledAvailable(tx, booking.Date, booking.Time, booking.PartySize)
			if err != nil || !ok {
				return err
			}
		default:
			table, err := r.tables.bestFit(tx, booking.Date, booking.Time, booking.PartySize, 0)
			if err != nil || table == nil {
				return err
			}
			booking.TableID = &table.ID
		}
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		admission = Admitted
		return nil
	})
	if err != nil {
		booking.TableID = nil
		return Rejected, storageErr("reserve slot", err)
	}
	if admission == Rejected {
		booking.TableID = nil
	}
	return admission, nil
}

// Place inserts a staff booking without gating. Under the per-table policy it still takes
// the best-fit table when one is free so the booking is visible to later checks.
func (r *Reserver) Place(policy SeatingPolicy, booking *models.Booking) error {
	unlock := r.locks.Lock(booking.Date, booking.Time)
	defer unlock()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if policy == PerTableSeating {
			if err := lockActiveTables(tx); err != nil {
				return err
			}
			table, err := r.tables.bestFit(tx, booking.Date, booking.Time, booking.PartySize, 0)
			if err != nil {
				return err
			}
			if table != nil {
				booking.TableID = &table.ID
			}
		}
		return tx.Create(booking).Error
	})
	return storageErr("place booking", err)
}

// Confirm moves a pending booking to confirmed. Under the per-table policy it keeps the
// held table while that table still fits, and otherwise picks a fresh best-fit table;
// with none free it fails with ErrNoTableAvailable and the booking stays pending.
func (r *Reserver) Confirm(policy SeatingPolicy, id uint, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.First(&booking, id).Error; err != nil {
		return nil, notFoundOr("booking", "load booking", err)
	}

	unlock := r.locks.Lock(booking.Date, booking.Time)
	defer unlock()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			return err
		}
		if booking.Status != models.BookingStatusPending {
			return &InvalidStatusTransitionError{From: booking.Status, To: models.BookingStatusConfirmed}
		}

		updates := map[string]interface{}{
			"status":     models.BookingStatusConfirmed,
			"updated_at": now,
		}
		if policy == PerTableSeating {
			if err := lockActiveTables(tx); err != nil {
				return err
			}
			table, err := r.tables.keepOrReassign(tx, &booking)
			if err != nil {
				return err
			}
			if table == nil {
				return ErrNoTableAvailable
			}
			updates["table_id"] = table.ID
			booking.TableID = &table.ID
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", id, models.BookingStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidStatusTransitionError{From: booking.Status, To: models.BookingStatusConfirmed}
		}
		booking.Status = models.BookingStatusConfirmed
		booking.UpdatedAt = now
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "booking"}
		}
		return nil, storageErr("confirm booking", err)
	}
	return &booking, nil
}

// lockActiveTables takes row locks on every active table. Drivers without row locking
// (SQLite) drop the clause and rely on their single-writer transactions.
func lockActiveTables(tx *gorm.DB) error {
	var ids []uint
	return tx.Model(&models.Table{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", models.TableStatusActive).
		Pluck("id", &ids).Error
}
