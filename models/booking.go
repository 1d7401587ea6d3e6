package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusExpired   = "expired"
	BookingStatusSeated    = "seated"
	BookingStatusNoShow    = "no_show"
)

// HoldingStatuses are the statuses that occupy capacity at a (date, time).
var HoldingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

type Booking struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CustomerName      string    `gorm:"type:varchar(100);not null" json:"customer_name"`
	Phone             string    `gorm:"type:varchar(20);not null" json:"phone"`
	Email             string    `gorm:"type:varchar(100);not null;index" json:"email"`
	Date              string    `gorm:"type:varchar(10);not null;index:idx_booking_slot" json:"date"`
	Time              string    `gorm:"type:varchar(8);not null;index:idx_booking_slot" json:"time"`
	PartySize         int       `gorm:"not null" json:"party_size"`
	TableID           *uint     `gorm:"index" json:"table_id"`
	Table             *Table    `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	Status            string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes             string    `gorm:"type:text" json:"notes"`
	ConfirmationToken string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"-"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

// TableLabel returns the assigned table's name, or "" when unassigned or not preloaded.
func (b Booking) TableLabel() string {
	if b.Table == nil {
		return ""
	}
	return b.Table.Name
}
