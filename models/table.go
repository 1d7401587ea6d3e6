package models

import "time"

const (
	TableStatusActive   = "active"
	TableStatusInactive = "inactive"
)

type Table struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Capacity     int       `gorm:"not null;default:2" json:"capacity"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	LocationZone string    `gorm:"type:varchar(100)" json:"location_zone"`
	Notes        string    `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// IsActive reports whether the table counts toward capacity and assignment.
func (t Table) IsActive() bool {
	return t.Status == TableStatusActive
}
