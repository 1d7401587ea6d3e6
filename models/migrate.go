package models

// All lists every model managed by AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Table{},
		&Shift{},
		&Booking{},
		&Setting{},
	}
}
