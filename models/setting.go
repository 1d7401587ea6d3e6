package models

type Setting struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	SettingKey   string `gorm:"type:varchar(100);not null;uniqueIndex" json:"setting_key"`
	SettingValue string `gorm:"type:text" json:"setting_value"`
}
