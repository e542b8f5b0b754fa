package models

import "time"

// ItConfigModel is a small key-value table for runtime toggles such as
// sendSms and sendEmail.
type ItConfigModel struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"uniqueIndex;size:32;not null"`
	Value     string `gorm:"size:32;not null"`
	UpdatedAt time.Time
}

func (ItConfigModel) TableName() string {
	return "it_config"
}
