package models

import (
	"time"

	"assetdesk/internal/shared/authorization"
)

// ProfileModel persists staff accounts. Username is the login name
// (real name plus work number); WxID links the corporate WeChat account.
type ProfileModel struct {
	ID           uint                     `gorm:"primaryKey"`
	Username     string                   `gorm:"uniqueIndex;size:16;not null"`
	WorkNumber   string                   `gorm:"size:8;not null"`
	Name         string                   `gorm:"size:16;not null"`
	Department   string                   `gorm:"size:32"`
	Phone        string                   `gorm:"size:16"`
	Role         authorization.Permission `gorm:"not null;default:0"`
	PasswordHash string                   `gorm:"size:128;not null"`
	Email        string                   `gorm:"size:128"`
	WxID         string                   `gorm:"size:128"`
	UpdatedAt    time.Time
}

func (ProfileModel) TableName() string {
	return "profile"
}
