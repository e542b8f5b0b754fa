package models

import "time"

// CaptchaMetaModel binds an issued captcha to the order or patrol case
// it belongs to. One live captcha per case.
type CaptchaMetaModel struct {
	ID        uint   `gorm:"primaryKey"`
	CaseID    string `gorm:"uniqueIndex;size:16;not null;column:case_id"`
	Captcha   string `gorm:"size:12;not null"`
	UpdatedAt time.Time
}

func (CaptchaMetaModel) TableName() string {
	return "captcha_meta"
}

// EmailHistoryModel records sent notification emails, one per case.
type EmailHistoryModel struct {
	ID        uint   `gorm:"primaryKey"`
	CaseID    string `gorm:"uniqueIndex;size:16;not null;column:case_id"`
	Email     string `gorm:"size:128;not null"`
	Captcha   string `gorm:"size:12;not null"`
	Content   string `gorm:"size:256;not null"`
	CreatedAt time.Time
}

func (EmailHistoryModel) TableName() string {
	return "email_history"
}
