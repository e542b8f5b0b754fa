package models

import (
	"time"

	"gorm.io/datatypes"
)

// EquipmentModel persists asset records. Status codes: 0 in use,
// 1 under repair, 2 spare, 3 scrapped.
type EquipmentModel struct {
	ID             uint           `gorm:"primaryKey"`
	Category       string         `gorm:"size:32;not null;index:idx_category_department"`
	Brand          string         `gorm:"size:32"`
	ModelNumber    string         `gorm:"size:64"`
	SerialNumber   string         `gorm:"size:64"`
	Price          int            `gorm:"not null;default:0"`
	PurchasingTime datatypes.Date
	Guarantee      int    `gorm:"default:0"`
	Remark         string `gorm:"size:128"`
	Status         int    `gorm:"not null;default:0"`
	User           string `gorm:"size:16"`
	Owner          string `gorm:"size:16"`
	Department     string `gorm:"size:32;index:idx_category_department"`
	Edit           string `gorm:"size:16;not null"`
	DelFlag        bool   `gorm:"not null;default:false"`
	UpdatedAt      time.Time
}

func (EquipmentModel) TableName() string {
	return "equipment"
}

// EditHistoryModel is an append-only log of equipment edits.
type EditHistoryModel struct {
	ID        uint   `gorm:"primaryKey"`
	EID       uint   `gorm:"not null;index;column:eid"`
	Content   string `gorm:"size:1023;not null"`
	Edit      string `gorm:"size:16;not null"`
	CreatedAt time.Time
}

func (EditHistoryModel) TableName() string {
	return "edit_history"
}

// ComputerDetailModel holds the hardware subrecord for computer-class
// equipment. At most one row per equipment.
type ComputerDetailModel struct {
	ID        uint   `gorm:"primaryKey"`
	EID       uint   `gorm:"uniqueIndex;not null;column:eid"`
	IPAddress string `gorm:"size:64"`
	CPU       string `gorm:"size:32"`
	GPU       string `gorm:"size:32"`
	Disk      string `gorm:"size:32"`
	Memory    string `gorm:"size:32"`
	MainBoard string `gorm:"size:32"`
	Monitor   string `gorm:"size:32"`
	Remark    string `gorm:"size:128"`
	DelFlag   bool   `gorm:"not null;default:false"`
	UpdatedAt time.Time
}

func (ComputerDetailModel) TableName() string {
	return "computer_detail"
}
