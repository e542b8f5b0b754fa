package models

import "time"

// WorkOrderModel persists maintenance tickets. OrderID is the human
// readable id (date prefix plus a three digit sequence); Status holds a
// single state letter. PID and Name track the currently assigned worker.
type WorkOrderModel struct {
	ID         uint   `gorm:"primaryKey"`
	OrderID    string `gorm:"uniqueIndex;size:12;not null;column:order_id"`
	Status     string `gorm:"size:1;not null;default:R"`
	PID        *uint  `gorm:"index;column:pid"`
	Name       string `gorm:"size:16"`
	EID        uint   `gorm:"not null;column:eid"`
	Equipment  string `gorm:"size:32;not null"`
	Department string `gorm:"size:32;not null"`
	Content    string `gorm:"size:255;not null"`
	Reason     string `gorm:"size:32;not null"`
	Rank       *int
	DelFlag    bool `gorm:"not null;default:false"`
	UpdatedAt  time.Time
}

func (WorkOrderModel) TableName() string {
	return "order"
}

// OrderHistoryModel is the append-only trail of work order transitions.
// One row per transition, never updated.
type OrderHistoryModel struct {
	ID        uint   `gorm:"primaryKey"`
	OID       uint   `gorm:"not null;index;column:oid"`
	Status    string `gorm:"size:1;not null"`
	Name      string `gorm:"size:16;not null"`
	Phone     string `gorm:"size:16"`
	Remark    string `gorm:"size:255"`
	Content   string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

func (OrderHistoryModel) TableName() string {
	return "order_history"
}
