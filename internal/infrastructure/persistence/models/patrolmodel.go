package models

import "time"

// PatrolMetaModel persists patrol plan headers. Status codes: 0 in
// progress, 1 completed, 2 cancelled. Unfinished is recomputed after
// every check-off and reaches zero exactly when the plan completes.
type PatrolMetaModel struct {
	ID         uint   `gorm:"primaryKey"`
	PatrolID   string `gorm:"uniqueIndex;size:12;not null;column:patrol_id"`
	PID        uint   `gorm:"not null;column:pid"`
	Total      int    `gorm:"not null"`
	Unfinished int    `gorm:"not null"`
	Status     int    `gorm:"not null;default:0"`
	StartTime  string `gorm:"size:32;not null"`
	EndTime    string `gorm:"size:32;not null"`
	DelFlag    bool   `gorm:"not null;default:false"`
	UpdatedAt  time.Time
}

func (PatrolMetaModel) TableName() string {
	return "patrol_meta"
}

// PatrolDetailModel is one inspection item per equipment within a plan.
// Checked flips from 0 to 1 exactly once.
type PatrolDetailModel struct {
	ID        uint `gorm:"primaryKey"`
	PID       uint `gorm:"not null;index;column:pid"`
	EID       uint `gorm:"not null;column:eid"`
	Checked   int  `gorm:"not null;default:0;column:checked"`
	DelFlag   bool `gorm:"not null;default:false"`
	UpdatedAt time.Time
}

func (PatrolDetailModel) TableName() string {
	return "patrol_detail"
}
