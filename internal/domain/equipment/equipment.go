package equipment

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of an asset.
type Status int

const (
	StatusInUse Status = iota
	StatusUnderRepair
	StatusSpare
	StatusScrapped
)

func (s Status) IsValid() bool {
	return s >= StatusInUse && s <= StatusScrapped
}

func (s Status) String() string {
	switch s {
	case StatusInUse:
		return "in use"
	case StatusUnderRepair:
		return "under repair"
	case StatusSpare:
		return "spare"
	case StatusScrapped:
		return "scrapped"
	}
	return "unknown"
}

// Equipment is a tracked asset. Edit holds the name of whoever last
// touched the record.
type Equipment struct {
	ID             uint
	Category       string
	Brand          string
	ModelNumber    string
	SerialNumber   string
	Price          int
	PurchasingTime *time.Time
	Guarantee      int
	Remark         string
	Status         Status
	User           string
	Owner          string
	Department     string
	Edit           string
	DelFlag        bool
	UpdatedAt      time.Time
}

func NewEquipment(category, department, editor string) (*Equipment, error) {
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if editor == "" {
		return nil, fmt.Errorf("editor is required")
	}
	return &Equipment{
		Category:   category,
		Department: department,
		Edit:       editor,
		Status:     StatusInUse,
	}, nil
}

// ComputerDetail is the hardware subrecord kept for computer assets.
type ComputerDetail struct {
	ID        uint
	EID       uint
	IPAddress string
	CPU       string
	GPU       string
	Disk      string
	Memory    string
	MainBoard string
	Monitor   string
	Remark    string
}

// EditEntry is one append-only row in the equipment edit trail.
type EditEntry struct {
	ID        uint
	EID       uint
	Content   string
	Edit      string
	CreatedAt time.Time
}
