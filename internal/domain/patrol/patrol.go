package patrol

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a patrol plan.
type Status int

const (
	StatusInProgress Status = iota
	StatusCompleted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Plan is a scheduled inspection round over a set of equipment.
// Unfinished counts unchecked details and hits zero exactly when the
// plan completes.
type Plan struct {
	ID         uint
	PatrolID   string
	PID        uint
	Total      int
	Unfinished int
	Status     Status
	StartTime  string
	EndTime    string
	DelFlag    bool
	UpdatedAt  time.Time
}

func NewPlan(patrolID string, inspectorID uint, equipmentIDs []uint, startTime, endTime string) (*Plan, []*Detail, error) {
	if patrolID == "" {
		return nil, nil, fmt.Errorf("patrol id is required")
	}
	if inspectorID == 0 {
		return nil, nil, fmt.Errorf("inspector is required")
	}
	if len(equipmentIDs) == 0 {
		return nil, nil, fmt.Errorf("at least one equipment is required")
	}
	if startTime == "" || endTime == "" {
		return nil, nil, fmt.Errorf("start and end time are required")
	}

	plan := &Plan{
		PatrolID:   patrolID,
		PID:        inspectorID,
		Total:      len(equipmentIDs),
		Unfinished: len(equipmentIDs),
		Status:     StatusInProgress,
		StartTime:  startTime,
		EndTime:    endTime,
	}
	details := make([]*Detail, 0, len(equipmentIDs))
	for _, eid := range equipmentIDs {
		details = append(details, &Detail{EID: eid})
	}
	return plan, details, nil
}

// Detail is one inspection item. Checked flips from 0 to 1 once.
type Detail struct {
	ID      uint
	PID     uint
	EID     uint
	Checked int
	DelFlag bool
}
