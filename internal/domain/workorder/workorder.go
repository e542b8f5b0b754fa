package workorder

import (
	"fmt"
	"time"
)

// WorkOrder is a maintenance ticket. OrderID is the human readable id
// shown to reporters; PID and Name identify the assigned worker once
// the order is dispatched.
type WorkOrder struct {
	ID         uint
	OrderID    string
	Status     Status
	PID        *uint
	Name       string
	EID        uint
	Equipment  string
	Department string
	Content    string
	Reason     string
	Rank       *int
	DelFlag    bool
	UpdatedAt  time.Time
}

// NewWorkOrder builds a freshly reported order.
func NewWorkOrder(orderID string, eid uint, equipment, department, content, reason string) (*WorkOrder, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order id is required")
	}
	if eid == 0 {
		return nil, fmt.Errorf("equipment id is required")
	}
	if equipment == "" {
		return nil, fmt.Errorf("equipment name is required")
	}
	if content == "" {
		return nil, fmt.Errorf("content is required")
	}
	if len(content) > 255 {
		return nil, fmt.Errorf("content exceeds maximum length of 255 characters")
	}
	if reason == "" {
		return nil, fmt.Errorf("reason is required")
	}

	return &WorkOrder{
		OrderID:    orderID,
		Status:     StatusReported,
		EID:        eid,
		Equipment:  equipment,
		Department: department,
		Content:    content,
		Reason:     reason,
	}, nil
}

// HistoryEntry is one append-only row in an order's trail.
type HistoryEntry struct {
	ID        uint
	OID       uint
	Status    Status
	Name      string
	Phone     string
	Remark    string
	Content   string
	CreatedAt time.Time
}

// ValidRank reports whether an evaluation score is within bounds.
func ValidRank(rank int) bool {
	return rank >= 0 && rank <= 5
}
