package user

import (
	"fmt"
	"time"

	"assetdesk/internal/shared/authorization"
)

// Profile is a staff account. Username is the login name, built from
// the real name and work number so two people with the same name stay
// distinguishable.
type Profile struct {
	ID           uint
	Username     string
	WorkNumber   string
	Name         string
	Department   string
	Phone        string
	Role         authorization.Permission
	PasswordHash string
	Email        string
	WxID         string
	UpdatedAt    time.Time
}

func NewProfile(username, workNumber, name, department string, role authorization.Permission) (*Profile, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(username) > 16 {
		return nil, fmt.Errorf("username exceeds maximum length of 16 characters")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	return &Profile{
		Username:   username,
		WorkNumber: workNumber,
		Name:       name,
		Department: department,
		Role:       role,
	}, nil
}

// IsMaintenance reports whether the profile can be dispatched to work
// orders.
func (p *Profile) IsMaintenance() bool {
	return authorization.Has(p.Role, authorization.PermMaintenance) ||
		authorization.Has(p.Role, authorization.PermMaintenanceHigher)
}
