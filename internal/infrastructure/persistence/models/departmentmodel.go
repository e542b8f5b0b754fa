package models

// DepartmentMetaModel names an organization node. IsGlobal marks
// departments whose members see company-wide data instead of their own
// subtree only.
type DepartmentMetaModel struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:64;not null"`
	IsGlobal bool   `gorm:"not null;default:false"`
}

func (DepartmentMetaModel) TableName() string {
	return "department_meta"
}

// DepartmentRelationModel is the closure table over the organization
// tree. Every node carries a depth-zero row pointing at itself; the
// root's ancestor is null.
type DepartmentRelationModel struct {
	ID         uint  `gorm:"primaryKey"`
	Ancestor   *uint `gorm:"index"`
	Descendant uint  `gorm:"not null;index"`
	Depth      int   `gorm:"not null"`
}

func (DepartmentRelationModel) TableName() string {
	return "department_relation"
}

// DepartmentContactModel maps a department to its contact profile.
type DepartmentContactModel struct {
	ID  uint  `gorm:"primaryKey"`
	DID uint  `gorm:"uniqueIndex;not null;column:did"`
	PID *uint `gorm:"column:pid"`
}

func (DepartmentContactModel) TableName() string {
	return "department_contact"
}
