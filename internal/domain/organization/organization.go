package organization

// Department is one organization node. IsGlobal marks departments whose
// members see company-wide data.
type Department struct {
	ID       uint
	Name     string
	IsGlobal bool
}

// Node is a department with its children attached, as returned by tree
// queries.
type Node struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	IsGlobal bool    `json:"is_global"`
	Children []*Node `json:"children"`
}

// Contact links a department to its contact profile.
type Contact struct {
	ID  uint
	DID uint
	PID *uint
}
