package organization

import "context"

// Repository maintains the closure-table organization tree. Every node
// stores a depth-zero relation to itself plus one row per ancestor.
type Repository interface {
	// AddNode creates the department and its closure rows under parent.
	// A nil parent creates a root.
	AddNode(ctx context.Context, name string, isGlobal bool, parentID *uint) (*Department, error)

	// RemoveSubtree deletes the department and every descendant along
	// with their closure rows.
	RemoveSubtree(ctx context.Context, id uint) error

	Rename(ctx context.Context, id uint, name string) error
	GetByID(ctx context.Context, id uint) (*Department, error)
	GetByName(ctx context.Context, name string) (*Department, error)

	// Subtree returns the department and its descendants as a nested
	// tree built from closure depths.
	Subtree(ctx context.Context, rootID uint) (*Node, error)

	// Roots returns every department without an ancestor.
	Roots(ctx context.Context) ([]*Department, error)

	// DescendantNames lists the names of id's subtree, itself included.
	// Used for department-scoped statistics rollups.
	DescendantNames(ctx context.Context, id uint) ([]string, error)

	GetContact(ctx context.Context, did uint) (*Contact, error)
	SetContact(ctx context.Context, did uint, pid *uint) error
}
