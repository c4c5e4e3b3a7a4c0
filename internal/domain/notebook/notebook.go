package notebook

import (
	"fmt"
	"time"
)

// Notebook is a collection of rich-text pages (immutable value object).
type Notebook struct {
	id        int64
	ownerID   int64
	name      string
	updatedAt time.Time
}

// New validates and creates a Notebook. Name is required.
func New(ownerID int64, name string) (Notebook, error) {
	if name == "" {
		return Notebook{}, fmt.Errorf("notebook name is required")
	}
	return Notebook{ownerID: ownerID, name: name, updatedAt: time.Now().UTC()}, nil
}

// Reconstruct creates a Notebook without validation (storage hydration).
func Reconstruct(id, ownerID int64, name string, updatedAt time.Time) Notebook {
	return Notebook{id: id, ownerID: ownerID, name: name, updatedAt: updatedAt}
}

// ID returns the notebook identifier.
func (n *Notebook) ID() int64 { return n.id }

// OwnerID returns the owning user's identifier.
func (n *Notebook) OwnerID() int64 { return n.ownerID }

// Name returns the notebook name.
func (n *Notebook) Name() string { return n.name }

// UpdatedAt returns the last modification time.
func (n *Notebook) UpdatedAt() time.Time { return n.updatedAt }
