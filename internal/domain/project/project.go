package project

import (
	"fmt"
	"time"
)

// MaxNameLength is the maximum allowed project name length.
const MaxNameLength = 256

// Project is a board-level container for tasks (immutable value object).
type Project struct {
	id          int64
	ownerID     int64
	name        string
	description string
	archived    bool
	updatedAt   time.Time
}

// New validates and creates a Project. Name is required.
func New(ownerID int64, name, description string) (Project, error) {
	if name == "" {
		return Project{}, fmt.Errorf("project name is required")
	}
	if len(name) > MaxNameLength {
		return Project{}, fmt.Errorf("project name too long (max %d)", MaxNameLength)
	}
	return Project{
		ownerID:     ownerID,
		name:        name,
		description: description,
		updatedAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct creates a Project without validation (storage hydration).
func Reconstruct(id, ownerID int64, name, description string, archived bool, updatedAt time.Time) Project {
	return Project{
		id: id, ownerID: ownerID, name: name, description: description,
		archived: archived, updatedAt: updatedAt,
	}
}

// ID returns the project identifier.
func (p *Project) ID() int64 { return p.id }

// OwnerID returns the owning user's identifier.
func (p *Project) OwnerID() int64 { return p.ownerID }

// Name returns the project name.
func (p *Project) Name() string { return p.name }

// Description returns the project description.
func (p *Project) Description() string { return p.description }

// Archived reports whether the project has been archived.
func (p *Project) Archived() bool { return p.archived }

// UpdatedAt returns the last modification time.
func (p *Project) UpdatedAt() time.Time { return p.updatedAt }
