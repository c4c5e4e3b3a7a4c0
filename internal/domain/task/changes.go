package task

import "time"

// Changes is a partial update applied to a batch of tasks. Nil fields are
// left untouched.
type Changes struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	ProjectID   *int64
	DueDate     *time.Time
}

// IsEmpty reports whether no field would change.
func (c Changes) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.Status == nil &&
		c.Priority == nil && c.ProjectID == nil && c.DueDate == nil
}
