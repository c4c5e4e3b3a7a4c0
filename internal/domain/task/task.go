package task

import (
	"fmt"
	"time"
)

// Status is a task's board column.
type Status string

// Board columns.
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// Priority is a task's urgency level.
type Priority string

// Priority levels.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid checks if the priority is one of the supported values.
func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task is a single unit of work on a project board (immutable value object).
type Task struct {
	id          int64
	projectID   int64
	title       string
	description string
	status      Status
	priority    Priority
	position    int
	dueDate     *time.Time
	updatedAt   time.Time
}

// New validates and creates a Task. Title is required; empty status and
// priority fall back to todo/medium.
func New(projectID int64, title, description string, status Status, priority Priority, dueDate *time.Time) (Task, error) {
	if title == "" {
		return Task{}, fmt.Errorf("task title is required")
	}
	if status == "" {
		status = StatusTodo
	}
	if !status.IsValid() {
		return Task{}, fmt.Errorf("invalid task status: %q", status)
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return Task{}, fmt.Errorf("invalid task priority: %q", priority)
	}
	return Task{
		projectID:   projectID,
		title:       title,
		description: description,
		status:      status,
		priority:    priority,
		dueDate:     dueDate,
		updatedAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct creates a Task without validation (storage hydration).
func Reconstruct(
	id, projectID int64, title, description string,
	status Status, priority Priority, position int,
	dueDate *time.Time, updatedAt time.Time,
) Task {
	return Task{
		id: id, projectID: projectID, title: title, description: description,
		status: status, priority: priority, position: position,
		dueDate: dueDate, updatedAt: updatedAt,
	}
}

// WithPosition returns a copy with the given column position set.
func (t *Task) WithPosition(pos int) Task {
	c := *t
	c.position = pos
	return c
}

// ID returns the task identifier.
func (t *Task) ID() int64 { return t.id }

// ProjectID returns the parent project's identifier.
func (t *Task) ProjectID() int64 { return t.projectID }

// Title returns the task title.
func (t *Task) Title() string { return t.title }

// Description returns the task description.
func (t *Task) Description() string { return t.description }

// Status returns the board column.
func (t *Task) Status() Status { return t.status }

// Priority returns the urgency level.
func (t *Task) Priority() Priority { return t.priority }

// Position returns the ordering index within the column.
func (t *Task) Position() int { return t.position }

// DueDate returns the due date, or nil if none was set.
func (t *Task) DueDate() *time.Time { return t.dueDate }

// UpdatedAt returns the last modification time.
func (t *Task) UpdatedAt() time.Time { return t.updatedAt }
