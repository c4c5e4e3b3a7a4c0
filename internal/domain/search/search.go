// Package search holds the read models shared between the content search
// usecase and the repositories that feed it.
package search

import (
	"time"

	"github.com/tabulahq/tabula/internal/domain/page"
	"github.com/tabulahq/tabula/internal/domain/task"
)

// TimeRange bounds a scan by entity modification time. Zero values leave
// the corresponding side unbounded.
type TimeRange struct {
	After  time.Time
	Before time.Time
}

// Contains reports whether t falls inside the range.
func (r TimeRange) Contains(t time.Time) bool {
	if !r.After.IsZero() && t.Before(r.After) {
		return false
	}
	if !r.Before.IsZero() && t.After(r.Before) {
		return false
	}
	return true
}

// IsZero reports whether the range is unbounded on both sides.
func (r TimeRange) IsZero() bool {
	return r.After.IsZero() && r.Before.IsZero()
}

// TaskItem is a task joined with its owning project's name.
type TaskItem struct {
	Task        task.Task
	ProjectName string
}

// PageItem is a page joined with its owning notebook's name.
type PageItem struct {
	Page         page.Page
	NotebookName string
}
