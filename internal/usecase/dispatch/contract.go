package dispatch

import (
	"context"

	"github.com/tabulahq/tabula/internal/domain/notebook"
	"github.com/tabulahq/tabula/internal/domain/page"
	"github.com/tabulahq/tabula/internal/domain/project"
	"github.com/tabulahq/tabula/internal/domain/task"
)

// ProjectStore persists projects for the dispatcher.
type ProjectStore interface {
	// GetOwned resolves a project only if it is owned by ownerID, failing
	// with domain.ErrNotFound otherwise.
	GetOwned(ctx context.Context, id, ownerID int64) (project.Project, error)
	Create(ctx context.Context, p project.Project) (int64, error)
}

// TaskStore persists tasks for the dispatcher.
type TaskStore interface {
	// MaxPosition returns the highest position in a project's board column,
	// or 0 when the column is empty.
	MaxPosition(ctx context.Context, projectID int64, status task.Status) (int, error)
	Create(ctx context.Context, t task.Task) (int64, error)
	// UpdateBulk applies changes to the given task ids and returns how many
	// rows changed.
	UpdateBulk(ctx context.Context, ids []int64, changes task.Changes) (int, error)
	// DeleteOwned deletes only those of the given tasks whose project is
	// owned by ownerID and returns how many were deleted.
	DeleteOwned(ctx context.Context, ids []int64, ownerID int64) (int, error)
}

// NotebookStore persists notebooks for the dispatcher.
type NotebookStore interface {
	GetOwned(ctx context.Context, id, ownerID int64) (notebook.Notebook, error)
	Create(ctx context.Context, n notebook.Notebook) (int64, error)
}

// PageStore persists notebook pages for the dispatcher.
type PageStore interface {
	// GetOwned resolves a page only if its notebook is owned by ownerID.
	GetOwned(ctx context.Context, id, ownerID int64) (page.Page, error)
	MaxPosition(ctx context.Context, notebookID int64) (int, error)
	Create(ctx context.Context, p page.Page) (int64, error)
	// Update rewrites a page's content and, when title is non-nil, renames it.
	Update(ctx context.Context, id int64, title *string, content string) error
}
