package search

import (
	"context"

	"github.com/tabulahq/tabula/internal/domain/project"
	domsearch "github.com/tabulahq/tabula/internal/domain/search"
)

// ProjectSource lists the projects owned by an actor.
type ProjectSource interface {
	OwnedBy(ctx context.Context, ownerID int64, includeArchived bool, rng domsearch.TimeRange) ([]project.Project, error)
}

// TaskSource lists tasks whose project is owned by an actor, joined with
// the project name.
type TaskSource interface {
	ForOwner(ctx context.Context, ownerID int64, rng domsearch.TimeRange) ([]domsearch.TaskItem, error)
}

// PageSource lists notebook pages whose notebook is owned by an actor,
// joined with the notebook name.
type PageSource interface {
	ForOwner(ctx context.Context, ownerID int64, rng domsearch.TimeRange) ([]domsearch.PageItem, error)
}
