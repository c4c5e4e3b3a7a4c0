package assistant

import (
	"context"

	"github.com/tabulahq/tabula/internal/domain/search/result"
	"github.com/tabulahq/tabula/internal/usecase/dispatch"
	searchuc "github.com/tabulahq/tabula/internal/usecase/search"
)

// Model produces a completion for a prompt.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Searcher finds workspace content relevant to a query.
type Searcher interface {
	Search(ctx context.Context, actorID int64, query string, opts searchuc.Options) ([]result.Result, error)
}

// Commander executes a structured command on behalf of an actor.
type Commander interface {
	Dispatch(ctx context.Context, action dispatch.Action, params dispatch.Params, actorID int64, rctx dispatch.Context) (dispatch.Result, error)
}
