// Package assistant runs one conversational turn: find relevant workspace
// content, ask the model, and execute whatever command the model decided on.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tabulahq/tabula/internal/domain"
	"github.com/tabulahq/tabula/internal/domain/search/result"
	"github.com/tabulahq/tabula/internal/usecase/dispatch"
	"github.com/tabulahq/tabula/internal/usecase/prompt"
	searchuc "github.com/tabulahq/tabula/internal/usecase/search"
)

const systemInstructions = `You are the assistant inside a project management app.
Reply with a single JSON object: {"response": "<text for the user>", "action": "<action or empty>", "parameters": {...}}.
Supported actions: create_project, create_task, create_multiple_tasks, update_task, move_task, delete_task, create_notebook, create_page, update_page, navigate, query_tasks, query_projects.
Leave action empty for informational answers. Use only ids present in the provided context.`

// Reply is the user-facing outcome of one turn.
type Reply struct {
	Message string          `json:"message"`
	Action  dispatch.Action `json:"action,omitempty"`
	Result  any             `json:"result,omitempty"`
}

// Service orchestrates the assistant pipeline.
type Service struct {
	search   Searcher
	commands Commander
	model    Model
	logger   *zap.Logger
}

// New creates an assistant service.
func New(search Searcher, commands Commander, model Model, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{search: search, commands: commands, model: model, logger: logger}
}

// Respond runs one turn. Search failures degrade to an uninformed prompt
// and command failures degrade to an explanation in the reply text; only a
// failed model call fails the turn itself.
func (s *Service) Respond(ctx context.Context, actorID int64, message string, rctx dispatch.Context) (Reply, error) {
	results, err := s.search.Search(ctx, actorID, message, searchuc.Options{})
	if err != nil {
		s.logger.Warn("content search failed, continuing without context", zap.Error(err))
		results = nil
	}

	raw, err := s.model.Complete(ctx, s.buildPrompt(results, message, rctx))
	if err != nil {
		return Reply{}, fmt.Errorf("model completion: %w", err)
	}

	mr, perr := parseReply(raw)
	if perr != nil {
		if action, params, ok := fallbackCommand(message); ok {
			s.logger.Info("recovered command from raw message", zap.String("action", string(action)))
			mr = modelReply{Action: string(action), Parameters: params}
		} else {
			// The model answered in plain prose; pass it through.
			return Reply{Message: strings.TrimSpace(raw)}, nil
		}
	}

	reply := Reply{Message: strings.TrimSpace(mr.Response)}
	action := dispatch.Action(mr.Action)
	if mr.Action == "" {
		return s.informational(reply, results), nil
	}

	res, derr := s.commands.Dispatch(ctx, action, mr.Parameters, actorID, rctx)
	if derr != nil {
		reply.Message = joinText(reply.Message, explainFailure(derr))
		return reply, nil
	}

	reply.Action = res.Action
	reply.Result = res.Payload
	if !res.Action.Mutates() {
		return s.informational(reply, results), nil
	}
	return reply, nil
}

// informational appends source citations to replies that changed nothing.
func (s *Service) informational(reply Reply, results []result.Result) Reply {
	if c := prompt.Citations(results); c != "" {
		reply.Message = joinText(reply.Message, c)
	}
	return reply
}

func (s *Service) buildPrompt(results []result.Result, message string, rctx dispatch.Context) string {
	var b strings.Builder
	b.WriteString(systemInstructions)
	b.WriteString("\n\n")
	if ctxBlock := prompt.ForModel(results); ctxBlock != "" {
		b.WriteString(ctxBlock)
		b.WriteString("\n")
	}
	if loc := describeLocation(rctx); loc != "" {
		b.WriteString(loc)
		b.WriteString("\n\n")
	}
	b.WriteString("User message: ")
	b.WriteString(message)
	return b.String()
}

// describeLocation tells the model where the actor currently is in the UI.
func describeLocation(rctx dispatch.Context) string {
	var parts []string
	if rctx.ProjectID != 0 {
		parts = append(parts, fmt.Sprintf("project %d", rctx.ProjectID))
	}
	if rctx.NotebookID != 0 {
		parts = append(parts, fmt.Sprintf("notebook %d", rctx.NotebookID))
	}
	if rctx.PageID != 0 {
		parts = append(parts, fmt.Sprintf("page %d", rctx.PageID))
	}
	if len(parts) == 0 {
		return ""
	}
	return "The user is currently viewing: " + strings.Join(parts, ", ") + "."
}

// explainFailure converts a dispatch error into a user-visible sentence so
// the turn still produces an answer.
func explainFailure(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "I couldn't find that item. It may not exist, or it may belong to someone else."
	case errors.Is(err, domain.ErrValidation):
		return "I couldn't run that action because something was missing: " + err.Error()
	default:
		return "Something went wrong while applying that change, so nothing was saved."
	}
}

func joinText(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "\n\n" + b
}
