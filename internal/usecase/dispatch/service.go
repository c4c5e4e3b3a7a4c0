// Package dispatch executes structured assistant commands against the
// store on behalf of an authenticated actor. Every mutating action
// re-resolves its target and verifies ownership per call.
package dispatch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tabulahq/tabula/internal/domain"
	"github.com/tabulahq/tabula/internal/domain/notebook"
	"github.com/tabulahq/tabula/internal/domain/page"
	"github.com/tabulahq/tabula/internal/domain/project"
	"github.com/tabulahq/tabula/internal/domain/richtext"
	"github.com/tabulahq/tabula/internal/domain/task"
	"github.com/tabulahq/tabula/internal/metrics"
)

// Service is the command dispatcher.
type Service struct {
	projects  ProjectStore
	tasks     TaskStore
	notebooks NotebookStore
	pages     PageStore
	logger    *zap.Logger
}

// New creates a command dispatcher.
func New(projects ProjectStore, tasks TaskStore, notebooks NotebookStore, pages PageStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{projects: projects, tasks: tasks, notebooks: notebooks, pages: pages, logger: logger}
}

// Dispatch executes one command. Unknown actions return a no-op result
// rather than an error; everything else returns either the action's
// payload or a typed domain error.
func (s *Service) Dispatch(ctx context.Context, action Action, params Params, actorID int64, rctx Context) (Result, error) {
	res, err := s.execute(ctx, action, params, actorID, rctx)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.CommandsTotal.WithLabelValues(string(action), status).Inc()
	if err != nil {
		s.logger.Warn("command failed",
			zap.String("action", string(action)),
			zap.Int64("actor_id", actorID),
			zap.Error(err),
		)
		return Result{}, err
	}
	s.logger.Info("command executed",
		zap.String("action", string(res.Action)),
		zap.Int64("actor_id", actorID),
	)
	return res, nil
}

func (s *Service) execute(ctx context.Context, action Action, params Params, actorID int64, rctx Context) (Result, error) {
	switch action {
	case ActionCreateProject:
		return s.createProject(ctx, params, actorID)
	case ActionCreateTask:
		return s.createTask(ctx, params, actorID, rctx)
	case ActionCreateMultipleTasks:
		return s.createMultipleTasks(ctx, params, actorID, rctx)
	case ActionUpdateTask, ActionMoveTask:
		return s.updateTasks(ctx, action, params)
	case ActionDeleteTask:
		return s.deleteTasks(ctx, params, actorID)
	case ActionCreateNotebook:
		return s.createNotebook(ctx, params, actorID)
	case ActionCreatePage:
		return s.createPage(ctx, params, actorID, rctx)
	case ActionUpdatePage:
		return s.updatePage(ctx, params, actorID, rctx)
	case ActionNavigate, ActionQueryTasks, ActionQueryProjects:
		// Pass-through: the caller interprets the parameters, nothing is
		// persisted here.
		return Result{Action: action, Payload: map[string]any(params)}, nil
	default:
		return Result{
			Action:  ActionNone,
			Payload: NonePayload{Message: fmt.Sprintf("Unrecognized action %q, no changes were made.", action)},
		}, nil
	}
}

func (s *Service) createProject(ctx context.Context, params Params, actorID int64) (Result, error) {
	name := params.String("name")
	if name == "" {
		return Result{}, domain.NewMissingParam("name")
	}
	p, err := project.New(actorID, name, params.String("description"))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	id, err := s.projects.Create(ctx, p)
	if err != nil {
		return Result{}, fmt.Errorf("create project: %w", err)
	}
	return Result{
		Action:  ActionCreateProject,
		Payload: CreateProjectPayload{ProjectID: id, ProjectName: name},
	}, nil
}

func (s *Service) createTask(ctx context.Context, params Params, actorID int64, rctx Context) (Result, error) {
	projectID, err := s.resolveProject(ctx, params, actorID, rctx)
	if err != nil {
		return Result{}, err
	}
	title := params.String("title")
	if title == "" {
		return Result{}, domain.NewMissingParam("title")
	}
	id, t, err := s.insertTask(ctx, projectID, title, params)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Action:  ActionCreateTask,
		Payload: CreateTaskPayload{TaskID: id, TaskTitle: t.Title(), ProjectID: projectID},
	}, nil
}

func (s *Service) createMultipleTasks(ctx context.Context, params Params, actorID int64, rctx Context) (Result, error) {
	projectID, err := s.resolveProject(ctx, params, actorID, rctx)
	if err != nil {
		return Result{}, err
	}
	specs := params.Maps("tasks")
	if len(specs) == 0 {
		return Result{}, domain.NewMissingParam("tasks")
	}
	for _, spec := range specs {
		if spec.String("title") == "" {
			return Result{}, domain.NewMissingParam("tasks[].title")
		}
	}

	// Inserts are sequential and best-effort: a failure partway through
	// leaves the earlier rows in place, and each insert re-reads the column
	// max on its own, so concurrent writers can race position assignment.
	created := make([]CreateTaskPayload, 0, len(specs))
	for _, spec := range specs {
		id, t, err := s.insertTask(ctx, projectID, spec.String("title"), spec)
		if err != nil {
			return Result{}, fmt.Errorf("create task %d of %d: %w", len(created)+1, len(specs), err)
		}
		created = append(created, CreateTaskPayload{TaskID: id, TaskTitle: t.Title(), ProjectID: projectID})
	}
	return Result{
		Action:  ActionCreateMultipleTasks,
		Payload: CreateTasksPayload{Count: len(created), Tasks: created, ProjectID: projectID},
	}, nil
}

// insertTask builds a task from its parameter bag and inserts it at the
// end of its board column.
func (s *Service) insertTask(ctx context.Context, projectID int64, title string, params Params) (int64, task.Task, error) {
	t, err := task.New(
		projectID, title, params.String("description"),
		task.Status(params.String("status")), task.Priority(params.String("priority")),
		nil,
	)
	if err != nil {
		return 0, task.Task{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	maxPos, err := s.tasks.MaxPosition(ctx, projectID, t.Status())
	if err != nil {
		return 0, task.Task{}, fmt.Errorf("max position: %w", err)
	}
	t = t.WithPosition(maxPos + 1)
	id, err := s.tasks.Create(ctx, t)
	if err != nil {
		return 0, task.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return id, t, nil
}

func (s *Service) updateTasks(ctx context.Context, action Action, params Params) (Result, error) {
	ids := params.Int64s("taskIds")
	if len(ids) == 0 {
		if id, ok := params.Int64("taskId"); ok {
			ids = []int64{id}
		}
	}
	if len(ids) == 0 {
		return Result{}, domain.NewMissingParam("taskIds")
	}

	changes := task.Changes{}
	if v := params.String("title"); v != "" {
		changes.Title = &v
	}
	if v := params.String("description"); v != "" {
		changes.Description = &v
	}
	if v := task.Status(params.String("status")); v != "" {
		if !v.IsValid() {
			return Result{}, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, v)
		}
		changes.Status = &v
	}
	if v := task.Priority(params.String("priority")); v != "" {
		if !v.IsValid() {
			return Result{}, fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, v)
		}
		changes.Priority = &v
	}
	if id, ok := params.Int64("projectId"); ok && action == ActionMoveTask {
		changes.ProjectID = &id
	}
	if changes.IsEmpty() {
		return Result{}, domain.NewMissingParam("status")
	}

	count, err := s.tasks.UpdateBulk(ctx, ids, changes)
	if err != nil {
		return Result{}, fmt.Errorf("update tasks: %w", err)
	}
	return Result{
		Action:  action,
		Payload: UpdateTasksPayload{Count: count, TaskIDs: ids},
	}, nil
}

func (s *Service) deleteTasks(ctx context.Context, params Params, actorID int64) (Result, error) {
	ids := params.Int64s("taskIds")
	if len(ids) == 0 {
		if id, ok := params.Int64("taskId"); ok {
			ids = []int64{id}
		}
	}
	if len(ids) == 0 {
		return Result{}, domain.NewMissingParam("taskIds")
	}

	count, err := s.tasks.DeleteOwned(ctx, ids, actorID)
	if err != nil {
		return Result{}, fmt.Errorf("delete tasks: %w", err)
	}
	if count == 0 {
		return Result{}, domain.NewNotFound("task", ids[0])
	}
	return Result{
		Action:  ActionDeleteTask,
		Payload: DeleteTasksPayload{Count: count, TaskIDs: ids},
	}, nil
}

func (s *Service) createNotebook(ctx context.Context, params Params, actorID int64) (Result, error) {
	name := params.String("name")
	if name == "" {
		return Result{}, domain.NewMissingParam("name")
	}
	n, err := notebook.New(actorID, name)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	id, err := s.notebooks.Create(ctx, n)
	if err != nil {
		return Result{}, fmt.Errorf("create notebook: %w", err)
	}
	return Result{
		Action:  ActionCreateNotebook,
		Payload: CreateNotebookPayload{NotebookID: id, NotebookName: name},
	}, nil
}

func (s *Service) createPage(ctx context.Context, params Params, actorID int64, rctx Context) (Result, error) {
	notebookID, ok := params.Int64("notebookId")
	if !ok {
		notebookID = rctx.NotebookID
	}
	if notebookID == 0 {
		return Result{}, domain.NewMissingParam("notebookId")
	}
	if _, err := s.notebooks.GetOwned(ctx, notebookID, actorID); err != nil {
		return Result{}, fmt.Errorf("resolve notebook: %w", err)
	}
	title := params.String("title")
	if title == "" {
		return Result{}, domain.NewMissingParam("title")
	}

	content, err := richtext.Marshal(richtext.EmptyDocument())
	if err != nil {
		return Result{}, fmt.Errorf("%w: marshal empty document: %w", domain.ErrPersistence, err)
	}
	p, err := page.New(notebookID, title, content)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	maxPos, err := s.pages.MaxPosition(ctx, notebookID)
	if err != nil {
		return Result{}, fmt.Errorf("max position: %w", err)
	}
	id, err := s.pages.Create(ctx, p.WithPosition(maxPos+1))
	if err != nil {
		return Result{}, fmt.Errorf("create page: %w", err)
	}
	return Result{
		Action:  ActionCreatePage,
		Payload: CreatePagePayload{PageID: id, PageTitle: title, NotebookID: notebookID},
	}, nil
}

func (s *Service) updatePage(ctx context.Context, params Params, actorID int64, rctx Context) (Result, error) {
	pageID, ok := params.Int64("pageId")
	if !ok {
		pageID = rctx.PageID
	}
	if pageID == 0 {
		return Result{}, domain.NewMissingParam("pageId")
	}
	current, err := s.pages.GetOwned(ctx, pageID, actorID)
	if err != nil {
		return Result{}, fmt.Errorf("resolve page: %w", err)
	}

	nodes := richtext.FromMarkdown(params.String("content"), params.Bool("highlight"))
	var doc richtext.Node
	if params.Bool("append") {
		doc = richtext.ParseDocument(current.Content())
		doc.Content = append(doc.Content, nodes...)
	} else {
		doc = richtext.Document(nodes)
	}
	serialized, err := richtext.Marshal(doc)
	if err != nil {
		return Result{}, fmt.Errorf("%w: marshal document: %w", domain.ErrPersistence, err)
	}

	var rename *string
	if v := params.String("title"); v != "" {
		rename = &v
	}
	if err := s.pages.Update(ctx, pageID, rename, serialized); err != nil {
		return Result{}, fmt.Errorf("update page: %w", err)
	}
	return Result{
		Action:  ActionUpdatePage,
		Payload: UpdatePagePayload{PageID: pageID, Updated: true},
	}, nil
}

// resolveProject picks the target project from the parameters or the
// actor's current location and verifies ownership.
func (s *Service) resolveProject(ctx context.Context, params Params, actorID int64, rctx Context) (int64, error) {
	projectID, ok := params.Int64("projectId")
	if !ok {
		projectID = rctx.ProjectID
	}
	if projectID == 0 {
		return 0, domain.NewMissingParam("projectId")
	}
	if _, err := s.projects.GetOwned(ctx, projectID, actorID); err != nil {
		return 0, fmt.Errorf("resolve project: %w", err)
	}
	return projectID, nil
}
