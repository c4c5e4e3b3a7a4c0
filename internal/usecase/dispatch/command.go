package dispatch

import (
	"math"
	"strconv"
)

// Action identifies one assistant command variant.
type Action string

// Supported command actions.
const (
	ActionCreateProject       Action = "create_project"
	ActionCreateTask          Action = "create_task"
	ActionCreateMultipleTasks Action = "create_multiple_tasks"
	ActionUpdateTask          Action = "update_task"
	ActionMoveTask            Action = "move_task"
	ActionDeleteTask          Action = "delete_task"
	ActionCreateNotebook      Action = "create_notebook"
	ActionCreatePage          Action = "create_page"
	ActionUpdatePage          Action = "update_page"
	ActionNavigate            Action = "navigate"
	ActionQueryTasks          Action = "query_tasks"
	ActionQueryProjects       Action = "query_projects"

	// ActionNone is the catch-all result action for unrecognized commands.
	ActionNone Action = "none"
)

// Mutates reports whether the action writes to the store. Pass-through
// actions and unknown actions do not.
func (a Action) Mutates() bool {
	switch a {
	case ActionCreateProject, ActionCreateTask, ActionCreateMultipleTasks,
		ActionUpdateTask, ActionMoveTask, ActionDeleteTask,
		ActionCreateNotebook, ActionCreatePage, ActionUpdatePage:
		return true
	}
	return false
}

// Context carries the actor's current UI location. Zero fields mean the
// actor is not viewing an entity of that kind; commands fall back to these
// when the model omits an explicit target id.
type Context struct {
	ProjectID  int64
	NotebookID int64
	PageID     int64
}

// Result is the structured outcome of a dispatched command.
type Result struct {
	Action  Action `json:"action"`
	Payload any    `json:"result"`
}

// Per-action result payloads.
type (
	// CreateProjectPayload reports a created project.
	CreateProjectPayload struct {
		ProjectID   int64  `json:"projectId"`
		ProjectName string `json:"projectName"`
	}

	// CreateTaskPayload reports a created task.
	CreateTaskPayload struct {
		TaskID    int64  `json:"taskId"`
		TaskTitle string `json:"taskTitle"`
		ProjectID int64  `json:"projectId"`
	}

	// CreateTasksPayload reports a bulk task creation.
	CreateTasksPayload struct {
		Count     int                 `json:"count"`
		Tasks     []CreateTaskPayload `json:"tasks"`
		ProjectID int64               `json:"projectId"`
	}

	// UpdateTasksPayload reports a bulk task update.
	UpdateTasksPayload struct {
		Count   int     `json:"count"`
		TaskIDs []int64 `json:"taskIds"`
	}

	// DeleteTasksPayload reports a bulk task deletion.
	DeleteTasksPayload struct {
		Count   int     `json:"count"`
		TaskIDs []int64 `json:"taskIds"`
	}

	// CreateNotebookPayload reports a created notebook.
	CreateNotebookPayload struct {
		NotebookID   int64  `json:"notebookId"`
		NotebookName string `json:"notebookName"`
	}

	// CreatePagePayload reports a created page.
	CreatePagePayload struct {
		PageID     int64  `json:"pageId"`
		PageTitle  string `json:"pageTitle"`
		NotebookID int64  `json:"notebookId"`
	}

	// UpdatePagePayload reports an updated page.
	UpdatePagePayload struct {
		PageID  int64 `json:"pageId"`
		Updated bool  `json:"updated"`
	}

	// NonePayload explains why nothing was executed.
	NonePayload struct {
		Message string `json:"message"`
	}
)

// Params is the action-specific parameter bag parsed out of the model's
// reply. Values follow encoding/json conventions: numbers arrive as
// float64, id lists as []any.
type Params map[string]any

// String returns a string parameter, or "" when absent.
func (p Params) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Bool returns a bool parameter, or false when absent.
func (p Params) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// Int64 returns a numeric parameter. JSON numbers and numeric strings are
// both accepted since models return either.
func (p Params) Int64(key string) (int64, bool) {
	return toInt64(p[key])
}

// Int64s returns a list parameter of ids.
func (p Params) Int64s(key string) []int64 {
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}
	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		if id, ok := toInt64(v); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Maps returns a list parameter of nested objects.
func (p Params) Maps(key string) []Params {
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Params, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out = append(out, Params(m))
		}
	}
	return out
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}
