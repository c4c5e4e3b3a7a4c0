package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tabulahq/tabula/internal/domain"
	domsearch "github.com/tabulahq/tabula/internal/domain/search"
	"github.com/tabulahq/tabula/internal/domain/task"
)

// TaskRepo implements the task store and search source contracts.
type TaskRepo struct {
	db *sql.DB
}

// NewTaskRepo creates a task repository.
func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

type taskRow struct {
	id          int64
	projectID   int64
	title       string
	description string
	status      string
	priority    string
	position    int
	dueDate     sql.NullTime
	updatedAt   time.Time
}

func (r taskRow) toDomain() task.Task {
	var due *time.Time
	if r.dueDate.Valid {
		d := r.dueDate.Time
		due = &d
	}
	return task.Reconstruct(
		r.id, r.projectID, r.title, r.description,
		task.Status(r.status), task.Priority(r.priority), r.position,
		due, r.updatedAt,
	)
}

// Create inserts a task row and returns its id.
func (r *TaskRepo) Create(ctx context.Context, t task.Task) (int64, error) {
	var due any
	if t.DueDate() != nil {
		due = *t.DueDate()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (project_id, title, description, status, priority, position, due_date, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ProjectID(), t.Title(), t.Description(), string(t.Status()), string(t.Priority()),
		t.Position(), due, t.UpdatedAt(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w: %w", domain.ErrPersistence, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task insert id: %w: %w", domain.ErrPersistence, err)
	}
	return id, nil
}

// MaxPosition returns the highest position in a board column, 0 when empty.
// Callers read this and insert separately; nothing serializes the two, so
// concurrent inserts into the same column can take the same position.
func (r *TaskRepo) MaxPosition(ctx context.Context, projectID int64, status task.Status) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(position) FROM tasks WHERE project_id = ? AND status = ?`,
		projectID, string(status),
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max task position: %w: %w", domain.ErrPersistence, err)
	}
	return int(max.Int64), nil
}

// UpdateBulk applies the non-nil changes to every task in ids and returns
// the number of rows touched. Ownership is the caller's trust boundary.
func (r *TaskRepo) UpdateBulk(ctx context.Context, ids []int64, changes task.Changes) (int, error) {
	if len(ids) == 0 || changes.IsEmpty() {
		return 0, nil
	}
	var sets []string
	var args []any
	if changes.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *changes.Title)
	}
	if changes.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *changes.Description)
	}
	if changes.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*changes.Status))
	}
	if changes.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*changes.Priority))
	}
	if changes.ProjectID != nil {
		sets = append(sets, "project_id = ?")
		args = append(args, *changes.ProjectID)
	}
	if changes.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, *changes.DueDate)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC())

	q := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id IN (` + placeholders(len(ids)) + `)`
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("update tasks: %w: %w", domain.ErrPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update tasks affected: %w: %w", domain.ErrPersistence, err)
	}
	return int(n), nil
}

// DeleteOwned deletes only those of ids whose project belongs to ownerID
// and returns how many rows went away.
func (r *TaskRepo) DeleteOwned(ctx context.Context, ids []int64, ownerID int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := []any{ownerID}
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE project_id IN (SELECT id FROM projects WHERE owner_id = ?)
		 AND id IN (`+placeholders(len(ids))+`)`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("delete tasks: %w: %w", domain.ErrPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete tasks affected: %w: %w", domain.ErrPersistence, err)
	}
	return int(n), nil
}

// ForOwner lists every task whose project belongs to ownerID, joined with
// the project name, optionally bounded by modification time.
func (r *TaskRepo) ForOwner(ctx context.Context, ownerID int64, rng domsearch.TimeRange) ([]domsearch.TaskItem, error) {
	q := `SELECT t.id, t.project_id, t.title, t.description, t.status, t.priority, t.position, t.due_date, t.updated_at, p.name
		 FROM tasks t JOIN projects p ON p.id = t.project_id
		 WHERE p.owner_id = ?`
	args := []any{ownerID}
	q, args = appendTimeRange(q, args, "t.updated_at", rng)
	q += ` ORDER BY t.id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w: %w", domain.ErrPersistence, err)
	}
	defer rows.Close()

	var out []domsearch.TaskItem
	for rows.Next() {
		var row taskRow
		var projectName string
		if err := rows.Scan(
			&row.id, &row.projectID, &row.title, &row.description,
			&row.status, &row.priority, &row.position, &row.dueDate, &row.updatedAt,
			&projectName,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w: %w", domain.ErrPersistence, err)
		}
		out = append(out, domsearch.TaskItem{Task: row.toDomain(), ProjectName: projectName})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w: %w", domain.ErrPersistence, err)
	}
	return out, nil
}

// placeholders renders n comma-separated SQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
