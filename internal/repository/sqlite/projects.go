package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tabulahq/tabula/internal/domain"
	"github.com/tabulahq/tabula/internal/domain/project"
	domsearch "github.com/tabulahq/tabula/internal/domain/search"
)

// ProjectRepo implements the project store and search source contracts.
type ProjectRepo struct {
	db *sql.DB
}

// NewProjectRepo creates a project repository.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// projectRow is the scan target for project queries.
type projectRow struct {
	id          int64
	ownerID     int64
	name        string
	description string
	archived    bool
	updatedAt   time.Time
}

func (r projectRow) toDomain() project.Project {
	return project.Reconstruct(r.id, r.ownerID, r.name, r.description, r.archived, r.updatedAt)
}

// Create inserts a project row and returns its id.
func (r *ProjectRepo) Create(ctx context.Context, p project.Project) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (owner_id, name, description, archived, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.OwnerID(), p.Name(), p.Description(), p.Archived(), p.UpdatedAt(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w: %w", domain.ErrPersistence, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("project insert id: %w: %w", domain.ErrPersistence, err)
	}
	return id, nil
}

// GetOwned resolves a project only if ownerID owns it.
func (r *ProjectRepo) GetOwned(ctx context.Context, id, ownerID int64) (project.Project, error) {
	var row projectRow
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, description, archived, updated_at
		 FROM projects WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	).Scan(&row.id, &row.ownerID, &row.name, &row.description, &row.archived, &row.updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return project.Project{}, domain.NewNotFound("project", id)
	}
	if err != nil {
		return project.Project{}, fmt.Errorf("get project %d: %w: %w", id, domain.ErrPersistence, err)
	}
	return row.toDomain(), nil
}

// OwnedBy lists an owner's projects, optionally filtered by modification
// time and excluding archived boards by default.
func (r *ProjectRepo) OwnedBy(ctx context.Context, ownerID int64, includeArchived bool, rng domsearch.TimeRange) ([]project.Project, error) {
	q := `SELECT id, owner_id, name, description, archived, updated_at FROM projects WHERE owner_id = ?`
	args := []any{ownerID}
	if !includeArchived {
		q += ` AND archived = 0`
	}
	q, args = appendTimeRange(q, args, "updated_at", rng)
	q += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w: %w", domain.ErrPersistence, err)
	}
	defer rows.Close()

	var out []project.Project
	for rows.Next() {
		var row projectRow
		if err := rows.Scan(&row.id, &row.ownerID, &row.name, &row.description, &row.archived, &row.updatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w: %w", domain.ErrPersistence, err)
		}
		out = append(out, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w: %w", domain.ErrPersistence, err)
	}
	return out, nil
}

// appendTimeRange adds updated-at bounds to a query.
func appendTimeRange(q string, args []any, column string, rng domsearch.TimeRange) (string, []any) {
	if !rng.After.IsZero() {
		q += ` AND ` + column + ` >= ?`
		args = append(args, rng.After)
	}
	if !rng.Before.IsZero() {
		q += ` AND ` + column + ` <= ?`
		args = append(args, rng.Before)
	}
	return q, args
}
