package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tabulahq/tabula/internal/domain"
	"github.com/tabulahq/tabula/internal/domain/notebook"
)

// NotebookRepo implements the notebook store contract.
type NotebookRepo struct {
	db *sql.DB
}

// NewNotebookRepo creates a notebook repository.
func NewNotebookRepo(db *sql.DB) *NotebookRepo {
	return &NotebookRepo{db: db}
}

// Create inserts a notebook row and returns its id.
func (r *NotebookRepo) Create(ctx context.Context, n notebook.Notebook) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notebooks (owner_id, name, updated_at) VALUES (?, ?, ?)`,
		n.OwnerID(), n.Name(), n.UpdatedAt(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert notebook: %w: %w", domain.ErrPersistence, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("notebook insert id: %w: %w", domain.ErrPersistence, err)
	}
	return id, nil
}

// GetOwned resolves a notebook only if ownerID owns it.
func (r *NotebookRepo) GetOwned(ctx context.Context, id, ownerID int64) (notebook.Notebook, error) {
	var (
		nid, oid  int64
		name      string
		updatedAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, updated_at FROM notebooks WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	).Scan(&nid, &oid, &name, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return notebook.Notebook{}, domain.NewNotFound("notebook", id)
	}
	if err != nil {
		return notebook.Notebook{}, fmt.Errorf("get notebook %d: %w: %w", id, domain.ErrPersistence, err)
	}
	return notebook.Reconstruct(nid, oid, name, updatedAt), nil
}
