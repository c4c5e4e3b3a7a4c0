package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tabulahq/tabula/internal/domain"
	"github.com/tabulahq/tabula/internal/domain/page"
	domsearch "github.com/tabulahq/tabula/internal/domain/search"
)

// PageRepo implements the page store and search source contracts.
type PageRepo struct {
	db *sql.DB
}

// NewPageRepo creates a page repository.
func NewPageRepo(db *sql.DB) *PageRepo {
	return &PageRepo{db: db}
}

type pageRow struct {
	id         int64
	notebookID int64
	title      string
	slug       string
	content    string
	position   int
	updatedAt  time.Time
}

func (r pageRow) toDomain() page.Page {
	return page.Reconstruct(r.id, r.notebookID, r.title, r.slug, r.content, r.position, r.updatedAt)
}

// Create inserts a page row and returns its id.
func (r *PageRepo) Create(ctx context.Context, p page.Page) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notebook_pages (notebook_id, title, slug, content, position, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.NotebookID(), p.Title(), p.Slug(), p.Content(), p.Position(), p.UpdatedAt(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert page: %w: %w", domain.ErrPersistence, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("page insert id: %w: %w", domain.ErrPersistence, err)
	}
	return id, nil
}

// GetOwned resolves a page only if its notebook belongs to ownerID.
func (r *PageRepo) GetOwned(ctx context.Context, id, ownerID int64) (page.Page, error) {
	var row pageRow
	err := r.db.QueryRowContext(ctx,
		`SELECT pg.id, pg.notebook_id, pg.title, pg.slug, pg.content, pg.position, pg.updated_at
		 FROM notebook_pages pg JOIN notebooks nb ON nb.id = pg.notebook_id
		 WHERE pg.id = ? AND nb.owner_id = ?`,
		id, ownerID,
	).Scan(&row.id, &row.notebookID, &row.title, &row.slug, &row.content, &row.position, &row.updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return page.Page{}, domain.NewNotFound("page", id)
	}
	if err != nil {
		return page.Page{}, fmt.Errorf("get page %d: %w: %w", id, domain.ErrPersistence, err)
	}
	return row.toDomain(), nil
}

// MaxPosition returns the highest page position in a notebook, 0 when empty.
func (r *PageRepo) MaxPosition(ctx context.Context, notebookID int64) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(position) FROM notebook_pages WHERE notebook_id = ?`,
		notebookID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max page position: %w: %w", domain.ErrPersistence, err)
	}
	return int(max.Int64), nil
}

// Update rewrites a page's content and, when title is non-nil, renames it
// (refreshing the slug to match).
func (r *PageRepo) Update(ctx context.Context, id int64, title *string, content string) error {
	var (
		res sql.Result
		err error
	)
	if title != nil {
		res, err = r.db.ExecContext(ctx,
			`UPDATE notebook_pages SET title = ?, slug = ?, content = ?, updated_at = ? WHERE id = ?`,
			*title, page.Slugify(*title), content, time.Now().UTC(), id,
		)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE notebook_pages SET content = ?, updated_at = ? WHERE id = ?`,
			content, time.Now().UTC(), id,
		)
	}
	if err != nil {
		return fmt.Errorf("update page %d: %w: %w", id, domain.ErrPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update page affected: %w: %w", domain.ErrPersistence, err)
	}
	if n == 0 {
		return domain.NewNotFound("page", id)
	}
	return nil
}

// ForOwner lists every page whose notebook belongs to ownerID, joined with
// the notebook name, optionally bounded by modification time.
func (r *PageRepo) ForOwner(ctx context.Context, ownerID int64, rng domsearch.TimeRange) ([]domsearch.PageItem, error) {
	q := `SELECT pg.id, pg.notebook_id, pg.title, pg.slug, pg.content, pg.position, pg.updated_at, nb.name
		 FROM notebook_pages pg JOIN notebooks nb ON nb.id = pg.notebook_id
		 WHERE nb.owner_id = ?`
	args := []any{ownerID}
	q, args = appendTimeRange(q, args, "pg.updated_at", rng)
	q += ` ORDER BY pg.id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w: %w", domain.ErrPersistence, err)
	}
	defer rows.Close()

	var out []domsearch.PageItem
	for rows.Next() {
		var row pageRow
		var notebookName string
		if err := rows.Scan(
			&row.id, &row.notebookID, &row.title, &row.slug, &row.content, &row.position, &row.updatedAt,
			&notebookName,
		); err != nil {
			return nil, fmt.Errorf("scan page: %w: %w", domain.ErrPersistence, err)
		}
		out = append(out, domsearch.PageItem{Page: row.toDomain(), NotebookName: notebookName})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w: %w", domain.ErrPersistence, err)
	}
	return out, nil
}
