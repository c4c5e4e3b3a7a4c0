package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tabulahq/tabula/internal/domain"
)

// UserRepo provides the minimal user operations the assistant core needs.
// Account lifecycle lives in the auth service, not here.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a user repository.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user row and returns its id.
func (r *UserRepo) Create(ctx context.Context, email, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, name) VALUES (?, ?)`, email, name,
	)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w: %w", domain.ErrPersistence, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user insert id: %w: %w", domain.ErrPersistence, err)
	}
	return id, nil
}

// Exists reports whether a user id is known.
func (r *UserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user %d: %w: %w", id, domain.ErrPersistence, err)
	}
	return true, nil
}
