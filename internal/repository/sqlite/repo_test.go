package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tabulahq/tabula/internal/domain"
	"github.com/tabulahq/tabula/internal/domain/notebook"
	"github.com/tabulahq/tabula/internal/domain/page"
	"github.com/tabulahq/tabula/internal/domain/project"
	domsearch "github.com/tabulahq/tabula/internal/domain/search"
	"github.com/tabulahq/tabula/internal/domain/task"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	id, err := NewUserRepo(db).Create(context.Background(), email, "tester")
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func newProject(t *testing.T, db *sql.DB, ownerID int64, name string) int64 {
	t.Helper()
	p, err := project.New(ownerID, name, "")
	if err != nil {
		t.Fatal(err)
	}
	id, err := NewProjectRepo(db).Create(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func newTask(t *testing.T, db *sql.DB, projectID int64, title string, status task.Status) int64 {
	t.Helper()
	tk, err := task.New(projectID, title, "", status, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	id, err := NewTaskRepo(db).Create(context.Background(), tk)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestProjectRepo_GetOwned(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "a@example.com")
	other := newUser(t, db, "b@example.com")
	id := newProject(t, db, owner, "Launch")

	got, err := NewProjectRepo(db).GetOwned(ctx, id, owner)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name() != "Launch" || got.OwnerID() != owner {
		t.Errorf("got %+v", got)
	}

	if _, err := NewProjectRepo(db).GetOwned(ctx, id, other); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign owner should see not-found, got %v", err)
	}
}

func TestProjectRepo_OwnedByExcludesArchived(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "a@example.com")
	newProject(t, db, owner, "Active")
	archived := project.Reconstruct(0, owner, "Old", "", true, time.Now().UTC())
	if _, err := NewProjectRepo(db).Create(ctx, archived); err != nil {
		t.Fatal(err)
	}

	repo := NewProjectRepo(db)
	got, err := repo.OwnedBy(ctx, owner, false, domsearch.TimeRange{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name() != "Active" {
		t.Errorf("got %d projects", len(got))
	}

	all, err := repo.OwnedBy(ctx, owner, true, domsearch.TimeRange{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("got %d projects with archived included", len(all))
	}
}

func TestTaskRepo_MaxPosition(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "a@example.com")
	pid := newProject(t, db, owner, "Board")
	repo := NewTaskRepo(db)

	pos, err := repo.MaxPosition(ctx, pid, task.StatusTodo)
	if err != nil {
		t.Fatal(err)
	}
	if pos != 0 {
		t.Errorf("empty column max = %d", pos)
	}

	tk, _ := task.New(pid, "one", "", task.StatusTodo, "", nil)
	if _, err := repo.Create(ctx, tk.WithPosition(3)); err != nil {
		t.Fatal(err)
	}
	pos, err = repo.MaxPosition(ctx, pid, task.StatusTodo)
	if err != nil {
		t.Fatal(err)
	}
	if pos != 3 {
		t.Errorf("max = %d", pos)
	}

	// Other columns are independent.
	pos, err = repo.MaxPosition(ctx, pid, task.StatusDone)
	if err != nil {
		t.Fatal(err)
	}
	if pos != 0 {
		t.Errorf("done column max = %d", pos)
	}
}

func TestTaskRepo_UpdateBulk(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "a@example.com")
	pid := newProject(t, db, owner, "Board")
	id1 := newTask(t, db, pid, "one", task.StatusTodo)
	id2 := newTask(t, db, pid, "two", task.StatusTodo)

	status := task.StatusDone
	n, err := NewTaskRepo(db).UpdateBulk(ctx, []int64{id1, id2, 999}, task.Changes{Status: &status})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("updated %d rows", n)
	}

	items, err := NewTaskRepo(db).ForOwner(ctx, owner, domsearch.TimeRange{})
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range items {
		if it.Task.Status() != task.StatusDone {
			t.Errorf("task %d status = %q", it.Task.ID(), it.Task.Status())
		}
	}
}

func TestTaskRepo_DeleteOwnedIgnoresForeignTasks(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "a@example.com")
	other := newUser(t, db, "b@example.com")
	mine := newProject(t, db, owner, "Mine")
	theirs := newProject(t, db, other, "Theirs")
	myTask := newTask(t, db, mine, "mine", task.StatusTodo)
	theirTask := newTask(t, db, theirs, "theirs", task.StatusTodo)

	n, err := NewTaskRepo(db).DeleteOwned(ctx, []int64{myTask, theirTask}, owner)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("deleted %d rows, want only the owned one", n)
	}

	remaining, err := NewTaskRepo(db).ForOwner(ctx, other, domsearch.TimeRange{})
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 || remaining[0].Task.ID() != theirTask {
		t.Errorf("foreign task should survive: %+v", remaining)
	}
}

func TestTaskRepo_ForOwnerJoinsProjectName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "a@example.com")
	pid := newProject(t, db, owner, "Ops")
	newTask(t, db, pid, "rotate certs", task.StatusTodo)

	items, err := NewTaskRepo(db).ForOwner(ctx, owner, domsearch.TimeRange{})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ProjectName != "Ops" {
		t.Errorf("items = %+v", items)
	}
}

func TestNotebookRepo_GetOwned(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "a@example.com")
	nb, err := notebook.New(owner, "Journal")
	if err != nil {
		t.Fatal(err)
	}
	id, err := NewNotebookRepo(db).Create(ctx, nb)
	if err != nil {
		t.Fatal(err)
	}

	got, err := NewNotebookRepo(db).GetOwned(ctx, id, owner)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name() != "Journal" {
		t.Errorf("name = %q", got.Name())
	}
	if _, err := NewNotebookRepo(db).GetOwned(ctx, id, owner+1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestPageRepo_UpdateRenameRefreshesSlug(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "a@example.com")
	nb, _ := notebook.New(owner, "Journal")
	nbID, err := NewNotebookRepo(db).Create(ctx, nb)
	if err != nil {
		t.Fatal(err)
	}
	p, _ := page.New(nbID, "First Draft", "body")
	repo := NewPageRepo(db)
	id, err := repo.Create(ctx, p)
	if err != nil {
		t.Fatal(err)
	}

	title := "Final Version!"
	if err := repo.Update(ctx, id, &title, "new body"); err != nil {
		t.Fatal(err)
	}
	got, err := repo.GetOwned(ctx, id, owner)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title() != "Final Version!" || got.Slug() != "final-version" {
		t.Errorf("title=%q slug=%q", got.Title(), got.Slug())
	}
	if got.Content() != "new body" {
		t.Errorf("content = %q", got.Content())
	}
}

func TestPageRepo_UpdateMissingPage(t *testing.T) {
	db := openTestDB(t)
	err := NewPageRepo(db).Update(context.Background(), 404, nil, "x")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestPageRepo_ForOwnerJoinsNotebookName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "a@example.com")
	nb, _ := notebook.New(owner, "Journal")
	nbID, err := NewNotebookRepo(db).Create(ctx, nb)
	if err != nil {
		t.Fatal(err)
	}
	p, _ := page.New(nbID, "Entry", "hello")
	if _, err := NewPageRepo(db).Create(ctx, p); err != nil {
		t.Fatal(err)
	}

	items, err := NewPageRepo(db).ForOwner(ctx, owner, domsearch.TimeRange{})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].NotebookName != "Journal" {
		t.Errorf("items = %+v", items)
	}
}

func TestUserRepo_Exists(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	id := newUser(t, db, "a@example.com")

	ok, err := NewUserRepo(db).Exists(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("created user should exist")
	}
	ok, err = NewUserRepo(db).Exists(ctx, id+100)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unknown id should not exist")
	}
}
