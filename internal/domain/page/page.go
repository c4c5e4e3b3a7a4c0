package page

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Page is a single rich-text page inside a notebook (immutable value object).
// Content holds the serialized document tree as stored.
type Page struct {
	id         int64
	notebookID int64
	title      string
	slug       string
	content    string
	position   int
	updatedAt  time.Time
}

// New validates and creates a Page. Title is required; the slug is derived
// from the title.
func New(notebookID int64, title, content string) (Page, error) {
	if title == "" {
		return Page{}, fmt.Errorf("page title is required")
	}
	return Page{
		notebookID: notebookID,
		title:      title,
		slug:       Slugify(title),
		content:    content,
		updatedAt:  time.Now().UTC(),
	}, nil
}

// Reconstruct creates a Page without validation (storage hydration).
func Reconstruct(id, notebookID int64, title, slug, content string, position int, updatedAt time.Time) Page {
	return Page{
		id: id, notebookID: notebookID, title: title, slug: slug,
		content: content, position: position, updatedAt: updatedAt,
	}
}

// WithPosition returns a copy with the given notebook position set.
func (p *Page) WithPosition(pos int) Page {
	c := *p
	c.position = pos
	return c
}

// ID returns the page identifier.
func (p *Page) ID() int64 { return p.id }

// NotebookID returns the parent notebook's identifier.
func (p *Page) NotebookID() int64 { return p.notebookID }

// Title returns the page title.
func (p *Page) Title() string { return p.title }

// Slug returns the URL slug.
func (p *Page) Slug() string { return p.slug }

// Content returns the serialized document tree.
func (p *Page) Content() string { return p.content }

// Position returns the ordering index within the notebook.
func (p *Page) Position() int { return p.position }

// UpdatedAt returns the last modification time.
func (p *Page) UpdatedAt() time.Time { return p.updatedAt }

// Slugify lowercases a title and collapses every non-alphanumeric run into a
// single hyphen, trimming leading and trailing hyphens.
func Slugify(title string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}
