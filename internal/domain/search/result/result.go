package result

import "time"

// Kind discriminates which entity a search hit came from.
type Kind string

// Searchable entity kinds.
const (
	KindProject Kind = "project"
	KindTask    Kind = "task"
	KindPage    Kind = "page"
)

// Result is a single ranked content search hit.
type Result struct {
	kind        Kind
	id          int64
	title       string
	snippet     string
	fullContent string
	score       int
	collection  string
	status      string
	updatedAt   time.Time
}

// New creates a search result. collection names the owning project or
// notebook; status is only meaningful for tasks.
func New(
	kind Kind, id int64, title, snippet, fullContent string,
	score int, collection, status string, updatedAt time.Time,
) Result {
	return Result{
		kind: kind, id: id, title: title, snippet: snippet,
		fullContent: fullContent, score: score,
		collection: collection, status: status, updatedAt: updatedAt,
	}
}

// Kind returns the entity kind.
func (r *Result) Kind() Kind { return r.kind }

// ID returns the entity identifier.
func (r *Result) ID() int64 { return r.id }

// Title returns the entity title.
func (r *Result) Title() string { return r.title }

// Snippet returns the bounded content preview.
func (r *Result) Snippet() string { return r.snippet }

// FullContent returns the complete flattened content.
func (r *Result) FullContent() string { return r.fullContent }

// Score returns the relevance score.
func (r *Result) Score() int { return r.score }

// Collection returns the owning project or notebook name.
func (r *Result) Collection() string { return r.collection }

// Status returns the task status, or "" for other kinds.
func (r *Result) Status() string { return r.status }

// UpdatedAt returns the entity's last modification time.
func (r *Result) UpdatedAt() time.Time { return r.updatedAt }
