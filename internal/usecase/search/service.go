// Package search scans an actor's projects, tasks, and notebook pages for
// content relevant to a free-text query and returns ranked, snippeted hits.
package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tabulahq/tabula/internal/domain/richtext"
	domsearch "github.com/tabulahq/tabula/internal/domain/search"
	"github.com/tabulahq/tabula/internal/domain/search/keyword"
	"github.com/tabulahq/tabula/internal/domain/search/relevance"
	"github.com/tabulahq/tabula/internal/domain/search/result"
	"github.com/tabulahq/tabula/internal/domain/search/snippet"
	"github.com/tabulahq/tabula/internal/metrics"
)

// DefaultLimit is the result cap used when callers pass none.
const DefaultLimit = 10

// Options tune a single search call.
type Options struct {
	Limit           int
	IncludeArchived bool
	Range           domsearch.TimeRange
	SnippetLength   int
}

// Service is the content search orchestrator.
type Service struct {
	projects     ProjectSource
	tasks        TaskSource
	pages        PageSource
	logger       *zap.Logger
	defaultLimit int
	snippetLen   int
}

// New creates a search service.
func New(projects ProjectSource, tasks TaskSource, pages PageSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		projects: projects, tasks: tasks, pages: pages, logger: logger,
		defaultLimit: DefaultLimit, snippetLen: snippet.DefaultMaxLength,
	}
}

// WithDefaults overrides the configured result limit and snippet length
// used when a call leaves them unset.
func (s *Service) WithDefaults(limit, snippetLen int) *Service {
	if limit > 0 {
		s.defaultLimit = limit
	}
	if snippetLen > 0 {
		s.snippetLen = snippetLen
	}
	return s
}

// Search extracts keywords from the query and fans out three owner-scoped
// scans in parallel, one per entity kind. Items scoring zero are dropped;
// the rest are merged, sorted by descending relevance (stable, so ties keep
// per-kind enumeration order), and truncated to the limit. A query with no
// usable keywords returns an empty list, not an error.
func (s *Service) Search(ctx context.Context, actorID int64, query string, opts Options) ([]result.Result, error) {
	keywords := keyword.Extract(query)
	if len(keywords) == 0 {
		return []result.Result{}, nil
	}
	if opts.Limit <= 0 {
		opts.Limit = s.defaultLimit
	}
	if opts.SnippetLength <= 0 {
		opts.SnippetLength = s.snippetLen
	}

	start := time.Now()

	var projHits, taskHits, pageHits []result.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projHits, err = s.scanProjects(gctx, actorID, keywords, opts)
		return err
	})
	g.Go(func() error {
		var err error
		taskHits, err = s.scanTasks(gctx, actorID, keywords, opts)
		return err
	})
	g.Go(func() error {
		var err error
		pageHits, err = s.scanPages(gctx, actorID, keywords, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	merged := make([]result.Result, 0, len(projHits)+len(taskHits)+len(pageHits))
	merged = append(merged, projHits...)
	merged = append(merged, taskHits...)
	merged = append(merged, pageHits...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score() > merged[j].Score()
	})
	if len(merged) > opts.Limit {
		merged = merged[:opts.Limit]
	}

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	s.logger.Debug("content search",
		zap.Int64("actor_id", actorID),
		zap.Int("keywords", len(keywords)),
		zap.Int("results", len(merged)),
	)
	return merged, nil
}

func (s *Service) scanProjects(ctx context.Context, actorID int64, keywords []string, opts Options) ([]result.Result, error) {
	projects, err := s.projects.OwnedBy(ctx, actorID, opts.IncludeArchived, opts.Range)
	if err != nil {
		return nil, fmt.Errorf("scan projects: %w", err)
	}
	var hits []result.Result
	for i := range projects {
		p := &projects[i]
		score := scoreItem(p.Name(), p.Description(), keywords)
		if score == 0 {
			continue
		}
		hits = append(hits, result.New(
			result.KindProject, p.ID(), p.Name(),
			snippet.Extract(p.Description(), keywords, opts.SnippetLength),
			p.Description(), score, p.Name(), "", p.UpdatedAt(),
		))
	}
	return hits, nil
}

func (s *Service) scanTasks(ctx context.Context, actorID int64, keywords []string, opts Options) ([]result.Result, error) {
	items, err := s.tasks.ForOwner(ctx, actorID, opts.Range)
	if err != nil {
		return nil, fmt.Errorf("scan tasks: %w", err)
	}
	var hits []result.Result
	for i := range items {
		t := &items[i].Task
		score := scoreItem(t.Title(), t.Description(), keywords)
		if score == 0 {
			continue
		}
		hits = append(hits, result.New(
			result.KindTask, t.ID(), t.Title(),
			snippet.Extract(t.Description(), keywords, opts.SnippetLength),
			t.Description(), score, items[i].ProjectName, string(t.Status()), t.UpdatedAt(),
		))
	}
	return hits, nil
}

func (s *Service) scanPages(ctx context.Context, actorID int64, keywords []string, opts Options) ([]result.Result, error) {
	items, err := s.pages.ForOwner(ctx, actorID, opts.Range)
	if err != nil {
		return nil, fmt.Errorf("scan pages: %w", err)
	}
	var hits []result.Result
	for i := range items {
		p := &items[i].Page
		body := richtext.FlattenContent(p.Content())
		score := scoreItem(p.Title(), body, keywords)
		if score == 0 {
			continue
		}
		hits = append(hits, result.New(
			result.KindPage, p.ID(), p.Title(),
			snippet.Extract(body, keywords, opts.SnippetLength),
			body, score, items[i].NotebookName, "", p.UpdatedAt(),
		))
	}
	return hits, nil
}

// scoreItem combines body and title relevance, weighting title hits double.
func scoreItem(title, body string, keywords []string) int {
	return relevance.Combine(relevance.Score(body, keywords), relevance.Score(title, keywords))
}
