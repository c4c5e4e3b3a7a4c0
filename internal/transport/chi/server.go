// Package chi exposes the assistant core over a thin HTTP harness. Session
// auth, rate limiting, and the rest of the app's routing live in the API
// gateway; this server trusts the actor id the gateway forwards.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tabulahq/tabula/internal/domain"
	"github.com/tabulahq/tabula/internal/domain/search/result"
	"github.com/tabulahq/tabula/internal/logger"
	"github.com/tabulahq/tabula/internal/metrics"
	"github.com/tabulahq/tabula/internal/usecase/assistant"
	"github.com/tabulahq/tabula/internal/usecase/dispatch"
	searchuc "github.com/tabulahq/tabula/internal/usecase/search"
)

// actorHeader carries the authenticated user id forwarded by the gateway.
const actorHeader = "X-Actor-ID"

// Assistant runs one conversational turn.
type Assistant interface {
	Respond(ctx context.Context, actorID int64, message string, rctx dispatch.Context) (assistant.Reply, error)
}

// Searcher finds workspace content relevant to a query.
type Searcher interface {
	Search(ctx context.Context, actorID int64, query string, opts searchuc.Options) ([]result.Result, error)
}

// Commander executes a structured command.
type Commander interface {
	Dispatch(ctx context.Context, action dispatch.Action, params dispatch.Params, actorID int64, rctx dispatch.Context) (dispatch.Result, error)
}

// Server is the HTTP harness around the assistant usecases.
type Server struct {
	assistant Assistant
	search    Searcher
	commands  Commander
	logger    *zap.Logger
}

// NewServer creates the HTTP harness.
func NewServer(a Assistant, s Searcher, c Commander, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{assistant: a, search: s, commands: c, logger: logger}
}

// Handler assembles the router with logging and metrics middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/assistant/message", s.handleAssistantMessage)
		r.Get("/search", s.handleSearch)
		r.Post("/commands", s.handleCommand)
	})
	return r
}

type assistantRequest struct {
	Message    string `json:"message"`
	ProjectID  int64  `json:"projectId,omitempty"`
	NotebookID int64  `json:"notebookId,omitempty"`
	PageID     int64  `json:"pageId,omitempty"`
}

func (s *Server) handleAssistantMessage(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.actor(w, r)
	if !ok {
		return
	}
	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := s.assistant.Respond(r.Context(), actorID, req.Message, dispatch.Context{
		ProjectID:  req.ProjectID,
		NotebookID: req.NotebookID,
		PageID:     req.PageID,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

type searchResponseItem struct {
	Kind       string `json:"kind"`
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Snippet    string `json:"snippet"`
	Score      int    `json:"score"`
	Collection string `json:"collection"`
	Status     string `json:"status,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.actor(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	opts := searchuc.Options{}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}
	if v := r.URL.Query().Get("include_archived"); v == "true" {
		opts.IncludeArchived = true
	}
	if v := r.URL.Query().Get("updated_after"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			opts.Range.After = ts
		}
	}
	if v := r.URL.Query().Get("updated_before"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			opts.Range.Before = ts
		}
	}

	results, err := s.search.Search(r.Context(), actorID, query, opts)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	items := make([]searchResponseItem, 0, len(results))
	for i := range results {
		res := &results[i]
		items = append(items, searchResponseItem{
			Kind:       string(res.Kind()),
			ID:         res.ID(),
			Title:      res.Title(),
			Snippet:    res.Snippet(),
			Score:      res.Score(),
			Collection: res.Collection(),
			Status:     res.Status(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

type commandRequest struct {
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters"`
	ProjectID  int64          `json:"projectId,omitempty"`
	NotebookID int64          `json:"notebookId,omitempty"`
	PageID     int64          `json:"pageId,omitempty"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.actor(w, r)
	if !ok {
		return
	}
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Action == "" {
		writeError(w, http.StatusBadRequest, "action is required")
		return
	}

	res, err := s.commands.Dispatch(
		r.Context(), dispatch.Action(req.Action), req.Parameters, actorID,
		dispatch.Context{ProjectID: req.ProjectID, NotebookID: req.NotebookID, PageID: req.PageID},
	)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger stores a request-scoped logger carrying the request id so
// handlers and error paths log with correlation.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := s.logger
		if reqID := chiMiddleware.GetReqID(r.Context()); reqID != "" {
			l = l.With(zap.String("request_id", reqID))
		}
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), l)))
	})
}

// actor parses the forwarded actor id, rejecting requests without one.
func (s *Server) actor(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.Header.Get(actorHeader)
	if raw == "" {
		writeError(w, http.StatusUnauthorized, actorHeader+" header is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+actorHeader+" header")
		return 0, false
	}
	return id, true
}

// writeDomainError maps domain sentinels onto HTTP statuses.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrParse):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		logger.FromContext(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
