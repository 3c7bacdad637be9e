// Package notiontest serves canned Notion API responses over httptest for
// packages that talk to Notion through api.Client.
package notiontest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"golang.org/x/time/rate"

	"github.com/lox/d2wiki/internal/api"
	"github.com/lox/d2wiki/internal/config"
)

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	queries  map[string][]any
	children map[string][][]any
	objects  map[string]any
	failures map[string]int
	requests []Request
}

// Request is one request the server received.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		queries:  map[string][]any{},
		children: map[string][][]any{},
		objects:  map[string]any{},
		failures: map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Client returns an unthrottled api.Client pointed at the server.
func (s *Server) Client(t testing.TB) *api.Client {
	t.Helper()

	client, err := api.NewClient(config.APIConfig{BaseURL: s.URL}, "test-token",
		api.WithHTTPClient(s.Server.Client()),
		api.WithRateLimit(rate.Inf, 1),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

// SetQuery sets the rows returned by a database query.
func (s *Server) SetQuery(databaseID string, rows ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries[databaseID] = rows
}

// SetChildren sets the child block pages of a block, one slice per
// response page.
func (s *Server) SetChildren(blockID string, pages ...[]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children[blockID] = pages
}

// SetObject registers a page, block, database or user under path, for
// example "/pages/p1".
func (s *Server) SetObject(path string, obj any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = obj
}

// Fail makes every request whose path starts with prefix answer status.
func (s *Server) Fail(prefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[prefix] = status
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests hit path.
func (s *Server) Count(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	req := Request{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &req.Body)
		}
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	for prefix, status := range s.failures {
		if strings.HasPrefix(r.URL.Path, prefix) {
			s.mu.Unlock()
			writeError(w, status)
			return
		}
	}
	defer s.mu.Unlock()

	path := r.URL.Path
	switch {
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/databases/") && strings.HasSuffix(path, "/query"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/databases/"), "/query")
		rows, ok := s.queries[id]
		if !ok {
			writeError(w, http.StatusNotFound)
			return
		}
		writeList(w, rows, "")
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/blocks/") && strings.HasSuffix(path, "/children"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/blocks/"), "/children")
		pages := s.children[id]
		idx := 0
		if cursor := r.URL.Query().Get("start_cursor"); cursor != "" {
			idx, _ = strconv.Atoi(strings.TrimPrefix(cursor, "cursor-"))
		}
		if idx >= len(pages) {
			writeList(w, []any{}, "")
			return
		}
		next := ""
		if idx+1 < len(pages) {
			next = "cursor-" + strconv.Itoa(idx+1)
		}
		writeList(w, pages[idx], next)
	case r.Method == http.MethodGet:
		obj, ok := s.objects[path]
		if !ok {
			writeError(w, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, obj)
	default:
		writeError(w, http.StatusMethodNotAllowed)
	}
}

func writeList(w http.ResponseWriter, results []any, next string) {
	if results == nil {
		results = []any{}
	}
	body := map[string]any{
		"object":      "list",
		"results":     results,
		"has_more":    next != "",
		"next_cursor": nil,
	}
	if next != "" {
		body["next_cursor"] = next
	}
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, status int) {
	code := "internal_server_error"
	switch status {
	case http.StatusNotFound:
		code = "object_not_found"
	case http.StatusUnauthorized:
		code = "unauthorized"
	case http.StatusBadRequest:
		code = "validation_error"
	}
	writeJSON(w, status, map[string]any{
		"object":  "error",
		"status":  status,
		"code":    code,
		"message": http.StatusText(status),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
