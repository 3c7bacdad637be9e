package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/time/rate"

	"github.com/lox/d2wiki/internal/config"
	"github.com/lox/d2wiki/internal/notion"
)

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()

	opts = append([]Option{WithRateLimit(rate.Inf, 1)}, opts...)
	client, err := NewClient(config.APIConfig{
		BaseURL:       srv.URL,
		NotionVersion: "2022-06-28",
	}, "secret-token", opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClientRequiresToken(t *testing.T) {
	t.Parallel()

	_, err := NewClient(config.APIConfig{}, "")
	if err == nil {
		t.Fatal("expected token error")
	}
}

func TestQueryDatabaseSendsFilter(t *testing.T) {
	t.Parallel()

	var gotMethod string
	var gotPath string
	var gotAuth string
	var gotVersion string
	var gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		gotContentType = r.Header.Get("Content-Type")

		defer func() { _ = r.Body.Close() }()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","results":[{"id":"a"},{"id":"b"}],"has_more":false,"next_cursor":null}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	filter := map[string]any{"filter": map[string]any{"property": "이름", "rich_text": map[string]any{"contains": "High"}}}
	resp, err := client.QueryDatabase(context.Background(), "db-id", filter)
	if err != nil {
		t.Fatalf("query database: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("method mismatch: got %s", gotMethod)
	}
	if gotPath != "/databases/db-id/query" {
		t.Fatalf("path mismatch: got %s", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("auth mismatch: got %s", gotAuth)
	}
	if gotVersion != "2022-06-28" {
		t.Fatalf("notion-version mismatch: got %s", gotVersion)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content-type mismatch: got %s", gotContentType)
	}
	f, _ := gotBody["filter"].(map[string]any)
	if f["property"] != "이름" {
		t.Fatalf("filter mismatch: %v", gotBody)
	}
	if len(resp.Results) != 2 || resp.HasMore || resp.NextCursor != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestListBlockChildrenSendsCursor(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if r.URL.Path != "/blocks/page-id/children" {
			t.Errorf("path mismatch: got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[],"has_more":true,"next_cursor":"next"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	resp, err := client.ListBlockChildren(context.Background(), "page-id", "abc", 0)
	if err != nil {
		t.Fatalf("list children: %v", err)
	}
	if gotQuery != "page_size=100&start_cursor=abc" {
		t.Fatalf("query mismatch: got %s", gotQuery)
	}
	if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor != "next" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRetrieveReturnsAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"object":"error","status":404,"code":"object_not_found","message":"Could not find page"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.RetrievePage(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected API error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "object_not_found" {
		t.Fatalf("unexpected error fields: %+v", apiErr)
	}
	if !IsNotFound(err) {
		t.Fatal("expected IsNotFound")
	}
	if !strings.Contains(err.Error(), "Could not find page") {
		t.Fatalf("expected API message, got: %v", err)
	}
}

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return http.DefaultTransport.RoundTrip(r)
}

func TestWithHTTPClientIsUsed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"object":"user","id":"u1"}`))
	}))
	defer srv.Close()

	transport := &countingTransport{}
	client := newTestClient(t, srv, WithHTTPClient(&http.Client{Transport: transport}))
	if _, err := client.RetrieveUser(context.Background(), "u1"); err != nil {
		t.Fatalf("retrieve user: %v", err)
	}
	if got := transport.calls.Load(); got != 1 {
		t.Fatalf("expected 1 request through the custom client, got %d", got)
	}
}

func TestRetriesTooManyRequests(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":"rate_limited","message":"slow down"}`))
			return
		}
		_, _ = w.Write([]byte(`{"object":"block","id":"b"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	raw, err := client.RetrieveBlock(context.Background(), "b")
	if err != nil {
		t.Fatalf("retrieve block: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
	if !strings.Contains(string(raw), `"id":"b"`) {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestRetriesGiveUpAfterMax(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, WithMaxRetries(1))
	_, err := client.RetrieveUser(context.Background(), "u")

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 error, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestCircuitBreakerOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	for i := 0; i < 5; i++ {
		if _, err := client.RetrieveDatabase(context.Background(), "db"); err == nil {
			t.Fatal("expected error")
		}
	}

	_, err := client.RetrieveDatabase(context.Background(), "db")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 0 {
		t.Fatalf("expected breaker error, got %v", err)
	}
	if calls.Load() != 5 {
		t.Fatalf("breaker should reject without calling server, got %d calls", calls.Load())
	}
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	for i := 0; i < 7; i++ {
		_, _ = client.RetrievePage(context.Background(), "p")
	}
	if calls.Load() != 7 {
		t.Fatalf("expected every request to reach the server, got %d", calls.Load())
	}
}

func TestVerifyTokenSendsGetRequest(t *testing.T) {
	t.Parallel()

	var gotMethod string
	var gotPath string
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"user","id":"user-id","type":"bot","name":"d2wiki"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	user, err := client.VerifyToken(context.Background())
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}

	if gotMethod != http.MethodGet {
		t.Fatalf("method mismatch: got %s", gotMethod)
	}
	if gotPath != "/users/me" {
		t.Fatalf("path mismatch: got %s", gotPath)
	}
	if gotContentType != "" {
		t.Fatalf("content-type should be empty for GET, got %q", gotContentType)
	}
	if user.ID != "user-id" || user.Name != "d2wiki" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestVerifyTokenRequiresUserIDInResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"user"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.VerifyToken(context.Background())
	if err == nil {
		t.Fatal("expected missing user id error")
	}
	if !notion.IsMalformed(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCancelledContextStopsRetry(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := client.RetrievePage(ctx, "p")
		errCh <- err
	}()
	cancel()

	if err := <-errCh; err == nil {
		t.Fatal("expected cancellation error")
	}
}
