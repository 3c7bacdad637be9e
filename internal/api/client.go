package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lox/d2wiki/internal/config"
	"github.com/lox/d2wiki/internal/notion"
)

const (
	defaultBaseURL      = "https://api.notion.com/v1"
	defaultNotionAPIRev = "2022-06-28"

	// Notion documents an average of three requests per second.
	defaultRateLimit  = rate.Limit(3)
	defaultBurst      = 3
	defaultMaxRetries = 2
	defaultRetryAfter = time.Second

	DefaultPageSize = 100
)

type Client struct {
	httpClient    *http.Client
	baseURL       string
	notionVersion string
	token         string

	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(limit, burst) }
}

func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// ListResponse is one page of a paginated Notion list endpoint.
type ListResponse struct {
	Results    []json.RawMessage `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor *string           `json:"next_cursor"`
}

func NewClient(cfg config.APIConfig, token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("official API token is required")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	notionVersion := strings.TrimSpace(cfg.NotionVersion)
	if notionVersion == "" {
		notionVersion = defaultNotionAPIRev
	}

	c := &Client{
		httpClient:    &http.Client{Timeout: 20 * time.Second},
		baseURL:       baseURL,
		notionVersion: notionVersion,
		token:         token,
		limiter:       rate.NewLimiter(defaultRateLimit, defaultBurst),
		maxRetries:    defaultMaxRetries,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notion",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: isBreakerSuccess,
	})
	return c, nil
}

// QueryDatabase returns one page of rows matching body.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, body map[string]any) (*ListResponse, error) {
	databaseID = strings.TrimSpace(databaseID)
	if databaseID == "" {
		return nil, fmt.Errorf("database ID is required")
	}
	if body == nil {
		body = map[string]any{}
	}

	var out ListResponse
	if err := c.doJSON(ctx, http.MethodPost, "/databases/"+url.PathEscape(databaseID)+"/query", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RetrievePage(ctx context.Context, pageID string) (json.RawMessage, error) {
	return c.retrieve(ctx, "/pages/", "page", pageID)
}

func (c *Client) RetrieveBlock(ctx context.Context, blockID string) (json.RawMessage, error) {
	return c.retrieve(ctx, "/blocks/", "block", blockID)
}

func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (json.RawMessage, error) {
	return c.retrieve(ctx, "/databases/", "database", databaseID)
}

func (c *Client) RetrieveUser(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.retrieve(ctx, "/users/", "user", userID)
}

// VerifyToken fetches the bot user the token belongs to.
func (c *Client) VerifyToken(ctx context.Context) (notion.User, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return notion.User{}, err
	}
	user, err := notion.DecodeUser(out)
	if err != nil {
		return notion.User{}, fmt.Errorf("verify token: %w", err)
	}
	return user, nil
}

// ListBlockChildren returns one page of child blocks. An empty cursor starts
// from the beginning.
func (c *Client) ListBlockChildren(ctx context.Context, blockID, cursor string, pageSize int) (*ListResponse, error) {
	blockID = strings.TrimSpace(blockID)
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	q := url.Values{}
	q.Set("page_size", strconv.Itoa(pageSize))
	if cursor != "" {
		q.Set("start_cursor", cursor)
	}

	var out ListResponse
	path := "/blocks/" + url.PathEscape(blockID) + "/children?" + q.Encode()
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) retrieve(ctx context.Context, prefix, kind, id string) (json.RawMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%s ID is required", kind)
	}
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, prefix+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	var body []byte
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = data
	}

	for attempt := 0; ; attempt++ {
		err := c.doRequest(ctx, method, path, body, out)

		var apiErr *Error
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusTooManyRequests || attempt >= c.maxRetries {
			return err
		}

		c.logger.Debug("rate limited by notion",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("retry_after", apiErr.RetryAfter),
			zap.Int("attempt", attempt+1))

		timer := time.NewTimer(apiErr.RetryAfter)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Method: method, Path: path, Message: "rate limiter", Err: err}
	}

	respBody, err := c.breaker.Execute(func() (any, error) {
		return c.send(ctx, method, path, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return &Error{Method: method, Path: path, Message: "circuit breaker", Err: err}
		}
		return err
	}

	data, _ := respBody.([]byte)
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse official API response for %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("authorization", "Bearer "+c.token)
	req.Header.Set("notion-version", c.notionVersion)
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Method: method, Path: path, Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Method: method, Path: path, Message: "read response", Err: err}
	}

	if resp.StatusCode >= 400 {
		return nil, newError(method, path, resp, respBody)
	}
	return respBody, nil
}

func isBreakerSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
	}
	return false
}
