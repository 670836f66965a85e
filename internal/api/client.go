// Package api is the HTTP client for the honeypot backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"

	perrors "github.com/zhubert/decoy/internal/errors"
	"github.com/zhubert/decoy/internal/logger"
)

// Backend endpoints.
const (
	PathHealth = "/health"
	PathStart  = "/start"
	PathIngest = "/ingest"
)

// RequestIDHeader carries a fresh UUID on every request.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds the display width of a failed response body kept in
// the error.
const maxErrorBody = 256

// Backend is the subset of the client the UI depends on.
type Backend interface {
	Health(ctx context.Context) (HealthResponse, error)
	Start(ctx context.Context) (StartResponse, error)
	Ingest(ctx context.Context, req IngestRequest) (IngestResponse, error)
}

// Client talks to a single backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request. Zero disables the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    30 * time.Second,
		log:        logger.WithComponent("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, "api.Health", http.MethodGet, PathHealth, nil, &out)
	return out, err
}

// Start calls POST /start.
func (c *Client) Start(ctx context.Context) (StartResponse, error) {
	var out StartResponse
	err := c.do(ctx, "api.Start", http.MethodPost, PathStart, nil, &out)
	return out, err
}

// Ingest calls POST /ingest with one scammer message.
func (c *Client) Ingest(ctx context.Context, req IngestRequest) (IngestResponse, error) {
	var out IngestResponse
	err := c.do(ctx, "api.Ingest", http.MethodPost, PathIngest, req, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, op perrors.Op, method, path string, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return perrors.E(op, perrors.KindInvalid, "failed to encode request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return perrors.E(op, perrors.KindInvalid, "failed to build request", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With("requestID", requestID, "method", method, "path", path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err, "elapsed", time.Since(start))
		if errors.Is(err, context.DeadlineExceeded) {
			return perrors.RequestTimeout(op, path, err)
		}
		return perrors.RequestFailed(op, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("failed to read response", "error", err, "status", resp.StatusCode)
		if errors.Is(err, context.DeadlineExceeded) {
			return perrors.RequestTimeout(op, path, err)
		}
		return perrors.RequestFailed(op, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := strings.TrimSpace(string(data))
		snippet = ansi.Truncate(snippet, maxErrorBody, "...")
		log.Warn("unexpected status", "status", resp.StatusCode, "elapsed", time.Since(start))
		return perrors.BadStatus(op, path, resp.StatusCode, snippet)
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Warn("failed to decode response", "error", err, "status", resp.StatusCode)
		return perrors.DecodeFailed(op, path, err)
	}

	log.Debug("request completed", "status", resp.StatusCode, "elapsed", time.Since(start))
	return nil
}
