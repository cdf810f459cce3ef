package memoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/recallbox/internal/core"
	"github.com/sandevgo/recallbox/pkg/conv"
	"github.com/sandevgo/recallbox/pkg/log"
	"github.com/sandevgo/recallbox/pkg/retry"
)

const (
	maxErrorBody   = 64 << 10
	defaultTimeout = 30 * time.Second
	// scans walk the whole drive and may run vision on every new photo
	scanTimeout = 30 * time.Minute
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	Retries int
}

var (
	_ core.MemoryAPI = (*Client)(nil)
	_ core.VisionAPI = (*Client)(nil)
)

// Client talks to the RecallBox backend over its JSON HTTP API.
type Client struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	retrier *retry.Retrier
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	retryCfg := retry.NewDefaultConfig()
	retryCfg.MaxRetries = cfg.Retries
	if retryCfg.MaxRetries < 0 {
		retryCfg.MaxRetries = 0
	}
	retryCfg.RetryIf = isTemporary

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		client:  &http.Client{},
		retrier: retry.NewRetrier(retryCfg),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close drops idle keep-alive connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// isTemporary keeps client mistakes (4xx) from being retried.
func isTemporary(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *core.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}

// get issues an idempotent GET with retries and decodes the JSON answer.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.retrier.Do(ctx, func() error {
		return c.do(ctx, http.MethodGet, path, nil, out)
	})
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// do applies the request timeout unless the caller already set a deadline.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", core.RecallUserAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.FromCtx(ctx).Debug().Str("method", method).Str("path", path).Msg("backend request")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// decodeError extracts FastAPI's {"detail": ...} or flattens an HTML page.
func decodeError(method, path string, resp *http.Response) error {
	apiErr := &core.APIError{Method: method, Path: path, Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return apiErr
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &payload) == nil && len(payload.Detail) > 0 {
		var detail string
		if json.Unmarshal(payload.Detail, &detail) == nil {
			apiErr.Detail = detail
		} else {
			// validation errors come back as a list of objects
			apiErr.Detail = string(payload.Detail)
		}
		return apiErr
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "html") || strings.HasPrefix(text, "<") {
		apiErr.Detail = conv.OneLine(conv.HTMLToText(text), 200)
		return apiErr
	}

	apiErr.Detail = conv.OneLine(text, 200)
	return apiErr
}
