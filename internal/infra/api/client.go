package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/napleton/fueltrakr/internal/metrics"
)

// Request describes one logical HTTP operation. The body is held as bytes so
// every retry attempt can replay it.
type Request struct {
	Method      string
	Path        string
	Headers     map[string]string
	Body        []byte
	ContentType string
}

// Client executes HTTP requests against a base URL with bounded automatic
// retry. Attempts are strictly sequential; the configured transport timeout
// bounds each individual attempt.
type Client struct {
	name       string
	baseURL    string
	headers    map[string]string
	retry      RetryConfig
	httpClient *http.Client
}

// NewClient creates a client for the given backend origin. Default headers
// are attached to every request unless overridden per call.
func NewClient(name, baseURL string, headers map[string]string, retry RetryConfig, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		name:    name,
		baseURL: baseURL,
		headers: headers,
		retry:   retry,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes the request with the client's retry policy and returns the raw
// response body.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	return c.DoWithRetry(ctx, req, c.retry)
}

// DoWithRetry executes the request with an explicit retry policy. A transient
// failure is retried with exponential backoff; any other failure, or
// exhaustion of the budget, surfaces the last error.
func (c *Client) DoWithRetry(ctx context.Context, req Request, cfg RetryConfig) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		slog.Debug("api request",
			"target", c.name, "method", req.Method, "path", req.Path, "attempt", attempt)

		body, err := c.attempt(ctx, req)
		if err == nil {
			return body, nil
		}
		lastErr = err

		willRetry := attempt < cfg.MaxRetries && cfg.shouldRetry(err)
		slog.Warn("api request failed",
			"target", c.name, "method", req.Method, "path", req.Path,
			"attempt", attempt, "error", err, "will_retry", willRetry)

		if !willRetry {
			metrics.APIErrorsTotal.WithLabelValues(c.name, req.Method, errorType(err)).Inc()
			return nil, err
		}

		metrics.APIRetriesTotal.WithLabelValues(c.name, req.Method).Inc()
		delay := Backoff(attempt+1, cfg.BaseDelay, cfg.MaxDelay)
		slog.Debug("retrying after backoff",
			"target", c.name, "path", req.Path, "attempt", attempt, "delay", delay)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, lastErr
}

// attempt issues a single request and classifies its outcome.
func (c *Client) attempt(ctx context.Context, req Request) ([]byte, error) {
	start := time.Now()
	metrics.APIRequestsTotal.WithLabelValues(c.name, req.Method).Inc()

	var reader io.Reader
	if req.Body != nil {
		reader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: req.Method + " " + req.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read response", Err: err}
	}

	metrics.APILatency.WithLabelValues(c.name, req.Method).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// Head issues a single HEAD request and returns the status code. HEAD is used
// for existence probes and is never retried.
func (c *Client) Head(ctx context.Context, path string, headers map[string]string) (int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, &TransportError{Op: "HEAD " + path, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// Get performs a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, headers map[string]string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, headers, out)
}

// Post performs a POST with a JSON body and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, path string, body any, headers map[string]string, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, headers, out)
}

// Put performs a PUT with a JSON body and decodes the JSON response into out.
func (c *Client) Put(ctx context.Context, path string, body any, headers map[string]string, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, headers, out)
}

// Delete performs a DELETE and decodes the JSON response into out.
func (c *Client) Delete(ctx context.Context, path string, headers map[string]string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, headers, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	req := Request{Method: method, Path: path, Headers: headers}

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.Body = data
		req.ContentType = "application/json"
	}

	respBody, err := c.Do(ctx, req)
	if err != nil {
		return err
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// PostMultipart uploads a file as multipart form data and decodes the JSON
// response into out.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, file io.Reader, headers map[string]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	respBody, err := c.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        path,
		Headers:     headers,
		Body:        buf.Bytes(),
		ContentType: w.FormDataContentType(),
	})
	if err != nil {
		return err
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func errorType(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return "transport"
	}
	var se *StatusError
	if errors.As(err, &se) {
		return "status"
	}
	return "other"
}
