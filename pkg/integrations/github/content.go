package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/clevacompass/pkg/errors"
	"github.com/matzehuels/clevacompass/pkg/httputil"
	"github.com/matzehuels/clevacompass/pkg/observability"
)

// ContentClient reads repository contents through the GitHub REST API.
type ContentClient struct {
	token      string
	httpClient *http.Client
	baseURL    string
	attempts   int
	delay      time.Duration
}

// ClientOption configures a ContentClient.
type ClientOption func(*ContentClient)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(u string) ClientOption { return func(c *ContentClient) { c.baseURL = u } }

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *ContentClient) { c.httpClient = hc }
}

// WithRetry sets the number of attempts and the initial backoff for
// transient failures.
func WithRetry(attempts int, delay time.Duration) ClientOption {
	return func(c *ContentClient) { c.attempts, c.delay = attempts, delay }
}

// NewContentClient creates a client. token may be empty.
func NewContentClient(token string, opts ...ClientOption) *ContentClient {
	c := &ContentClient{
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.github.com",
		attempts:   3,
		delay:      time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListContents lists the directory at ref. When ref names a file the result
// holds that single file.
func (c *ContentClient) ListContents(ctx context.Context, ref TreeRef) ([]ContentItem, error) {
	body, err := c.get(ctx, ref.ContentsURL(c.baseURL), "application/vnd.github.v3+json")
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var item ContentItem
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode contents of %s", ref)
		}
		return []ContentItem{item}, nil
	}

	var items []ContentItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode contents of %s", ref)
	}
	return items, nil
}

// Download writes the file at url to dst, creating parent directories.
func (c *ContentClient) Download(ctx context.Context, url, dst string) error {
	body, err := c.get(ctx, url, "")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", filepath.Dir(dst))
	}
	if err := os.WriteFile(dst, body, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", dst)
	}
	return nil
}

// get performs a GET with retries on network errors and 5xx responses.
func (c *ContentClient) get(ctx context.Context, url, accept string) ([]byte, error) {
	var body []byte
	err := httputil.Retry(ctx, c.attempts, c.delay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidURL, err, "create request")
		}
		c.setHeaders(req, accept)

		hooks := observability.HTTP()
		host, path := req.URL.Host, req.URL.Path
		hooks.OnRequest(ctx, req.Method, host, path)
		start := time.Now()

		resp, err := c.httpClient.Do(req)
		if err != nil {
			hooks.OnError(ctx, req.Method, host, path, err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url)}
		}
		defer resp.Body.Close()
		hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)}
		}
		if err := checkStatus(resp, data); err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, unwrapRetryable(err)
	}
	return body, nil
}

// setHeaders sets common headers for GitHub API requests.
func (c *ContentClient) setHeaders(req *http.Request, accept string) {
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	req.Header.Set("User-Agent", "clevacompass")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func checkStatus(resp *http.Response, body []byte) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "GitHub API error (404): %s not found", resp.Request.URL.Path)
	case code == http.StatusTooManyRequests,
		code == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return errors.Wrap(errors.ErrCodeRateLimited, &errors.RateLimitedError{Message: string(body)},
			"GitHub API rate limit exceeded; set a token")
	case code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "GitHub API error (%d)", code)}
	default:
		return errors.New(errors.ErrCodeNetwork, "GitHub API error (%d): %s", code, truncate(body, 200))
	}
}

func unwrapRetryable(err error) error {
	if re, ok := err.(*httputil.RetryableError); ok {
		return re.Err
	}
	return err
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return fmt.Sprintf("%s...", b[:n])
}
