package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenSource yields the bearer token to attach to the next request. An
// empty token sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

// Caller is the HTTP client shared by every screen: it is bound to the API
// base URL and reads the current token from the session on each request.
type Caller struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	progress func(total int64) io.Writer
}

type Option func(*Caller)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Caller) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Caller) { c.http.Timeout = d }
}

// WithUploadProgress installs a sink that sees every byte of multipart
// uploads; total is the body size.
func WithUploadProgress(fn func(total int64) io.Writer) Option {
	return func(c *Caller) { c.progress = fn }
}

func New(baseURL string, tokens TokenSource, opts ...Option) (*Caller, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("base URL %q must start with http:// or https://", baseURL)
	}
	c := &Caller{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Caller) BaseURL() string { return c.baseURL }

// Get decodes the JSON body of a successful response into out (may be nil).
func (c *Caller) Get(ctx context.Context, path string, out any) error {
	return c.send(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Caller) Post(ctx context.Context, path string, body, out any) error {
	r, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.send(ctx, http.MethodPost, path, r, "application/json", out)
}

func (c *Caller) Put(ctx context.Context, path string, body, out any) error {
	r, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.send(ctx, http.MethodPut, path, r, "application/json", out)
}

func (c *Caller) Delete(ctx context.Context, path string, out any) error {
	return c.send(ctx, http.MethodDelete, path, nil, "", out)
}

// PostMultipart uploads form as multipart/form-data.
func (c *Caller) PostMultipart(ctx context.Context, path string, form *MultipartForm, out any) error {
	buf, contentType, err := form.encode()
	if err != nil {
		return err
	}
	var body io.Reader = buf
	if c.progress != nil {
		body = io.TeeReader(buf, c.progress(int64(buf.Len())))
	}
	return c.send(ctx, http.MethodPost, path, body, contentType, out)
}

func (c *Caller) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start).String(),
	}).Debug("api call")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, path, resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func jsonBody(v any) (io.Reader, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(b), nil
}
