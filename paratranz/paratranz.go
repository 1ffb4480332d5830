// Package paratranz is a minimal client for the Paratranz REST API.
//
// Only the two read endpoints the sync needs are implemented. Requests are
// not retried: any non-success status is returned to the caller as a
// *StatusError.
package paratranz

import (
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
)

// ErrTransport is matched by every *StatusError.
var ErrTransport = errors.New("paratranz transport error")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: API returned status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrTransport }

// File is a translatable file of a project. Name is the repository-relative
// path, e.g. "kubejs/assets/mymod/lang/en_us.json".
type File struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Translation is one key of a file.
type Translation struct {
	Key         string `json:"key"`
	Original    string `json:"original"`
	Translation string `json:"translation"`
	Stage       int    `json:"stage"`
}

// Client talks to one Paratranz project.
type Client struct {
	baseURL   string
	token     string
	projectID int
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient returns a client for projectID. baseURL is the API root
// without a trailing slash, e.g. "https://paratranz.cn/api".
func NewClient(baseURL, token string, projectID int, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		projectID: projectID,
		http:      makeHTTPClient(timeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func makeHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// CI runners configure egress through HTTP_PROXY/HTTPS_PROXY.
	transport.Proxy = http.ProxyFromEnvironment

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// ListFiles returns every file of the project.
func (c *Client) ListFiles(ctx context.Context) ([]File, error) {
	var files []File
	if err := c.get(ctx, c.projectPath("files")+"/", &files); err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return files, nil
}

// ListTranslations returns the translation entries of one file.
func (c *Client) ListTranslations(ctx context.Context, fileID int) ([]Translation, error) {
	var entries []Translation
	p := c.projectPath("files", strconv.Itoa(fileID), "translation")
	if err := c.get(ctx, p, &entries); err != nil {
		return nil, fmt.Errorf("listing translations of file %d: %w", fileID, err)
	}
	return entries, nil
}

func (c *Client) projectPath(elems ...string) string {
	parts := append([]string{"projects", strconv.Itoa(c.projectID)}, elems...)
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "/" + strings.Join(parts, "/")
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     http.MethodGet,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(body)), 500),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", endpoint, err)
	}
	return nil
}

// truncate shortens s to at most n runes, appending "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
