package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// Kind names a content collection. It doubles as the directory name and the
// top-level key of the collection's index document.
type Kind string

const (
	KindBlogs    Kind = "blogs"
	KindProjects Kind = "projects"
)

var ErrInvalidFilename = errors.New("invalid content filename")

// Entry is one blog post or project as listed in an index document.
type Entry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date,omitempty"`
	Tags        []string `json:"tags"`
	Filename    string   `json:"filename"`
}

// Client reads index documents and raw entry files either over HTTP or from a
// local directory tree laid out the same way as the published site.
type Client struct {
	baseURL string
	root    fs.FS
	http    *http.Client
}

// NewClient accepts an http(s) base URL, a file:// URL or a plain directory path.
func NewClient(source string, httpClient *http.Client) *Client {
	source = strings.TrimSpace(source)
	if parsed, err := url.Parse(source); err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		if httpClient == nil {
			httpClient = &http.Client{Timeout: 10 * time.Second}
		}
		return &Client{baseURL: strings.TrimRight(source, "/"), http: httpClient}
	}
	dir := strings.TrimPrefix(source, "file://")
	if dir == "" {
		dir = "."
	}
	return NewFSClient(os.DirFS(dir))
}

func NewFSClient(root fs.FS) *Client {
	return &Client{root: root}
}

func (c *Client) FetchIndex(ctx context.Context, kind Kind) ([]Entry, error) {
	body, err := c.read(ctx, string(kind)+"/index.json", "index")
	if err != nil {
		return nil, err
	}

	var doc map[string][]Entry
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode %s index: %w", kind, err)
	}
	entries, ok := doc[string(kind)]
	if !ok {
		return nil, fmt.Errorf("decode %s index: missing %q key", kind, kind)
	}
	return entries, nil
}

func (c *Client) FetchContent(ctx context.Context, kind Kind, filename string) (string, error) {
	name := strings.TrimSpace(filename)
	if name == "" || strings.HasPrefix(name, "/") || !fs.ValidPath(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	body, err := c.read(ctx, string(kind)+"/"+name, "content")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) read(ctx context.Context, rel, resource string) ([]byte, error) {
	if c.root != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(c.root, path.Clean(rel))
		if err != nil {
			return nil, fmt.Errorf("read %s %s: %w", resource, rel, err)
		}
		return body, nil
	}

	req, err := c.newRequest(ctx, rel)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch %s %s failed with status %d: %s", resource, rel, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", resource, err)
	}
	return body, nil
}

func (c *Client) newRequest(ctx context.Context, rel string) (*http.Request, error) {
	segments := strings.Split(rel, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	fullURL := c.baseURL + "/" + strings.Join(segments, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return req, nil
}
