// internal/leaderboard/fetch.go
package leaderboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultSource is the path the page reads its data from.
	DefaultSource = "/leaderboard.yml"
	// maxDocumentBytes caps how much of a source is read.
	maxDocumentBytes = 8 << 20
	defaultTimeout   = 30 * time.Second
)

// Fetcher reads the raw leaderboard document.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
	// Source describes where the document comes from, for logs.
	Source() string
}

// HTTPFetcher reads the document with a single GET request.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// Source returns the request URL.
func (f *HTTPFetcher) Source() string { return f.URL }

// Fetch issues one GET. Non-2xx responses are failures.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request %s: %v", ErrFetch, f.URL, err)
	}
	req.Header.Set("Accept", "application/yaml, text/yaml, text/plain, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrFetch, f.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: unexpected status %s", ErrFetch, f.URL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFetch, f.URL, err)
	}
	return data, nil
}

// FileFetcher reads the document from disk.
type FileFetcher struct {
	Path string
}

// Source returns the file path.
func (f *FileFetcher) Source() string { return f.Path }

// Fetch reads the whole file.
func (f *FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFetch, f.Path, err)
	}
	return data, nil
}

// NewFetcher picks a fetcher for source:
//
//   - http:// and https:// URLs are fetched over HTTP;
//   - file:// URLs and plain relative paths are read from disk;
//   - paths starting with "/" are resolved against root, the way a browser
//     resolves them against the site root.
func NewFetcher(source, root string, client *http.Client) Fetcher {
	source = strings.TrimSpace(source)
	if source == "" {
		source = DefaultSource
	}
	lower := strings.ToLower(source)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return &HTTPFetcher{URL: source, Client: client}
	case strings.HasPrefix(lower, "file://"):
		return &FileFetcher{Path: filepath.FromSlash(source[len("file://"):])}
	}
	return &FileFetcher{Path: ResolvePath(source, root)}
}

// ResolvePath maps a root-relative source onto the filesystem.
func ResolvePath(source, root string) string {
	if strings.HasPrefix(source, "/") {
		if root == "" {
			root = "."
		}
		return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(source, "/")))
	}
	return filepath.FromSlash(source)
}

// Load fetches once and parses the result.
func Load(ctx context.Context, f Fetcher) (Leaderboard, error) {
	data, err := f.Fetch(ctx)
	if err != nil {
		return Leaderboard{}, err
	}
	return Parse(data)
}
