package descriptor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/brettbedarf/treefs"
)

// Source is where a descriptor stream comes from
type Source interface {
	// Open returns the descriptor stream; the caller closes it
	Open(ctx context.Context) (io.ReadCloser, error)

	// Name selects the decoder by its extension and labels errors
	Name() string
}

// HTTPClient is the subset of *http.Client used by [HTTPSource]
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewSource picks a Source for location. http and https URLs are fetched,
// anything else is treated as a local file path.
func NewSource(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if IsURL(location) {
		return NewHTTPSource(location, nil, nil)
	}
	return &FileSource{Path: location}, nil
}

// IsURL reports whether location looks like an http(s) URL
func IsURL(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// FileSource reads a descriptor from the local filesystem
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string {
	return s.Path
}

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &treefs.Error{Kind: treefs.IOError, Path: s.Path, Msg: "invalid file name", Err: err}
	}
	return f, nil
}

// HTTPSource fetches a descriptor with a GET request
type HTTPSource struct {
	url     *url.URL
	headers map[string]string
	client  HTTPClient
}

// NewHTTPSource validates rawURL and returns a source for it. Only http and
// https URLs with a host and without user info are accepted. A nil client
// means [http.DefaultClient].
func NewHTTPSource(rawURL string, headers map[string]string, client HTTPClient) (*HTTPSource, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &treefs.Error{Kind: treefs.InvalidArgument, Path: rawURL, Msg: "invalid url", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, treefs.NewError(treefs.InvalidArgument, rawURL, "unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, treefs.NewError(treefs.InvalidArgument, rawURL, "url has no host")
	}
	if u.User != nil {
		return nil, treefs.NewError(treefs.InvalidArgument, rawURL, "url must not contain user info")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: u, headers: headers, client: client}, nil
}

// Name returns the URL path so the decoder follows its extension
func (s *HTTPSource) Name() string {
	return s.url.Path
}

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url.String(), nil)
	if err != nil {
		return nil, &treefs.Error{Kind: treefs.IOError, Path: s.url.String(), Msg: "build request", Err: err}
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &treefs.Error{Kind: treefs.IOError, Path: s.url.String(), Msg: "fetch descriptor", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, treefs.NewError(treefs.IOError, s.url.String(), "unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

func (s *HTTPSource) String() string {
	return fmt.Sprintf("HTTPSource(%s)", s.url.Redacted())
}
