// Package content loads and writes the site's content snapshot.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rogersnm/launchpad/internal/model"
)

// Source yields one complete snapshot per call.
type Source interface {
	Load(ctx context.Context) (*model.Snapshot, error)
	Location() string
}

// Open picks an HTTP source for http(s) locations and a file source otherwise.
func Open(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location)
	}
	return &FileSource{Path: location}
}

// FileSource reads the snapshot from a JSON file.
type FileSource struct {
	Path string
}

// compile-time check
var _ Source = (*FileSource)(nil)

func (s *FileSource) Location() string { return s.Path }

func (s *FileSource) Load(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// FetchError reports a failed snapshot download. StatusCode is zero for
// transport failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPSource downloads the snapshot with a single GET. Failures are
// returned to the caller as *FetchError; there is no retry.
type HTTPSource struct {
	URL    string
	client *http.Client
}

var _ Source = (*HTTPSource)(nil)

func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPSource) Location() string { return s.URL }

func (s *HTTPSource) Load(ctx context.Context) (*model.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{URL: s.URL, StatusCode: resp.StatusCode}
	}
	snap, err := Decode(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	return snap, nil
}

// ErrMalformed is returned when the snapshot document is not valid JSON
// or is missing the projects list.
var ErrMalformed = errors.New("malformed snapshot")

func Decode(r io.Reader) (*model.Snapshot, error) {
	var raw struct {
		model.Snapshot
		Projects *[]model.Project `json:"projects"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw.Projects == nil {
		return nil, fmt.Errorf("%w: missing projects", ErrMalformed)
	}
	snap := raw.Snapshot
	snap.Projects = *raw.Projects
	return &snap, nil
}

// Save writes the snapshot as indented JSON, replacing path atomically.
func Save(path string, s *model.Snapshot) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating parent dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}
