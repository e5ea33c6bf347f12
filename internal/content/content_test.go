package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogersnm/launchpad/internal/markdown"
	"github.com/rogersnm/launchpad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "projects": [
    {"slug": "tiny", "title": "Tiny Dungeon", "launchDate": "2025-03-10", "endDate": "2025-03-17", "designer": "Ada Lovelace", "latePledgeUrl": "https://late"}
  ],
  "designers": [{"name": "Ada Lovelace", "slug": "ada-l"}],
  "publishers": [],
  "issues": [{"slug": "w1", "title": "Week 1", "weekStart": "2025-03-10", "weekEnd": "2025-03-16"}]
}`

func TestDecode(t *testing.T) {
	snap, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	require.Len(t, snap.Projects, 1)
	assert.Equal(t, "Tiny Dungeon", snap.Projects[0].Title)
	assert.Equal(t, "https://late", snap.Projects[0].LatePledgeURL)
	assert.Equal(t, "ada-l", snap.Designers[0].Slug)
	assert.Equal(t, "2025-03-10", snap.Issues[0].WeekStart)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader("{not json"))
	assert.True(t, errors.Is(err, ErrMalformed))

	_, err = Decode(strings.NewReader(`{"designers": []}`))
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestFileSource_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "content.json")
	orig, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	require.NoError(t, Save(path, orig))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))
	assert.Contains(t, string(data), `"latePledgeUrl": "https://late"`)

	got, err := Open(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestFileSource_Missing(t *testing.T) {
	_, err := (&FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}).Load(context.Background())
	assert.Error(t, err)
}

func TestHTTPSource_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/data/content.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	src := Open(srv.URL + "/data/content.json")
	_, isHTTP := src.(*HTTPSource)
	require.True(t, isHTTP)

	snap, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Projects, 1)
}

func TestHTTPSource_NonSuccessStatus(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Load(context.Background())
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusServiceUnavailable, fe.StatusCode)
	assert.Equal(t, 1, calls, "no retry")
}

func TestHTTPSource_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSource(url).Load(context.Background())
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.StatusCode)
}

func TestHTTPSource_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"issues": []any{}})
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Load(context.Background())
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestCompile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, markdown.WriteFile(filepath.Join(dir, ProjectsDir, "b-second.md"),
		model.Project{Title: "Second", LaunchDate: "2025-03-01"}, "Second summary."))
	require.NoError(t, markdown.WriteFile(filepath.Join(dir, ProjectsDir, "a-first.md"),
		model.Project{Slug: "first", Title: "First", Summary: "Kept."}, "Ignored body."))
	require.NoError(t, markdown.WriteFile(filepath.Join(dir, DesignersDir, "ada.md"),
		model.Person{Name: "Ada Lovelace"}, "Wrote the first program."))
	require.NoError(t, markdown.WriteFile(filepath.Join(dir, IssuesDir, "2025-w10.md"),
		model.Issue{Title: "Week 10", WeekStart: "2025-03-03"}, "Hello **backers**."))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectsDir, "notes.txt"), []byte("skip"), 0644))

	snap, err := Compile(dir)
	require.NoError(t, err)

	require.Len(t, snap.Projects, 2)
	assert.Equal(t, "first", snap.Projects[0].Slug)
	assert.Equal(t, "Kept.", snap.Projects[0].Summary)
	assert.Equal(t, "b-second", snap.Projects[1].Slug)
	assert.Equal(t, "Second summary.", snap.Projects[1].Summary)

	require.Len(t, snap.Designers, 1)
	assert.Equal(t, "ada", snap.Designers[0].Slug)
	assert.Equal(t, "Wrote the first program.", snap.Designers[0].Bio)
	assert.Empty(t, snap.Publishers)

	require.Len(t, snap.Issues, 1)
	assert.Equal(t, "2025-w10", snap.Issues[0].Slug)
	assert.Equal(t, "Hello **backers**.", snap.Issues[0].Intro)
}

func TestCompile_MissingDir(t *testing.T) {
	_, err := Compile(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestCompile_BadFrontmatter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ProjectsDir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectsDir, "bad.md"), []byte("---\n{{nope\n---\n"), 0644))
	_, err := Compile(dir)
	assert.ErrorContains(t, err, "bad.md")
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Save(filepath.Join(root, SnapshotPath), &model.Snapshot{Projects: []model.Project{}}))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	got, err := FindRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = FindRoot(root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindRoot_NotFound(t *testing.T) {
	got, err := FindRoot(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}
