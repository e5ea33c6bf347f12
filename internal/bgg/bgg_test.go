package bgg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogersnm/launchpad/internal/model"
	"github.com/rogersnm/launchpad/internal/people"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<table>
<tr><td><a href="/boardgamedesigner/99/ada-lovelace-jr" class="primary">Ada Lovelace Jr.</a></td></tr>
<tr><td><a href="/boardgamedesigner/42/ada-lovelace" class="primary">Ada  <b>Lovelace</b></a></td></tr>
</table>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "Ada & Grace", CollapseSpace("  Ada\n &  Grace "))
}

func TestExtractWriteup(t *testing.T) {
	assert.Equal(t, "OG bio", ExtractWriteup(`<meta property="og:description" content="OG bio"><meta name="description" content="Meta">`))
	assert.Equal(t, "Meta bio", ExtractWriteup(`<meta name="description" content="Meta bio"><p>Para</p>`))
	assert.Equal(t, "First para", ExtractWriteup(`<div><p class="x">First <i>para</i></p><p>Second</p></div>`))
	assert.Equal(t, "", ExtractWriteup(`<div>nothing</div>`))
}

func TestExtractWriteup_AttributeOrderAndQuotes(t *testing.T) {
	page := `<html><head>
<meta content="Designer of tiny games." property="og:description">
<meta name='description' content='Alt'>
</head><body><p>Cookie banner</p></body></html>`
	assert.Equal(t, "Designer of tiny games.", ExtractWriteup(page))

	page = `<meta property="og:description" content=""><meta content='Single &amp; quoted' NAME='description'><p>Cookie banner</p>`
	assert.Equal(t, "Single & quoted", ExtractWriteup(page))
}

func TestExtractWriteup_FirstParagraphOnly(t *testing.T) {
	page := `<pre>code</pre><param name="x"><p>  Makes
	small <a href="#">games</a>  </p><p>Second</p>`
	assert.Equal(t, "Makes small games", ExtractWriteup(page))
}

func TestSearch_PrefersExactMatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geeksearch.php", r.URL.Path)
		assert.Equal(t, "boardgamedesigner", r.URL.Query().Get("objecttype"))
		assert.Equal(t, "Ada Lovelace", r.URL.Query().Get("q"))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(searchPage))
	})

	got, err := c.Search(context.Background(), "Ada Lovelace", people.Designers)
	require.NoError(t, err)
	assert.Equal(t, c.baseURL+"/boardgamedesigner/42/ada-lovelace", got)
}

func TestSearch_FallsBackToFirst(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchPage))
	})
	got, err := c.Search(context.Background(), "Lovelace", people.Designers)
	require.NoError(t, err)
	assert.Equal(t, c.baseURL+"/boardgamedesigner/99/ada-lovelace-jr", got)
}

func TestSearch_IgnoresOtherLinks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<a href="/boardgame/7/engines">Ada Lovelace</a>
<a class='primary' href='/boardgamedesigner/5/ada'><span>Ada</span> Lovelace</a>`))
	})
	got, err := c.Search(context.Background(), "Ada Lovelace", people.Designers)
	require.NoError(t, err)
	assert.Equal(t, c.baseURL+"/boardgamedesigner/5/ada", got)
}

func TestSearch_NoCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "boardgamepublisher", r.URL.Query().Get("objecttype"))
		w.Write([]byte(searchPage))
	})
	got, err := c.Search(context.Background(), "Button Shy", people.Publishers)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateEntries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/geeksearch.php" && r.URL.Query().Get("q") == "Broken":
			w.WriteHeader(http.StatusInternalServerError)
		case r.URL.Path == "/geeksearch.php" && r.URL.Query().Get("q") == "Nobody":
			w.Write([]byte("<p>No results</p>"))
		case r.URL.Path == "/geeksearch.php":
			w.Write([]byte(searchPage))
		case r.URL.Path == "/boardgamedesigner/42/ada-lovelace":
			w.Write([]byte(`<meta property="og:description" content="Designer of &quot;Engines&quot;">`))
		default:
			http.NotFound(w, r)
		}
	})

	in := []model.Person{
		{Name: "Ada Lovelace", Slug: "ada"},
		{Name: "Done", BGGURL: "https://bgg/x", Bio: "Already here"},
		{Name: "Broken"},
		{Name: "Nobody"},
		{Name: "  "},
	}
	out, updated, err := c.UpdateEntries(context.Background(), in, people.Designers, UpdateOptions{Delay: time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, []string{"designers:Ada Lovelace"}, updated)
	assert.Equal(t, c.baseURL+"/boardgamedesigner/42/ada-lovelace", out[0].BGGURL)
	assert.Equal(t, `Designer of "Engines"`, out[0].Bio)
	assert.Equal(t, "Already here", out[1].Bio)
	assert.Empty(t, out[2].BGGURL)
	assert.Empty(t, in[0].BGGURL, "input untouched")
}

func TestUpdateEntries_ForceRefetches(t *testing.T) {
	hits := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/geeksearch.php" {
			w.Write([]byte(searchPage))
			return
		}
		w.Write([]byte(`<p>Fresh</p>`))
	})
	in := []model.Person{{Name: "Ada Lovelace", BGGURL: "old", Bio: "old"}}

	out, updated, err := c.UpdateEntries(context.Background(), in, people.Designers, UpdateOptions{})
	require.NoError(t, err)
	assert.Empty(t, updated)
	assert.Zero(t, hits)

	out, updated, err = c.UpdateEntries(context.Background(), in, people.Designers, UpdateOptions{Force: true})
	require.NoError(t, err)
	assert.Len(t, updated, 1)
	assert.Equal(t, "Fresh", out[0].Bio)
}

func TestUpdateEntries_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchPage))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := c.UpdateEntries(ctx, []model.Person{{Name: "A"}, {Name: "B"}}, people.Designers, UpdateOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
