// Package bgg looks up designer and publisher profiles on BoardGameGeek.
package bgg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rogersnm/launchpad/internal/logging"
	"github.com/rogersnm/launchpad/internal/model"
	"github.com/rogersnm/launchpad/internal/people"
	"golang.org/x/net/html"
)

const (
	DefaultBaseURL = "https://boardgamegeek.com"
	UserAgent      = "PnPLaunchpadBGGFetcher/1.0 (+manual curation)"
)

// Profile links look like /boardgamedesigner/123/ada-lovelace.
var profilePaths = map[people.Kind]*regexp.Regexp{
	people.Designers:  regexp.MustCompile(`^/boardgamedesigner/\d+/[^/]+`),
	people.Publishers: regexp.MustCompile(`^/boardgamepublisher/\d+/[^/]+`),
}

// Client talks to the BGG website.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient returns a client for the site at baseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *Client) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", UserAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rawURL, err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

func normalize(v string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(v) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// CollapseSpace trims v and folds whitespace runs to one space.
func CollapseSpace(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// walk visits element nodes depth first until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n.Type == html.ElementNode && !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return CollapseSpace(sb.String())
}

type candidate struct {
	path  string
	label string
}

// profileCandidates lists profile anchors of kind in document order.
func profileCandidates(doc *html.Node, kind people.Kind) []candidate {
	pattern := profilePaths[kind]
	var out []candidate
	walk(doc, func(n *html.Node) bool {
		if n.Data == "a" {
			if href := attr(n, "href"); pattern.MatchString(href) {
				out = append(out, candidate{path: href, label: nodeText(n)})
			}
		}
		return true
	})
	return out
}

// Search returns the profile URL for name, or "" when BGG lists no
// candidates. An exact match on the normalized label wins over the first
// result.
func (c *Client) Search(ctx context.Context, name string, kind people.Kind) (string, error) {
	if _, ok := profilePaths[kind]; !ok {
		return "", fmt.Errorf("unknown people kind %q", kind)
	}
	objectType := "boardgamedesigner"
	if kind == people.Publishers {
		objectType = "boardgamepublisher"
	}
	q := url.Values{"action": {"search"}, "objecttype": {objectType}, "q": {name}}
	page, err := c.fetch(ctx, c.baseURL+"/geeksearch.php?"+q.Encode())
	if err != nil {
		return "", err
	}
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing search results: %w", err)
	}

	candidates := profileCandidates(doc, kind)
	if len(candidates) == 0 {
		return "", nil
	}
	target := normalize(name)
	for _, cand := range candidates {
		if normalize(cand.label) == target {
			return c.baseURL + cand.path, nil
		}
	}
	return c.baseURL + candidates[0].path, nil
}

// metaContent returns the first non-empty content of a meta tag whose key
// attribute (property or name) equals value.
func metaContent(doc *html.Node, key, value string) string {
	var out string
	walk(doc, func(n *html.Node) bool {
		if n.Data == "meta" && strings.EqualFold(attr(n, key), value) {
			out = CollapseSpace(attr(n, "content"))
		}
		return out == ""
	})
	return out
}

// ExtractWriteup pulls a short bio from a profile page: og:description,
// then the description meta tag, then the first paragraph.
func ExtractWriteup(page string) string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return ""
	}
	if v := metaContent(doc, "property", "og:description"); v != "" {
		return v
	}
	if v := metaContent(doc, "name", "description"); v != "" {
		return v
	}
	var para string
	walk(doc, func(n *html.Node) bool {
		if n.Data == "p" {
			para = nodeText(n)
			return false
		}
		return true
	})
	return para
}

func (c *Client) Writeup(ctx context.Context, profileURL string) (string, error) {
	page, err := c.fetch(ctx, profileURL)
	if err != nil {
		return "", err
	}
	return ExtractWriteup(page), nil
}

type UpdateOptions struct {
	// Force refetches entries that already have both a URL and a bio.
	Force bool
	// Delay is the pause between consecutive lookups.
	Delay time.Duration
}

// UpdateEntries fills BGGURL and Bio for each person and returns the new
// list with the labels ("designers:Name") of updated entries. A failed
// lookup is logged and skipped. The input slice is not modified.
func (c *Client) UpdateEntries(ctx context.Context, entries []model.Person, kind people.Kind, opts UpdateOptions) ([]model.Person, []string, error) {
	out := make([]model.Person, len(entries))
	copy(out, entries)
	var updated []string

	for i := range out {
		e := &out[i]
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		if !opts.Force && strings.TrimSpace(e.BGGURL) != "" && strings.TrimSpace(e.Bio) != "" {
			continue
		}

		found, err := c.updateEntry(ctx, e, name, kind)
		switch {
		case err != nil && ctx.Err() != nil:
			return out, updated, ctx.Err()
		case err != nil:
			logging.WithError(err).WithField("entry", string(kind)+":"+name).Warn("bgg lookup failed")
		case found:
			updated = append(updated, string(kind)+":"+name)
		}

		if i < len(out)-1 && opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return out, updated, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}
	return out, updated, nil
}

func (c *Client) updateEntry(ctx context.Context, e *model.Person, name string, kind people.Kind) (bool, error) {
	profileURL, err := c.Search(ctx, name, kind)
	if err != nil || profileURL == "" {
		return false, err
	}
	writeup, err := c.Writeup(ctx, profileURL)
	if err != nil {
		return false, err
	}
	e.BGGURL = profileURL
	if writeup != "" {
		e.Bio = writeup
	}
	return true, nil
}
