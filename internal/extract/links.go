package extract

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	urlRe      = regexp.MustCompile(`https?://[^\s"'<>]+`)
	lfbRe      = regexp.MustCompile(`(?i)^https?://l\.facebook\.com/l\.php\?(.*)$`)
	spaceRunRe = regexp.MustCompile(`\s+`)
)

const snippetRadius = 180

var projectHosts = map[string]bool{
	"kickstarter.com":     true,
	"www.kickstarter.com": true,
	"gamefound.com":       true,
	"www.gamefound.com":   true,
	"itch.io":             true,
	"www.itch.io":         true,
	"etsy.com":            true,
	"www.etsy.com":        true,
	"youtube.com":         true,
	"www.youtube.com":     true,
	"youtu.be":            true,
	"drive.google.com":    true,
}

// Snippets containing these come from tracking config, not posts.
var blockedSnippets = []string{"ClickIDURLBlocklistSVConfig", "block_list_url"}

// A YouTube link is kept only when its surroundings look like a post body.
var youtubeCues = []string{`body":{"text"`, "Link for Folding", "Play through video", "youtu.be/"}

const (
	SourceDirect   = "direct"
	SourceRedirect = "l_facebook_redirect"
)

// LinkRecord is one relevant URL found in a page dump.
type LinkRecord struct {
	SourceFile     string `json:"source_file"`
	Offset         int    `json:"offset"`
	SourceKind     string `json:"source_kind"`
	RawURL         string `json:"raw_url"`
	ResolvedURL    string `json:"resolved_url"`
	CanonicalURL   string `json:"canonical_url"`
	Platform       string `json:"platform"`
	ContextSnippet string `json:"context_snippet"`
}

type LinkCounts struct {
	RelevantRecords int `json:"relevant_records"`
	UniqueURLs      int `json:"unique_urls"`
}

// LinkReport is the JSON document written by `extract links`.
type LinkReport struct {
	InputFile     string       `json:"input_file"`
	Counts        LinkCounts   `json:"counts"`
	UniqueRecords []LinkRecord `json:"unique_records"`
	AllRecords    []LinkRecord `json:"all_records"`
}

// Clean unescapes HTML entities and JSON-escaped slashes.
func Clean(raw string) string {
	return strings.ReplaceAll(html.UnescapeString(raw), `\/`, "/")
}

func trimPunct(v string) string {
	return strings.TrimRight(v, `).,;"' `)
}

// normalizeURL trims punctuation the broad URL pattern swallows and cuts
// at escaped newlines left over from JSON blobs.
func normalizeURL(v string) string {
	v = trimPunct(v)
	for _, marker := range []string{`\n`, `\r`, "\n", "\r", `\u000a`, `\u000d`} {
		if i := strings.Index(v, marker); i >= 0 {
			v = v[:i]
		}
	}
	return trimPunct(v)
}

func decodeRedirect(v string) (string, bool) {
	m := lfbRe.FindStringSubmatch(v)
	if m == nil {
		return "", false
	}
	q, err := url.ParseQuery(m[1])
	if err != nil {
		return "", false
	}
	target := q.Get("u")
	if target == "" {
		return "", false
	}
	return normalizeURL(target), true
}

func isRelevant(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	h := strings.ToLower(u.Host)
	if !projectHosts[h] {
		return false
	}
	path := strings.ToLower(u.Path)

	switch {
	case strings.HasSuffix(h, "kickstarter.com"):
		return !strings.HasPrefix(path, "/assets/") && strings.Contains(path, "/projects/")
	case strings.HasSuffix(h, "gamefound.com"):
		return strings.Contains(path, "/projects/")
	case strings.HasSuffix(h, "etsy.com"):
		return strings.Contains(path, "/listing/")
	case strings.HasSuffix(h, "drive.google.com"):
		return strings.Contains(path, "/file/") || strings.Contains(path, "/drive/")
	case strings.HasSuffix(h, "youtube.com"), h == "youtu.be":
		return true
	case strings.HasSuffix(h, "itch.io"):
		return !strings.HasPrefix(path, "/images/")
	}
	return false
}

// Canonicalize lowercases the host, drops the trailing slash and the
// fragment, and keeps only the v parameter on YouTube watch pages.
func Canonicalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	out := url.URL{
		Scheme: u.Scheme,
		Host:   strings.ToLower(u.Host),
		Path:   strings.TrimRight(u.Path, "/"),
	}
	if strings.Contains(out.Host, "youtube.com") && u.Path == "/watch" {
		if v := u.Query().Get("v"); v != "" {
			out.RawQuery = url.Values{"v": {v}}.Encode()
		}
	}
	return out.String()
}

// snippet returns up to snippetRadius runes either side of idx with
// whitespace collapsed.
func snippet(text string, idx int) string {
	left := idx
	for n := 0; n < snippetRadius && left > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:left])
		left -= size
	}
	right := idx
	for n := 0; n < snippetRadius && right < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[right:])
		right += size
	}
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(text[left:right], " "))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Links scans cleaned text for campaign URLs. Offsets are byte offsets
// into text.
func Links(text, sourceFile string) []LinkRecord {
	var records []LinkRecord
	for _, loc := range urlRe.FindAllStringIndex(text, -1) {
		raw := normalizeURL(text[loc[0]:loc[1]])
		kind, resolved := SourceDirect, raw
		if target, ok := decodeRedirect(raw); ok {
			kind, resolved = SourceRedirect, target
		}
		resolved = normalizeURL(resolved)
		if !isRelevant(resolved) {
			continue
		}

		snip := snippet(text, loc[0])
		if containsAny(snip, blockedSnippets) {
			continue
		}
		platform := Platform(resolved)
		if platform == YouTube && !containsAny(snip, youtubeCues) {
			continue
		}

		records = append(records, LinkRecord{
			SourceFile:     sourceFile,
			Offset:         loc[0],
			SourceKind:     kind,
			RawURL:         raw,
			ResolvedURL:    resolved,
			CanonicalURL:   Canonicalize(resolved),
			Platform:       platform,
			ContextSnippet: snip,
		})
	}
	return records
}

// Dedupe keeps the first record per canonical URL.
func Dedupe(records []LinkRecord) []LinkRecord {
	return uniqueBy(records, func(r LinkRecord) string { return r.CanonicalURL })
}

func uniqueBy[T any](items []T, key func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}

// NewLinkReport cleans raw, extracts and dedupes.
func NewLinkReport(raw, sourceFile string) LinkReport {
	all := Links(Clean(raw), sourceFile)
	if all == nil {
		all = []LinkRecord{}
	}
	unique := Dedupe(all)
	return LinkReport{
		InputFile:     sourceFile,
		Counts:        LinkCounts{RelevantRecords: len(all), UniqueURLs: len(unique)},
		UniqueRecords: unique,
		AllRecords:    all,
	}
}

// Table lays out the unique records for CSV and XLSX output.
func (r LinkReport) Table() Table {
	t := Table{Header: []string{"platform", "canonical_url", "resolved_url", "source_kind", "offset", "source_file", "context_snippet"}}
	for _, rec := range r.UniqueRecords {
		t.Rows = append(t.Rows, []string{
			rec.Platform, rec.CanonicalURL, rec.ResolvedURL, rec.SourceKind,
			itoa(rec.Offset), rec.SourceFile, rec.ContextSnippet,
		})
	}
	return t
}
