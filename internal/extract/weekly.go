package extract

import (
	"regexp"
	"strings"
)

var (
	backtickURLRe = regexp.MustCompile("`(https?://[^`]+)`")
	screenshotRe  = regexp.MustCompile("^## Screenshot `([^`]+)`\\s*$")
	sectionRe     = regexp.MustCompile(`^##\s+(.+?)\s*$`)
)

const (
	QualityFull      = "full"
	QualityTruncated = "truncated"
	QualityTemplate  = "template"
)

// URLQuality flags links that were copied incompletely from a screenshot.
func URLQuality(u string) string {
	switch {
	case strings.Contains(u, "..."):
		return QualityTruncated
	case strings.Contains(u, "<creator>"):
		return QualityTemplate
	}
	return QualityFull
}

type WeeklyRecord struct {
	SourceFile string `json:"source_file"`
	Screenshot string `json:"screenshot"`
	Creator    string `json:"creator"`
	URL        string `json:"url"`
	URLQuality string `json:"url_quality"`
	Platform   string `json:"platform"`
	Section    string `json:"section"`
}

type WeeklyCounts struct {
	SourceRecords    int `json:"source_records"`
	UniqueSourceURLs int `json:"unique_source_urls"`
	AllURLsSeen      int `json:"all_urls_seen"`
	UniqueAllURLs    int `json:"unique_all_urls"`
}

// WeeklyReport is the JSON document written by `extract weekly`.
// SourceRecords are links attributed to a creator under a screenshot
// section; UniqueAllURLs also covers loose links anywhere in the notes.
type WeeklyReport struct {
	InputFile        string         `json:"input_file"`
	Counts           WeeklyCounts   `json:"counts"`
	SourceRecords    []WeeklyRecord `json:"source_records"`
	UniqueSourceURLs []WeeklyRecord `json:"unique_source_urls"`
	UniqueAllURLs    []WeeklyRecord `json:"unique_all_urls"`
}

type creatorBlock struct {
	creator string
	urls    []string
	next    int
}

// parseCreatorBlock reads "- Name" followed by indented "  - detail"
// bullets. A bullet with no details is not a creator.
func parseCreatorBlock(lines []string, start int) (creatorBlock, bool) {
	line := lines[start]
	if !strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "- `") {
		return creatorBlock{}, false
	}
	creator := strings.TrimSpace(line[2:])
	if creator == "" {
		return creatorBlock{}, false
	}

	var urls []string
	details := 0
	i := start + 1
	for ; i < len(lines) && strings.HasPrefix(lines[i], "  - "); i++ {
		details++
		for _, m := range backtickURLRe.FindAllStringSubmatch(lines[i][4:], -1) {
			urls = append(urls, m[1])
		}
	}
	if details == 0 {
		return creatorBlock{}, false
	}
	return creatorBlock{
		creator: creator,
		urls:    uniqueBy(urls, func(s string) string { return s }),
		next:    i,
	}, true
}

// Weekly parses curation notes into a report.
func Weekly(markdown, sourceFile string) WeeklyReport {
	lines := strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n")
	records := []WeeklyRecord{}
	all := []WeeklyRecord{}

	newRecord := func(screenshot, creator, u, section string) WeeklyRecord {
		return WeeklyRecord{
			SourceFile: sourceFile,
			Screenshot: screenshot,
			Creator:    creator,
			URL:        u,
			URLQuality: URLQuality(u),
			Platform:   platformFor(strings.ToLower(u)),
			Section:    section,
		}
	}

	var section, screenshot string
	for i := 0; i < len(lines); {
		line := lines[i]

		if m := screenshotRe.FindStringSubmatch(line); m != nil {
			screenshot = m[1]
			section = strings.TrimSpace(line[3:])
			i++
			continue
		}
		if m := sectionRe.FindStringSubmatch(line); m != nil {
			section = strings.TrimSpace(m[1])
			if !strings.HasPrefix(section, "Screenshot ") {
				screenshot = ""
			}
			i++
			continue
		}

		if block, ok := parseCreatorBlock(lines, i); ok && screenshot != "" {
			for _, u := range block.urls {
				rec := newRecord(screenshot, block.creator, u, section)
				records = append(records, rec)
				all = append(all, rec)
			}
			i = block.next
			continue
		}

		for _, m := range backtickURLRe.FindAllStringSubmatch(line, -1) {
			all = append(all, newRecord(screenshot, "", m[1], section))
		}
		i++
	}

	byURL := func(r WeeklyRecord) string { return r.URL }
	uniqueSource := uniqueBy(records, byURL)
	uniqueAll := uniqueBy(all, byURL)
	return WeeklyReport{
		InputFile: sourceFile,
		Counts: WeeklyCounts{
			SourceRecords:    len(records),
			UniqueSourceURLs: len(uniqueSource),
			AllURLsSeen:      len(all),
			UniqueAllURLs:    len(uniqueAll),
		},
		SourceRecords:    records,
		UniqueSourceURLs: uniqueSource,
		UniqueAllURLs:    uniqueAll,
	}
}

// Table lays out the attributed records for CSV and XLSX output.
func (r WeeklyReport) Table() Table {
	t := Table{Header: []string{"screenshot", "creator", "platform", "url_quality", "url", "section", "source_file"}}
	for _, rec := range r.SourceRecords {
		t.Rows = append(t.Rows, []string{
			rec.Screenshot, rec.Creator, rec.Platform, rec.URLQuality, rec.URL, rec.Section, rec.SourceFile,
		})
	}
	return t
}
