package markdown

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rogersnm/launchpad/internal/model"
	"github.com/rogersnm/launchpad/internal/people"
	"github.com/rogersnm/launchpad/internal/status"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
)

// RenderEntryTable lists evaluated projects; watched slugs get a star.
func RenderEntryTable(entries []status.Entry, watched map[string]bool) string {
	if len(entries) == 0 {
		return "No projects found."
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		mark := ""
		if watched[e.Project.Slug] {
			mark = "*"
		}
		rows[i] = []string{
			mark,
			e.Project.Slug,
			e.Project.Title,
			e.Project.Platform,
			RenderStatus(e.Status, e.JustLaunched),
			e.Countdown.Text(),
		}
	}
	return renderTable([]string{"", "Slug", "Title", "Platform", "Status", "Countdown"}, rows)
}

// RenderBoard renders every non-empty board section.
func RenderBoard(b status.Board, watched map[string]bool) string {
	sections := []struct {
		title   string
		entries []status.Entry
	}{
		{"Live now", b.Live},
		{"Coming soon", b.Upcoming},
		{"Previews", b.Previews},
		{"Archive", b.Archive},
	}
	var parts []string
	for _, s := range sections {
		if len(s.entries) == 0 {
			continue
		}
		parts = append(parts, RenderSection(s.title)+"\n"+RenderEntryTable(s.entries, watched))
	}
	if len(parts) == 0 {
		return "No projects found."
	}
	return strings.Join(parts, "\n\n")
}

func RenderIssueTable(issues []model.Issue) string {
	if len(issues) == 0 {
		return "No issues found."
	}
	rows := make([][]string, len(issues))
	for i, is := range issues {
		rows[i] = []string{is.Slug, is.Title, is.WeekStart, is.WeekEnd, strconv.Itoa(len(is.Projects))}
	}
	return renderTable([]string{"Slug", "Title", "Week of", "Until", "Projects"}, rows)
}

func RenderPeopleTable(summaries []people.Summary) string {
	if len(summaries) == 0 {
		return "No people found."
	}
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{s.Slug, s.Name, strconv.Itoa(len(s.Projects)), s.BGGURL}
	}
	return renderTable([]string{"Slug", "Name", "Projects", "BGG"}, rows)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}
