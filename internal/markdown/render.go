package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rogersnm/launchpad/internal/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	badgeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

	statusStyles = map[model.Status]lipgloss.Style{
		model.StatusPreview:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		model.StatusUpcoming:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		model.StatusLive:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		model.StatusPromo:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		model.StatusLatePledge: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		model.StatusPreOrder:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		model.StatusArchived:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
)

// Plain disables ANSI styling for every renderer in this package.
var Plain bool

func style(s lipgloss.Style, text string) string {
	if Plain {
		return text
	}
	return s.Render(text)
}

func RenderMarkdown(content string) (string, error) {
	if Plain {
		return content + "\n", nil
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// StatusLabel is the badge text for a status.
func StatusLabel(s model.Status) string {
	switch s {
	case model.StatusPreview:
		return "Preview"
	case model.StatusUpcoming:
		return "Upcoming"
	case model.StatusLive:
		return "Live"
	case model.StatusPromo:
		return "Promo"
	case model.StatusLatePledge:
		return "Late pledge"
	case model.StatusPreOrder:
		return "Pre-order"
	case model.StatusArchived:
		return "Archived"
	default:
		return string(s)
	}
}

func RenderField(label, value string) string {
	return style(labelStyle, label+":") + " " + value
}

func RenderSection(title string) string {
	return style(sectionStyle, title)
}

// RenderStatus renders the status badge, with the just-launched badge after it.
func RenderStatus(s model.Status, justLaunched bool) string {
	st, ok := statusStyles[s]
	if !ok {
		st = lipgloss.NewStyle()
	}
	out := style(st, StatusLabel(s))
	if justLaunched {
		out += " " + style(badgeStyle, "(just launched)")
	}
	return out
}

func RenderEntityHeader(title string, fields []string) string {
	var sb strings.Builder
	sb.WriteString(style(headerStyle, title))
	sb.WriteString("\n")
	for _, f := range fields {
		sb.WriteString("  " + f + "\n")
	}
	return sb.String()
}
