package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ssargent/frota/pkg/catalog"
)

var (
	titleColor   = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#89B4FA"}
	borderColor  = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	successColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
)

// styles are bound to the session's output so colour is only emitted on
// terminals.
type styles struct {
	renderer *lipgloss.Renderer
	menu     lipgloss.Style
	title    lipgloss.Style
	key      lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
	muted    lipgloss.Style
	border   lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		renderer: r,
		menu: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 2),
		title:   r.NewStyle().Bold(true).Foreground(titleColor),
		key:     r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(successColor),
		failure: r.NewStyle().Foreground(errorColor),
		muted:   r.NewStyle().Foreground(mutedColor),
		border:  r.NewStyle().Foreground(borderColor),
		header:  r.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Center),
		cell:    r.NewStyle().Padding(0, 1),
	}
}

type menuEntry struct {
	key   string
	label string
}

var menuEntries = []menuEntry{
	{"L", "List vehicles"},
	{"P", "Search by plate"},
	{"A", "Add vehicle"},
	{"R", "Remove vehicle"},
	{"G", "Save catalog to file"},
	{"", ""},
	{"T", "Quit"},
}

func (s styles) renderMenu() string {
	lines := []string{s.title.Render("Fleet catalog"), ""}
	for _, e := range menuEntries {
		if e.key == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, fmt.Sprintf("%s - %s", s.key.Render(e.key), e.label))
	}
	return s.menu.Render(strings.Join(lines, "\n"))
}

func (s styles) renderCatalog(cat *catalog.Catalog) string {
	if cat.Len() == 0 {
		return s.muted.Render("No vehicles in catalog.")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers("Plate", "Make", "Model", "Date").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		})
	for r := range cat.All() {
		t.Row(r.Row()...)
	}

	return t.String() + "\n" + s.muted.Render(fmt.Sprintf("%d vehicle(s)", cat.Len()))
}

// indent prefixes every line of text with n spaces.
func indent(text string, n int) string {
	if n <= 0 {
		return text
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
