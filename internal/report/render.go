package report

import (
	"fmt"
	"strings"

	"burrow/internal/engine/analysis"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	importerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type column struct {
	title string
	right bool
	value func(analysis.Record) string
}

func viewColumns(view View) []column {
	score := column{"Score", true, func(r analysis.Record) string { return fmt.Sprintf("%d", r.Score) }}
	depth := column{"Depth", true, func(r analysis.Record) string { return fmt.Sprintf("%d", r.Depth) }}
	imports := column{"Imports", true, func(r analysis.Record) string { return fmt.Sprintf("%d", r.ImportCount) }}
	module := column{"Module", false, func(r analysis.Record) string { return r.Module }}
	file := column{"File", false, func(r analysis.Record) string { return r.Path }}

	switch view {
	case ViewHot:
		return []column{score, depth, imports, module, file}
	case ViewDead:
		return []column{depth, module, file}
	default:
		return []column{depth, imports, module, file}
	}
}

// Render formats records as an aligned text table, optionally with the
// per-row importer list underneath.
func Render(view View, records []analysis.Record, showImporters bool) string {
	if len(records) == 0 {
		if view == ViewDead {
			return emptyStyle.Render("No dead modules found.") + "\n"
		}
		return emptyStyle.Render("No modules matched the criteria.") + "\n"
	}

	cols := viewColumns(view)
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c.title)
		for _, r := range records {
			if w := len(c.value(r)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	headerCells := make([]string, len(cols))
	for i, c := range cols {
		headerCells[i] = pad(c.title, widths[i], c.right)
	}
	header := strings.Join(headerCells, "  ")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(header)))
	b.WriteString("\n")

	// Importer sublists indent under the Module column.
	indent := 0
	for i, c := range cols {
		if c.title == "Module" {
			break
		}
		indent += widths[i] + 2
	}

	for _, r := range records {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = pad(c.value(r), widths[i], c.right)
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteString("\n")

		if showImporters && len(r.Importers) > 0 {
			pad := strings.Repeat(" ", indent)
			b.WriteString(importerStyle.Render(pad + "<- imported by:"))
			b.WriteString("\n")
			for _, imp := range r.Importers {
				b.WriteString(importerStyle.Render(pad + "   " + imp))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func pad(s string, width int, right bool) string {
	if len(s) >= width {
		return s
	}
	fill := strings.Repeat(" ", width-len(s))
	if right {
		return fill + s
	}
	return s + fill
}
