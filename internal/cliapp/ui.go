package cliapp

import (
	"fmt"
	"strings"
	"time"

	"burrow/internal/core/config"
	"burrow/internal/engine/analysis"
	"burrow/internal/report"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	hotCountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	deadCountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type recordItem struct {
	record analysis.Record
}

func (i recordItem) Title() string { return i.record.Module }
func (i recordItem) Description() string {
	return fmt.Sprintf("score=%d depth=%d imports=%d %s",
		i.record.Score, i.record.Depth, i.record.ImportCount, i.record.Path)
}
func (i recordItem) FilterValue() string { return i.record.Module + i.record.Path }

type model struct {
	recordList  list.Model
	cfg         *config.Config
	view        report.View
	records     []analysis.Record
	selected    []analysis.Record
	detail      *analysis.Record
	fileCount   int
	diagnostics int
	lastUpdate  time.Time
}

type resultMsg struct {
	result *analysis.Result
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.recordList.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1":
			m.setView(report.ViewHot)
		case "2":
			m.setView(report.ViewDead)
		case "3":
			m.setView(report.ViewCold)
		case "tab":
			m.setView(nextView(m.view))
		case "enter":
			if idx := m.recordList.Index(); idx >= 0 && idx < len(m.selected) {
				r := m.selected[idx]
				m.detail = &r
			}
			return m, nil
		case "esc":
			if m.detail != nil {
				m.detail = nil
				return m, nil
			}
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		width := msg.Width - h
		height := msg.Height - v - 6
		if height < 5 {
			height = 5
		}
		m.recordList.SetSize(width, height)
	case resultMsg:
		m.records = msg.result.Records
		m.fileCount = msg.result.FileCount
		m.diagnostics = len(msg.result.Diagnostics)
		m.lastUpdate = time.Now()
		m.detail = nil
		m.refreshItems()
	}

	var cmd tea.Cmd
	m.recordList, cmd = m.recordList.Update(msg)
	return m, cmd
}

func (m *model) setView(view report.View) {
	m.view = view
	m.detail = nil
	m.refreshItems()
}

func (m *model) refreshItems() {
	m.selected = report.ForView(m.view, m.records, viewDefaults(m.cfg, m.view))

	items := make([]list.Item, 0, len(m.selected))
	for _, r := range m.selected {
		items = append(items, recordItem{record: r})
	}
	m.recordList.SetItems(items)
	m.recordList.Title = viewTitle(m.view)
}

func (m model) View() string {
	result := analysis.Result{Records: m.records}
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d modules | %d diagnostics",
		m.lastUpdate.Format("15:04:05"), m.fileCount, len(m.records), m.diagnostics))

	summary := fmt.Sprintf("%s | %s",
		hotCountStyle.Render(fmt.Sprintf("top score %d", result.TopScore())),
		deadCountStyle.Render(fmt.Sprintf("%d dead", result.DeadCount())))

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Burrow Module Monitor"), status, summary)
	help := statusStyle.Render("Keys: 1 hot | 2 dead | 3 cold | tab cycle | / filter | enter importers | esc back | q quit")

	body := m.recordList.View()
	if m.detail != nil {
		body = renderRecordDetail(*m.detail)
	}

	return docStyle.Render(header + "\n" + help + "\n\n" + body)
}

func renderRecordDetail(r analysis.Record) string {
	lines := []string{
		fmt.Sprintf("Module Detail: %s", r.Module),
		fmt.Sprintf("  File: %s", r.Path),
		fmt.Sprintf("  Depth: %d | Imports: %d | Score: %d", r.Depth, r.ImportCount, r.Score),
		fmt.Sprintf("  Imported by (%d):", len(r.Importers)),
	}
	for _, imp := range r.Importers {
		lines = append(lines, "    "+imp)
	}
	if len(r.Importers) == 0 {
		lines = append(lines, "    none")
	}
	lines = append(lines, "  Press esc to return to the list.")
	return strings.Join(lines, "\n")
}

func nextView(view report.View) report.View {
	switch view {
	case report.ViewHot:
		return report.ViewDead
	case report.ViewDead:
		return report.ViewCold
	default:
		return report.ViewHot
	}
}

func viewTitle(view report.View) string {
	switch view {
	case report.ViewDead:
		return "Dead Modules (never imported)"
	case report.ViewCold:
		return "Cold Modules (barely imported)"
	default:
		return "Hot Modules (buried and popular)"
	}
}

func initialModel(cfg *config.Config, view report.View) model {
	recordList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	recordList.Title = viewTitle(view)
	recordList.SetShowStatusBar(false)
	recordList.SetFilteringEnabled(true)

	return model{
		recordList: recordList,
		cfg:        cfg,
		view:       view,
		lastUpdate: time.Now(),
	}
}
