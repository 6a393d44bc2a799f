package cliapp

import (
	"burrow/internal/core/config"
	"burrow/internal/engine/analysis"
	"burrow/internal/report"

	tea "github.com/charmbracelet/bubbletea"
)

func runUI(cfg *config.Config, view report.View, first *analysis.Result, register func(func(*analysis.Result))) error {
	m := initialModel(cfg, view)
	p := tea.NewProgram(m, tea.WithAltScreen())

	register(func(result *analysis.Result) {
		p.Send(resultMsg{result: result})
	})

	go p.Send(resultMsg{result: first})

	_, err := p.Run()
	return err
}
