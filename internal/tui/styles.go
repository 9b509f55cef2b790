package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Base    lipgloss.Style
	Header  lipgloss.Style
	Phase   lipgloss.Style
	Time    lipgloss.Style
	Prompt  lipgloss.Style
	Walk    lipgloss.Style
	Dim     lipgloss.Style
	Message lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Base:    lipgloss.NewStyle().Margin(1, 2),
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true),
		Phase:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Time:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		Prompt:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208")).Padding(0, 1),
		Walk:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Message: lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
	}
}
