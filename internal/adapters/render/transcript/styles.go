package transcript

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	active    lipgloss.Style
	session   lipgloss.Style
	detail    lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
	user      lipgloss.Style
	agent     lipgloss.Style
	system    lipgloss.Style
	timestamp lipgloss.Style
	body      lipgloss.Style
	status    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		active:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		session:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
		user:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		agent:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		system:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		body:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(2),
		status:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250")),
	}
}
