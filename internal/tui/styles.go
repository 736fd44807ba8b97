// Package tui provides the interactive collect form and the configuration editor.
package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor  = lipgloss.AdaptiveColor{Light: "#1F6FEB", Dark: "#58A6FF"}
	okColor      = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	failColor    = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	dimColor     = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8B949E"}
	cautionColor = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}

	// TitleStyle heads the configuration editor
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)

	DescriptionStyle = lipgloss.NewStyle().Foreground(dimColor)
	SuccessStyle     = lipgloss.NewStyle().Bold(true).Foreground(okColor)
	ErrorStyle       = lipgloss.NewStyle().Foreground(failColor)
	WarnStyle        = lipgloss.NewStyle().Foreground(cautionColor)

	// SummaryBoxStyle frames a finished collection run
	SummaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(okColor).
			Padding(1, 2)

	// FailureBoxStyle frames the message of a failed run
	FailureBoxStyle = SummaryBoxStyle.BorderForeground(failColor)

	// MemberStyle lists one collected archive member per line
	MemberStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			PaddingLeft(2)

	SelectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	UnselectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	// HelpStyle shows the editor key bindings
	HelpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			MarginTop(1)

	// confirmStyle frames the unsaved changes prompt
	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cautionColor).
			Padding(1, 2)
)

// FormTheme returns the huh theme used by every form. Screen reader mode
// gets the plain base theme.
func FormTheme(accessible bool) *huh.Theme {
	if accessible {
		return huh.ThemeBase()
	}
	return huh.ThemeCharm()
}
