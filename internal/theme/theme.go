package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Bar               *lipgloss.Style
	BarItem           *lipgloss.Style
	BarItemActive     *lipgloss.Style
	MenuBorder        *lipgloss.Style
	Item              *lipgloss.Style
	ItemFocused       *lipgloss.Style
	ItemDisabled      *lipgloss.Style
	ItemMarker        *lipgloss.Style
	SubmenuArrow      *lipgloss.Style
	Header            *lipgloss.Style
	HeaderSeparator   *lipgloss.Style
	Info              *lipgloss.Style
	Error             *lipgloss.Style
	Footer            *lipgloss.Style
	Hint              *lipgloss.Style
	HelpKey           *lipgloss.Style
	HelpDesc          *lipgloss.Style
	ContextAreaBorder *lipgloss.Style
}

var defaultStyles = Styles{
	Bar: ptr(
		lipgloss.NewStyle().Background(lipgloss.Color("236")),
	),
	BarItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("236")),
	),
	BarItemActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	MenuBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	ItemDisabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	ItemMarker: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	SubmenuArrow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	HeaderSeparator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	HelpKey: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	HelpDesc: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ContextAreaBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
