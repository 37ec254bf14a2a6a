package terminal

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by Screen and Host.
type Styles struct {
	Title    lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style
	Text     lipgloss.Style
	Image    lipgloss.Style
	Muted    lipgloss.Style
	Alert    lipgloss.Style
	Prompt   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns the built-in styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Button:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3B82F6")).Padding(0, 2),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Background(lipgloss.Color("#E5E7EB")).Padding(0, 2),
		Text:     lipgloss.NewStyle(),
		Image:    lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB")).Underline(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Alert:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B45309")),
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#059669")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")),
	}
}
