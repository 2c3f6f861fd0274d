package output

import "github.com/charmbracelet/lipgloss"

var (
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0099FF"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
	BoldStyle    = lipgloss.NewStyle().Bold(true)
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(1, 6).
			Align(lipgloss.Center)
)

// Banner renders the startup welcome box.
func Banner(version string) string {
	return bannerStyle.Render(
		BoldStyle.Render("Welcome to branchdiff!") + "\n" +
			"Compare a local branch with a remote one, file by file\n\n" +
			"Version: " + version,
	)
}
