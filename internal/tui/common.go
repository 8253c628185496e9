package tui

import "github.com/charmbracelet/lipgloss"

// Color palette matching the fatih/color output of the plain commands.
var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}
	ColorCyan   = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}
	ColorWhite  = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}
	ColorGray   = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
)

var (
	// StyleHeader is for the title bar.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	// StyleTitle is for book titles.
	StyleTitle = lipgloss.NewStyle().Foreground(ColorWhite).Bold(true)

	// StyleMeta is for ids, dates and other secondary text.
	StyleMeta = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleCategory is for category tags.
	StyleCategory = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleError is for the retained last-error line.
	StyleError = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleHelp is for the footer hints.
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	statusStyles = map[string]lipgloss.Style{
		"want-to-read": lipgloss.NewStyle().Foreground(ColorCyan),
		"reading":      lipgloss.NewStyle().Foreground(ColorYellow),
		"read":         lipgloss.NewStyle().Foreground(ColorGreen),
	}
)
