package common

import "github.com/charmbracelet/lipgloss"

const (
	COLOR_ACCENT    = "69"
	COLOR_WHITE     = "255"
	COLOR_DIM       = "241"
	COLOR_SECONDARY = "105"
	COLOR_SUCCESS   = "42"
	COLOR_WARNING   = "214"
	COLOR_ERROR     = "196"
	COLOR_USERNAME  = "48"
)

const (
	DefaultItemsPerPage   = 10
	TextInputDefaultWidth = 60
	MinWindowWidth        = 80
	MinWindowHeight       = 24
)

const (
	ListSelectedPrefix   = "▶ "
	ListUnselectedPrefix = "  "
)

var (
	CaptionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_ACCENT)).
			Bold(true)

	ListItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_WHITE))

	ListItemSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_ACCENT)).
				Bold(true)

	ListEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_DIM)).
			Italic(true)

	ListBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_SECONDARY))

	ListBadgeMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_DIM))

	ListBadgeWarningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_WARNING)).
				Bold(true)

	ListStatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_SUCCESS))

	ListErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_ERROR))

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_DIM)).
			Width(10)

	UsernameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_USERNAME))
)

func DefaultWindowWidth(width int) int {
	if width < MinWindowWidth {
		return MinWindowWidth
	}
	return width
}

func DefaultWindowHeight(height int) int {
	if height < MinWindowHeight {
		return MinWindowHeight
	}
	return height
}
