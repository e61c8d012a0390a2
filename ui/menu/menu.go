package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/herald/router"
	"github.com/deemkeen/herald/ui/common"
	"github.com/rs/zerolog/log"
)

var (
	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_SECONDARY))

	instructionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(common.COLOR_DIM))
)

type Navigator interface {
	Navigate(segments ...any) error
}

// Model is the home screen: the menu routes of the route table.
type Model struct {
	navigator Navigator
	Items     []router.Route
	Selected  int
	Width     int
}

func New(routes []router.Route, navigator Navigator, width int) Model {
	m := Model{navigator: navigator, Width: width}
	for _, r := range routes {
		if r.Menu {
			m.Items = append(m.Items, r)
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Close has nothing to release; the menu holds no subscriptions.
func (m Model) Close() int {
	return 0
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "enter", "l":
		if m.Selected < len(m.Items) {
			if err := m.navigator.Navigate(m.Items[m.Selected].Pattern); err != nil {
				log.Warn().Err(err).Msg("navigation failed")
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(common.CaptionStyle.Render("menu"))
	s.WriteString("\n\n")

	for i, item := range m.Items {
		if i == m.Selected {
			s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(item.Title))
		} else {
			s.WriteString(common.ListUnselectedPrefix + itemStyle.Render(item.Title))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(instructionStyle.Render("↑/↓: select • enter: open • q: quit"))
	return s.String()
}
