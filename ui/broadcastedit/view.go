package broadcastedit

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/herald/domain"
	"github.com/deemkeen/herald/ui/common"
)

var (
	focusedLabelStyle = common.FieldLabelStyle.
				Foreground(lipgloss.Color(common.COLOR_ACCENT)).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM))
)

func (m Model) View() string {
	var s strings.Builder

	if m.Broadcast == nil {
		s.WriteString(common.CaptionStyle.Render("edit broadcast"))
		s.WriteString("\n\n")
		s.WriteString(common.ListEmptyStyle.Render(m.deps.Translator.Instant("common_loading")))
		return s.String()
	}

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("edit broadcast #%d", m.Broadcast.ID)))
	s.WriteString("\n\n")

	s.WriteString(m.label(FieldTitle, "title"))
	s.WriteString(m.TitleInput.View())
	s.WriteString("\n")

	s.WriteString(m.label(FieldContent, "content"))
	s.WriteString("\n")
	s.WriteString(m.ContentInput.View())
	s.WriteString("\n")

	s.WriteString(m.label(FieldLevel, "level"))
	level := common.ListBadgeStyle
	if m.LevelValue == domain.LevelWarning {
		level = common.ListBadgeWarningStyle
	}
	s.WriteString("‹ " + level.Render(m.LevelValue) + " ›")
	s.WriteString("\n")

	s.WriteString(m.label(FieldProject, "project"))
	s.WriteString("‹ " + common.ListBadgeStyle.Render(m.projectName()) + " ›")
	s.WriteString("\n")

	s.WriteString(m.label(FieldArchived, "archived"))
	if m.Archived {
		s.WriteString("[x]")
	} else {
		s.WriteString("[ ]")
	}
	s.WriteString("\n\n")

	switch {
	case m.ConfirmDelete:
		s.WriteString(common.ListErrorStyle.Render(m.deps.Translator.Instant("broadcast_delete_confirm")))
	case m.Loading:
		s.WriteString(common.ListStatusStyle.Render("saving…"))
	case m.DeleteLoading:
		s.WriteString(common.ListStatusStyle.Render("deleting…"))
	case !m.CanEdit:
		s.WriteString(common.ListBadgeMutedStyle.Render(m.deps.Translator.Instant("broadcast_read_only")))
	default:
		s.WriteString(helpStyle.Render("tab: next field • ctrl+s: save • ctrl+d: delete • esc: back"))
	}

	return s.String()
}

func (m Model) label(f Field, text string) string {
	if m.Field == f {
		return focusedLabelStyle.Render(text)
	}
	return common.FieldLabelStyle.Render(text)
}

func (m Model) projectName() string {
	if m.ProjectKey == "" {
		return "all projects"
	}
	for _, p := range m.Projects {
		if p.Key == m.ProjectKey {
			return p.Name
		}
	}
	return m.ProjectKey
}
