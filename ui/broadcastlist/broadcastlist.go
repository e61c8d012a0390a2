package broadcastlist

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/herald/domain"
	"github.com/deemkeen/herald/lifecycle"
	"github.com/deemkeen/herald/ui/common"
	"github.com/deemkeen/herald/util"
	"github.com/rs/zerolog/log"
)

type BroadcastService interface {
	Broadcasts(ctx context.Context) ([]domain.Broadcast, error)
	CreateBroadcast(ctx context.Context, b domain.Broadcast) (domain.Broadcast, error)
}

type UserStore interface {
	User() domain.User
}

type Navigator interface {
	Navigate(segments ...any) error
}

type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}

type Translator interface {
	Instant(key string) string
}

type Deps struct {
	Broadcasts BroadcastService
	Users      UserStore
	Navigator  Navigator
	Notifier   Notifier
	Translator Translator
}

type Model struct {
	deps  Deps
	scope *lifecycle.Scope

	Broadcasts []domain.Broadcast
	Selected   int
	Offset     int
	Loading    bool
	Creating   bool
	Error      string

	Width  int
	Height int
}

type loadedMsg struct {
	owner      *lifecycle.Scope
	broadcasts []domain.Broadcast
	err        error
}

type createdMsg struct {
	owner     *lifecycle.Scope
	broadcast domain.Broadcast
	err       error
}

func New(ctx context.Context, deps Deps, width, height int) Model {
	return Model{
		deps:    deps,
		scope:   lifecycle.New(ctx),
		Loading: true,
		Width:   width,
		Height:  height,
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

func (m Model) Close() int {
	return m.scope.Close()
}

// Reload fetches the list again. While a fetch runs further reloads are
// ignored.
func (m Model) Reload() (Model, tea.Cmd) {
	if m.Loading {
		return m, nil
	}
	m.Loading = true
	return m, m.fetch()
}

func (m Model) fetch() tea.Cmd {
	ctx := m.scope.Context()
	owner := m.scope
	svc := m.deps.Broadcasts
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = loadedMsg{owner: owner, err: fmt.Errorf("unexpected failure: %v", r)}
			}
		}()
		items, err := svc.Broadcasts(ctx)
		return loadedMsg{owner: owner, broadcasts: items, err: err}
	}
}

// Create stores an empty draft and opens it in the editor.
func (m Model) Create() (Model, tea.Cmd) {
	if m.Creating || !m.deps.Users.User().Admin {
		return m, nil
	}
	m.Creating = true
	draft := domain.Broadcast{
		Title: m.deps.Translator.Instant("broadcast_draft_title"),
		Level: domain.LevelInfo,
	}
	ctx := m.scope.Context()
	owner := m.scope
	svc := m.deps.Broadcasts
	return m, func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = createdMsg{owner: owner, err: fmt.Errorf("unexpected failure: %v", r)}
			}
		}()
		b, err := svc.CreateBroadcast(ctx, draft)
		return createdMsg{owner: owner, broadcast: b, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case loadedMsg:
		if msg.owner != m.scope {
			return m, nil
		}
		m.Loading = false
		if m.scope.Closed() {
			return m, nil
		}
		if msg.err != nil {
			m.Error = msg.err.Error()
			m.deps.Notifier.Error(m.deps.Translator.Instant("common_error"), msg.err.Error())
			return m, nil
		}
		m.Error = ""
		m.Broadcasts = msg.broadcasts
		if m.Selected >= len(m.Broadcasts) {
			m.Selected = max(len(m.Broadcasts)-1, 0)
		}
		m.Offset = min(m.Offset, m.Selected)

	case createdMsg:
		if msg.owner != m.scope {
			return m, nil
		}
		m.Creating = false
		if m.scope.Closed() {
			return m, nil
		}
		if msg.err != nil {
			m.deps.Notifier.Error(m.deps.Translator.Instant("common_error"), msg.err.Error())
			return m, nil
		}
		m.deps.Notifier.Success("", m.deps.Translator.Instant("broadcast_created"))
		m.navigate("admin", "broadcast", msg.broadcast.ID)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
				if m.Selected < m.Offset {
					m.Offset = m.Selected
				}
			}
		case "down", "j":
			if m.Selected < len(m.Broadcasts)-1 {
				m.Selected++
				if m.Selected >= m.Offset+common.DefaultItemsPerPage {
					m.Offset = m.Selected - common.DefaultItemsPerPage + 1
				}
			}
		case "enter", "e":
			if b, ok := m.current(); ok {
				m.navigate("admin", "broadcast", b.ID)
			}
		case "n":
			return m.Create()
		case "r":
			return m.Reload()
		case "esc":
			m.navigate("")
		}
	}
	return m, nil
}

func (m Model) current() (domain.Broadcast, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Broadcasts) {
		return domain.Broadcast{}, false
	}
	return m.Broadcasts[m.Selected], true
}

func (m *Model) navigate(segments ...any) {
	if err := m.deps.Navigator.Navigate(segments...); err != nil {
		log.Warn().Err(err).Msg("navigation failed")
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("broadcasts (%d)", len(m.Broadcasts))))
	s.WriteString("\n\n")

	if len(m.Broadcasts) == 0 {
		if m.Loading {
			s.WriteString(common.ListEmptyStyle.Render(m.deps.Translator.Instant("common_loading")))
		} else {
			s.WriteString(common.ListEmptyStyle.Render(m.deps.Translator.Instant("broadcast_list_empty")))
		}
		s.WriteString("\n")
	}

	start := m.Offset
	end := min(start+common.DefaultItemsPerPage, len(m.Broadcasts))
	titleWidth := max(common.DefaultWindowWidth(m.Width)-40, 10)

	for i := start; i < end; i++ {
		b := m.Broadcasts[i]
		title := util.TruncateWidth(b.Title, titleWidth)

		badge := common.ListBadgeStyle.Render(fmt.Sprintf(" [%s]", b.Scope()))
		if b.Level == domain.LevelWarning {
			badge = common.ListBadgeWarningStyle.Render(" [!]") + badge
		}
		if b.Archived {
			badge += common.ListBadgeMutedStyle.Render(" archived")
		}
		age := common.ListBadgeMutedStyle.Render(" " + util.FormatTimeAgo(b.Created))

		if i == m.Selected {
			s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(title))
		} else {
			s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(title))
		}
		s.WriteString(badge + age + "\n")
	}

	if len(m.Broadcasts) > common.DefaultItemsPerPage {
		s.WriteString("\n")
		s.WriteString(common.ListBadgeStyle.Render(fmt.Sprintf("showing %d-%d of %d", start+1, end, len(m.Broadcasts))))
		s.WriteString("\n")
	}

	if m.Error != "" {
		s.WriteString("\n")
		s.WriteString(common.ListErrorStyle.Render(m.Error))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	help := "enter: edit • r: reload • esc: menu"
	if m.deps.Users.User().Admin {
		help = "enter: edit • n: new • r: reload • esc: menu"
	}
	s.WriteString(common.ListBadgeMutedStyle.Render(help))

	return s.String()
}
