package profile

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/herald/domain"
	"github.com/deemkeen/herald/lifecycle"
	"github.com/deemkeen/herald/ui/common"
	"github.com/rs/zerolog/log"
)

type UserStore interface {
	User() domain.User
	SetUser(u domain.User)
}

type UserAPI interface {
	UserMe(ctx context.Context) (domain.User, error)
}

type Notifier interface {
	Error(title, message string)
}

type Navigator interface {
	Navigate(segments ...any) error
}

type Deps struct {
	Users     UserStore
	API       UserAPI
	Notifier  Notifier
	Navigator Navigator
	Language  string
}

// Model shows the authenticated user. r fetches the profile again.
type Model struct {
	deps       Deps
	scope      *lifecycle.Scope
	User       domain.User
	Refreshing bool
}

type refreshedMsg struct {
	owner *lifecycle.Scope
	user  domain.User
	err   error
}

func New(ctx context.Context, deps Deps) Model {
	return Model{
		deps:  deps,
		scope: lifecycle.New(ctx),
		User:  deps.Users.User(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Close() int {
	return m.scope.Close()
}

func (m Model) Refresh() (Model, tea.Cmd) {
	if m.Refreshing {
		return m, nil
	}
	m.Refreshing = true
	ctx := m.scope.Context()
	owner := m.scope
	api := m.deps.API
	return m, func() tea.Msg {
		u, err := api.UserMe(ctx)
		return refreshedMsg{owner: owner, user: u, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		if msg.owner != m.scope {
			return m, nil
		}
		m.Refreshing = false
		if m.scope.Closed() {
			return m, nil
		}
		if msg.err != nil {
			m.deps.Notifier.Error("profile", msg.err.Error())
			return m, nil
		}
		m.deps.Users.SetUser(msg.user)
		m.User = msg.user
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m.Refresh()
		case "esc":
			if err := m.deps.Navigator.Navigate(""); err != nil {
				log.Warn().Err(err).Msg("navigation failed")
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(common.CaptionStyle.Render("profile"))
	s.WriteString("\n\n")

	row := func(label, value string) {
		s.WriteString(common.FieldLabelStyle.Render(label))
		s.WriteString(value)
		s.WriteString("\n")
	}
	row("username", common.UsernameStyle.Render("@"+m.User.Username))
	row("name", m.User.Fullname)
	row("email", m.User.Email)
	role := "user"
	if m.User.Admin {
		role = "admin"
	}
	row("role", common.ListBadgeStyle.Render(role))
	row("language", m.deps.Language)

	s.WriteString("\n")
	if m.Refreshing {
		s.WriteString(common.ListStatusStyle.Render("refreshing…"))
	} else {
		s.WriteString(common.ListBadgeMutedStyle.Render(fmt.Sprintf("r: refresh • esc: menu (id %d)", m.User.ID)))
	}
	return s.String()
}
