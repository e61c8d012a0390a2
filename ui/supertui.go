package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/herald/i18n"
	"github.com/deemkeen/herald/lifecycle"
	"github.com/deemkeen/herald/router"
	"github.com/deemkeen/herald/services"
	"github.com/deemkeen/herald/stream"
	"github.com/deemkeen/herald/ui/broadcastedit"
	"github.com/deemkeen/herald/ui/broadcastlist"
	"github.com/deemkeen/herald/ui/common"
	"github.com/deemkeen/herald/ui/menu"
	"github.com/deemkeen/herald/ui/profile"
	"github.com/deemkeen/herald/util"
	"github.com/rs/zerolog/log"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_WHITE)).
			Background(lipgloss.Color(common.COLOR_ACCENT)).
			Bold(true).
			Padding(0, 1)

	modelStyle = lipgloss.NewStyle().
			Align(lipgloss.Left, lipgloss.Top).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_ACCENT)).
			MarginLeft(1).
			Padding(0, 1)
)

// Services are shared by every session of the process.
type Services struct {
	Broadcasts *services.BroadcastService
	Users      *services.AuthStore
	UserAPI    services.UserAPI
	Navbar     *services.NavbarService
	Levels     services.LevelService
	Translator *i18n.Translator
	Config     *util.AppConfig
}

// screen is the active page of a session.
type screen interface {
	View() string
	Close() int
}

type changeMsg struct {
	change router.Change
}

type toastMsg struct {
	toast common.Toast
}

type clearToastMsg struct {
	at time.Time
}

// MainModel is the shell of a session: it owns the router and the toaster,
// swaps screens on route changes and shows toasts.
type MainModel struct {
	svc     Services
	scope   *lifecycle.Scope
	router  *router.Router
	toaster *common.Toaster
	changes *stream.Subscription[router.Change]
	toasts  *stream.Subscription[common.Toast]

	route   router.Change
	current screen
	release lifecycle.Handle
	toast   *common.Toast

	width  int
	height int
}

// NewModel builds a session shell opened on start ("" for the menu). The
// session is torn down when ctx ends or Close is called.
func NewModel(ctx context.Context, svc Services, start string, width, height int) MainModel {
	m := MainModel{
		svc:     svc,
		scope:   lifecycle.New(ctx),
		router:  router.New(router.Table),
		toaster: common.NewToaster(),
		width:   common.DefaultWindowWidth(width),
		height:  common.DefaultWindowHeight(height),
	}
	if start != "" {
		if err := m.router.Navigate(start); err != nil {
			log.Warn().Err(err).Str("path", start).Msg("unknown start path")
		}
	}

	m.scope.TrackFunc(m.router.Close)
	m.scope.TrackFunc(m.toaster.Close)
	m.changes = m.router.Changes()
	m.scope.Track(m.changes)
	m.toasts = m.toaster.Subscribe()
	m.scope.Track(m.toasts)

	scope := m.scope
	stop := context.AfterFunc(scope.Context(), func() { scope.Close() })
	m.scope.TrackFunc(func() { stop() })
	return m
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(m.listenChanges(), m.listenToasts())
}

// Close ends the session: the active screen and every subscription of the
// shell are released. Later calls do nothing.
func (m MainModel) Close() int {
	return m.scope.Close()
}

func (m MainModel) Router() *router.Router {
	return m.router
}

func (m MainModel) listenChanges() tea.Cmd {
	return common.Listen(m.changes, func(c router.Change) tea.Msg {
		return changeMsg{change: c}
	})
}

func (m MainModel) listenToasts() tea.Cmd {
	return common.Listen(m.toasts, func(t common.Toast) tea.Msg {
		return toastMsg{toast: t}
	})
}

// open replaces the active screen with the one of change.
func (m *MainModel) open(change router.Change) tea.Cmd {
	if m.current != nil {
		m.scope.Forget(m.release)
		released := m.current.Close()
		log.Debug().Str("route", m.route.Route.Name).Int("released", released).Msg("screen closed")
	}
	m.route = change

	ctx := m.scope.Context()
	width, height := m.width, m.height-4

	var cmd tea.Cmd
	switch change.Route.Name {
	case router.RouteBroadcastList:
		s := broadcastlist.New(ctx, broadcastlist.Deps{
			Broadcasts: m.svc.Broadcasts,
			Users:      m.svc.Users,
			Navigator:  m.router,
			Notifier:   m.toaster,
			Translator: m.svc.Translator,
		}, width, height)
		m.current, cmd = s, s.Init()
	case router.RouteBroadcastEdit:
		s := broadcastedit.New(ctx, broadcastedit.Deps{
			Broadcasts: m.svc.Broadcasts,
			Users:      m.svc.Users,
			Navbar:     m.svc.Navbar,
			Route:      m.router,
			Navigator:  m.router,
			Notifier:   m.toaster,
			Translator: m.svc.Translator,
			Levels:     m.svc.Levels,
		}, width, height)
		m.current, cmd = s, s.Init()
	case router.RouteProfile:
		s := profile.New(ctx, profile.Deps{
			Users:     m.svc.Users,
			API:       m.svc.UserAPI,
			Notifier:  m.toaster,
			Navigator: m.router,
			Language:  m.svc.Translator.Language(),
		})
		m.current, cmd = s, s.Init()
	default:
		s := menu.New(router.Table, m.router, width)
		m.current, cmd = s, s.Init()
	}

	// The shell scope releases the screen when the session ends.
	active := m.current
	m.release = m.scope.TrackFunc(func() { active.Close() })
	return cmd
}

func (m *MainModel) updateScreen(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s := m.current.(type) {
	case broadcastlist.Model:
		m.current, cmd = s.Update(msg)
	case broadcastedit.Model:
		m.current, cmd = s.Update(msg)
	case profile.Model:
		m.current, cmd = s.Update(msg)
	case menu.Model:
		m.current, cmd = s.Update(msg)
	}
	return cmd
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changeMsg:
		if m.scope.Closed() {
			return m, nil
		}
		return m, tea.Batch(m.open(msg.change), m.listenChanges())

	case toastMsg:
		t := msg.toast
		m.toast = &t
		d := time.Duration(m.toastSeconds()) * time.Second
		return m, tea.Batch(m.listenToasts(), tea.Tick(d, func(time.Time) tea.Msg {
			return clearToastMsg{at: t.At}
		}))

	case clearToastMsg:
		if m.toast != nil && m.toast.At.Equal(msg.at) {
			m.toast = nil
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.updateScreen(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4})

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.Close()
			return m, tea.Quit
		case "alt+left":
			if err := m.router.Back(); err != nil {
				log.Warn().Err(err).Msg("back")
			}
			return m, nil
		case "q":
			if m.route.Route.Name == router.RouteHome {
				m.Close()
				return m, tea.Quit
			}
		}
	}

	return m, m.updateScreen(msg)
}

func (m MainModel) toastSeconds() int {
	if m.svc.Config == nil || m.svc.Config.Conf.ToastSeconds <= 0 {
		return 4
	}
	return m.svc.Config.Conf.ToastSeconds
}

func (m MainModel) header() string {
	user := m.svc.Users.User()
	title := m.route.Route.Title
	if title == "" {
		title = "Home"
	}
	left := fmt.Sprintf("%s │ %s", util.GetNameAndVersion(), title)
	right := "@" + user.Username
	if user.Admin {
		right += " (admin)"
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-4, 1)
	return headerStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m MainModel) View() string {
	if m.width < common.MinWindowWidth || m.height < common.MinWindowHeight {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color(common.COLOR_ERROR)).
			Bold(true).
			Render(fmt.Sprintf("Terminal too small!\n\nMinimum required: %dx%d\nCurrent size: %dx%d",
				common.MinWindowWidth, common.MinWindowHeight, m.width, m.height))
	}

	var s strings.Builder
	s.WriteString(m.header())
	s.WriteString("\n")

	body := ""
	if m.current != nil {
		body = m.current.View()
	}
	s.WriteString(modelStyle.Width(m.width - 4).Height(m.height - 5).Render(body))
	s.WriteString("\n")

	if m.toast != nil {
		s.WriteString(" " + m.toast.Render())
	}
	return s.String()
}
