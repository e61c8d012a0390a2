package broadcastedit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/herald/domain"
	"github.com/deemkeen/herald/lifecycle"
	"github.com/deemkeen/herald/router"
	"github.com/deemkeen/herald/stream"
	"github.com/deemkeen/herald/ui/common"
	"github.com/deemkeen/herald/util"
	"github.com/rs/zerolog/log"
)

var ErrNotLoaded = errors.New("broadcast not loaded")

type BroadcastService interface {
	BroadcastByID(ctx context.Context, id int64) (domain.Broadcast, error)
	UpdateBroadcast(ctx context.Context, b domain.Broadcast) (domain.Broadcast, error)
	DeleteBroadcast(ctx context.Context, b domain.Broadcast) error
}

type UserStore interface {
	User() domain.User
}

type NavbarSource interface {
	Data(refresh bool) *stream.Subscription[[]domain.NavbarProjectData]
}

type RouteSource interface {
	Params() *stream.Subscription[router.Params]
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

type LevelSource interface {
	BroadcastLevels() []domain.BroadcastLevel
}

// Deps lists every collaborator of the edit screen.
type Deps struct {
	Broadcasts BroadcastService
	Users      UserStore
	Navbar     NavbarSource
	Route      RouteSource
	Navigator  Navigator
	Notifier   Notifier
	Translator Translator
	Levels     LevelSource
}

type Field int

const (
	FieldTitle Field = iota
	FieldContent
	FieldLevel
	FieldProject
	FieldArchived
	fieldCount
)

// Model edits one broadcast. Loading and DeleteLoading are each owned by one
// operation: set when it starts, cleared when its result arrives whatever
// the outcome.
type Model struct {
	deps   Deps
	scope  *lifecycle.Scope
	navbar *stream.Subscription[[]domain.NavbarProjectData]
	route  *stream.Subscription[router.Params]
	fetch   lifecycle.Handle
	loadSeq uint64

	Broadcast     *domain.Broadcast
	CurrentUser   domain.User
	CanEdit       bool
	Loading       bool
	DeleteLoading bool
	Levels        []string
	Projects      []domain.NavbarProjectData

	Field         Field
	TitleInput    textinput.Model
	ContentInput  textarea.Model
	LevelValue    string
	ProjectKey    string
	Archived      bool
	ConfirmDelete bool

	Width  int
	Height int
}

type navbarMsg struct {
	owner *lifecycle.Scope
	data  []domain.NavbarProjectData
}

type paramsMsg struct {
	owner  *lifecycle.Scope
	params router.Params
}

type loadedMsg struct {
	owner     *lifecycle.Scope
	seq       uint64
	id        int64
	broadcast domain.Broadcast
	err       error
}

type savedMsg struct {
	owner     *lifecycle.Scope
	broadcast domain.Broadcast
	err       error
}

type deletedMsg struct {
	owner *lifecycle.Scope
	err   error
}

// New builds the screen and subscribes to navigation data and route
// parameters. Both subscriptions live until Close.
func New(ctx context.Context, deps Deps, width, height int) Model {
	m := Model{
		deps:        deps,
		scope:       lifecycle.New(ctx),
		CurrentUser: deps.Users.User(),
		Width:       width,
		Height:      height,
	}
	for _, l := range deps.Levels.BroadcastLevels() {
		m.Levels = append(m.Levels, l.Key)
	}

	m.navbar = deps.Navbar.Data(true)
	m.scope.Track(m.navbar)
	m.route = deps.Route.Params()
	m.scope.Track(m.route)

	m.TitleInput = textinput.New()
	m.TitleInput.Placeholder = "Title"
	m.TitleInput.CharLimit = 256
	m.TitleInput.Width = common.TextInputDefaultWidth

	m.ContentInput = textarea.New()
	m.ContentInput.Placeholder = "Content"
	m.ContentInput.CharLimit = 0
	m.ContentInput.ShowLineNumbers = false
	m.ContentInput.SetWidth(common.TextInputDefaultWidth)
	m.ContentInput.SetHeight(util.TextAreaHeight(""))

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listenNavbar(), m.listenRoute())
}

// Close tears the screen down: every subscription and in-flight request is
// cancelled. It returns how many registrations were released; calling it
// again releases nothing.
func (m Model) Close() int {
	return m.scope.Close()
}

// Scope exposes the lifetime of the screen.
func (m Model) Scope() *lifecycle.Scope {
	return m.scope
}

func (m Model) listenNavbar() tea.Cmd {
	owner := m.scope
	return common.Listen(m.navbar, func(data []domain.NavbarProjectData) tea.Msg {
		return navbarMsg{owner: owner, data: data}
	})
}

func (m Model) listenRoute() tea.Cmd {
	owner := m.scope
	return common.Listen(m.route, func(p router.Params) tea.Msg {
		return paramsMsg{owner: owner, params: p}
	})
}

// settle runs op in a command and always turns its outcome into a message,
// a panic included, so the owning flag is always cleared.
func settle(op func() error, done func(error) tea.Msg) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = done(fmt.Errorf("unexpected failure: %v", r))
			}
		}()
		return done(op())
	}
}

// Load fetches broadcast id. A fetch still running is cancelled and only
// the result of the latest call is applied, even for the same id.
func (m Model) Load(id int64) (Model, tea.Cmd) {
	if m.fetch != nil {
		m.fetch.Cancel()
		m.scope.Forget(m.fetch)
	}
	ctx, cancel := context.WithCancel(m.scope.Context())
	fetch := m.scope.TrackFunc(cancel)
	m.fetch = fetch
	m.loadSeq++
	seq := m.loadSeq

	owner := m.scope
	svc := m.deps.Broadcasts
	var b domain.Broadcast
	return m, settle(func() error {
		defer owner.Forget(fetch)
		defer cancel()
		var err error
		b, err = svc.BroadcastByID(ctx, id)
		return err
	}, func(err error) tea.Msg {
		return loadedMsg{owner: owner, seq: seq, id: id, broadcast: b, err: err}
	})
}

// Save sends the form. It does nothing while a save is running, before the
// broadcast is loaded, or without edit permission.
func (m Model) Save() (Model, tea.Cmd) {
	if m.Loading || m.Broadcast == nil || !m.CanEdit {
		return m, nil
	}
	draft := m.Draft()
	m.Loading = true

	ctx := m.scope.Context()
	owner := m.scope
	svc := m.deps.Broadcasts
	var saved domain.Broadcast
	return m, settle(func() error {
		var err error
		saved, err = svc.UpdateBroadcast(ctx, draft)
		return err
	}, func(err error) tea.Msg {
		return savedMsg{owner: owner, broadcast: saved, err: err}
	})
}

// Delete removes the loaded broadcast, under the same rules as Save but
// with its own flag.
func (m Model) Delete() (Model, tea.Cmd) {
	m.ConfirmDelete = false
	if m.DeleteLoading || m.Broadcast == nil || !m.CanEdit {
		return m, nil
	}
	target := *m.Broadcast
	m.DeleteLoading = true

	ctx := m.scope.Context()
	owner := m.scope
	svc := m.deps.Broadcasts
	return m, settle(func() error {
		return svc.DeleteBroadcast(ctx, target)
	}, func(err error) tea.Msg {
		return deletedMsg{owner: owner, err: err}
	})
}

// ContentHeight is the number of rows the content editor needs for the
// loaded broadcast.
func (m Model) ContentHeight() (int, error) {
	if m.Broadcast == nil {
		return 0, ErrNotLoaded
	}
	return util.TextAreaHeight(m.Broadcast.Content), nil
}

// Draft is the loaded broadcast with the form values applied.
func (m Model) Draft() domain.Broadcast {
	if m.Broadcast == nil {
		return domain.Broadcast{}
	}
	b := *m.Broadcast
	b.Title = strings.TrimSpace(m.TitleInput.Value())
	b.Content = m.ContentInput.Value()
	b.Level = m.LevelValue
	b.ProjectKey = m.ProjectKey
	b.Archived = m.Archived
	return b
}

func (m *Model) fillForm(b domain.Broadcast) {
	m.TitleInput.SetValue(b.Title)
	m.ContentInput.SetValue(b.Content)
	if h, err := m.ContentHeight(); err == nil {
		m.ContentInput.SetHeight(h)
	}
	m.LevelValue = b.Level
	m.ProjectKey = b.ProjectKey
	m.Archived = b.Archived
}

func (m *Model) notifyError(err error) {
	m.deps.Notifier.Error(m.deps.Translator.Instant("common_error"), err.Error())
}

func (m *Model) navigate(segments ...any) {
	if err := m.deps.Navigator.Navigate(segments...); err != nil {
		log.Warn().Err(err).Msg("navigation failed")
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case navbarMsg:
		if msg.owner != m.scope {
			return m, nil
		}
		m.Projects = domain.ProjectChoices(msg.data)
		m.CurrentUser = m.deps.Users.User()
		return m, m.listenNavbar()

	case paramsMsg:
		if msg.owner != m.scope {
			return m, nil
		}
		id, err := strconv.ParseInt(msg.params.Get("id"), 10, 64)
		if err != nil {
			m.notifyError(fmt.Errorf("%s: %q", m.deps.Translator.Instant("broadcast_invalid_id"), msg.params.Get("id")))
			return m, m.listenRoute()
		}
		var load tea.Cmd
		m, load = m.Load(id)
		return m, tea.Batch(load, m.listenRoute())

	case loadedMsg:
		if msg.owner != m.scope || msg.seq != m.loadSeq {
			return m, nil
		}
		m.fetch = nil
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				log.Debug().Int64("id", msg.id).Msg("broadcast fetch cancelled")
				return m, nil
			}
			if !m.scope.Closed() {
				m.notifyError(msg.err)
			}
			return m, nil
		}
		b := msg.broadcast
		m.Broadcast = &b
		m.fillForm(b)
		// Only ever granted here; a non admin keeps a permission granted
		// for an earlier broadcast.
		if m.CurrentUser.Admin {
			m.CanEdit = true
		}
		m.focusField()
		return m, nil

	case savedMsg:
		if msg.owner != m.scope {
			return m, nil
		}
		m.Loading = false
		if m.scope.Closed() {
			return m, nil
		}
		if msg.err != nil {
			m.notifyError(msg.err)
			return m, nil
		}
		b := msg.broadcast
		m.Broadcast = &b
		m.fillForm(b)
		m.deps.Notifier.Success("", m.deps.Translator.Instant("broadcast_saved"))
		m.navigate("admin", "broadcast", b.ID)
		return m, nil

	case deletedMsg:
		if msg.owner != m.scope {
			return m, nil
		}
		m.DeleteLoading = false
		if m.scope.Closed() {
			return m, nil
		}
		if msg.err != nil {
			m.notifyError(msg.err)
			return m, nil
		}
		m.deps.Notifier.Success("", m.deps.Translator.Instant("broadcast_deleted"))
		m.navigate("admin", "broadcast")
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.ConfirmDelete {
		switch msg.String() {
		case "y", "Y":
			return m.Delete()
		default:
			m.ConfirmDelete = false
			return m, nil
		}
	}

	switch msg.String() {
	case "esc":
		m.navigate("admin", "broadcast")
		return m, nil
	case "ctrl+s":
		return m.Save()
	case "ctrl+d":
		if m.CanEdit && m.Broadcast != nil && !m.DeleteLoading {
			m.ConfirmDelete = true
		}
		return m, nil
	case "tab":
		m.Field = (m.Field + 1) % fieldCount
		m.focusField()
		return m, nil
	case "shift+tab":
		m.Field = (m.Field + fieldCount - 1) % fieldCount
		m.focusField()
		return m, nil
	}

	if !m.CanEdit || m.Broadcast == nil {
		return m, nil
	}

	switch m.Field {
	case FieldLevel:
		switch msg.String() {
		case "left", "h":
			m.LevelValue = cycle(m.Levels, m.LevelValue, -1)
		case "right", "l", " ":
			m.LevelValue = cycle(m.Levels, m.LevelValue, 1)
		}
		return m, nil
	case FieldProject:
		keys := make([]string, len(m.Projects))
		for i, p := range m.Projects {
			keys[i] = p.Key
		}
		switch msg.String() {
		case "left", "h":
			m.ProjectKey = cycle(keys, m.ProjectKey, -1)
		case "right", "l", " ":
			m.ProjectKey = cycle(keys, m.ProjectKey, 1)
		}
		return m, nil
	case FieldArchived:
		switch msg.String() {
		case " ", "enter", "x":
			m.Archived = !m.Archived
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.Field {
	case FieldTitle:
		m.TitleInput, cmd = m.TitleInput.Update(msg)
	case FieldContent:
		m.ContentInput, cmd = m.ContentInput.Update(msg)
		m.ContentInput.SetHeight(util.TextAreaHeight(m.ContentInput.Value()))
	}
	return m, cmd
}

func (m *Model) focusField() {
	m.TitleInput.Blur()
	m.ContentInput.Blur()
	if !m.CanEdit {
		return
	}
	switch m.Field {
	case FieldTitle:
		m.TitleInput.Focus()
	case FieldContent:
		m.ContentInput.Focus()
	}
}

// cycle moves from current to the neighbour in values, wrapping around.
// An unknown current value starts from the first entry.
func cycle(values []string, current string, step int) string {
	if len(values) == 0 {
		return current
	}
	idx := -1
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return values[0]
	}
	return values[(idx+step+len(values))%len(values)]
}
