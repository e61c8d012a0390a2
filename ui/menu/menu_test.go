package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/herald/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct{ paths []string }

func (r *recorder) Navigate(segments ...any) error {
	for _, s := range segments {
		r.paths = append(r.paths, s.(string))
	}
	return nil
}

func TestMenuListsMenuRoutes(t *testing.T) {
	m := New(router.Table, &recorder{}, 80)
	require.Len(t, m.Items, 2)
	assert.Equal(t, router.RouteBroadcastList, m.Items[0].Name)
	assert.Equal(t, router.RouteProfile, m.Items[1].Name)

	view := m.View()
	assert.Contains(t, view, "Broadcasts")
	assert.Contains(t, view, "Profile")
	assert.NotContains(t, view, "Edit broadcast")
}

func TestMenuNavigates(t *testing.T) {
	nav := &recorder{}
	m := New(router.Table, nav, 80)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Selected, "selection stops at the last item")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"settings/profile", "admin/broadcast"}, nav.paths)
	assert.Equal(t, 0, m.Close())
}
