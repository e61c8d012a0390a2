package common

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/herald/stream"
)

// Listen waits for the next value of sub and wraps it with wrap. It returns
// nil once the subscription is cancelled, which ends the listening loop:
// the Update handling the wrapped message re-issues Listen to keep going.
func Listen[T any](sub *stream.Subscription[T], wrap func(T) tea.Msg) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		v, ok := <-sub.C()
		if !ok {
			return nil
		}
		return wrap(v)
	}
}
