package middleware

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/deemkeen/herald/cli"
	"github.com/deemkeen/herald/ui"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

// MainTui starts one console per session. api serves the non-interactive
// commands.
func MainTui(svc ui.Services, api cli.API) wish.Middleware {
	teaHandler := func(s ssh.Session) *tea.Program {
		// Check for CLI command first (non-interactive mode)
		if cmd := s.Command(); len(cmd) > 0 {
			handleCLI(s, svc, api, cmd)
			return nil
		}

		pty, _, active := s.Pty()
		if !active {
			wish.Println(s, "no active terminal, skipping")
			return nil
		}

		// Set the global color profile to ANSI256 for Docker compatibility
		lipgloss.SetColorProfile(termenv.ANSI256)

		// The session context ends with the connection, which tears the
		// console down.
		m := ui.NewModel(s.Context(), svc, "", pty.Window.Width, pty.Window.Height)
		log.Debug().Str("user", s.User()).Msg("starting console")
		return tea.NewProgram(m, tea.WithFPS(60), tea.WithInput(s), tea.WithOutput(s), tea.WithAltScreen())
	}
	return bm.MiddlewareWithProgramHandler(teaHandler, termenv.ANSI256)
}

// handleCLI processes CLI commands in non-interactive mode
func handleCLI(s ssh.Session, svc ui.Services, api cli.API, cmd []string) {
	handler := cli.NewHandler(s, api, svc.Users.User(), svc.Config)
	if err := handler.Execute(s.Context(), cmd); err != nil {
		log.Debug().Err(err).Strs("cmd", cmd).Msg("cli command failed")
	}
}
