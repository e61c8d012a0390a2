package util

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging configures the global zerolog logger. Output goes to w
// (stderr when nil), human readable on terminals and JSON otherwise. With
// withJournald and a reachable journal, records are sent to journald instead.
func SetupLogging(level string, withJournald bool, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorFieldName = "err"

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if w == nil {
		w = os.Stderr
	}

	var out io.Writer = w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	if withJournald {
		if journal.Enabled() {
			out = journalWriter{}
		} else {
			log.Warn().Msg("journald requested but not available, logging to stderr")
		}
	}

	log.Logger = zerolog.New(out).Level(lvl).With().Timestamp().Str("app", Name).Logger()
}

// journalWriter forwards zerolog records to the systemd journal.
type journalWriter struct{}

func (journalWriter) Write(p []byte) (int, error) {
	return journalWriter{}.WriteLevel(zerolog.InfoLevel, p)
}

func (journalWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	err := journal.Send(strings.TrimSpace(string(p)), journalPriority(level), map[string]string{
		"SYSLOG_IDENTIFIER": Name,
	})
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func journalPriority(level zerolog.Level) journal.Priority {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return journal.PriDebug
	case zerolog.WarnLevel:
		return journal.PriWarning
	case zerolog.ErrorLevel:
		return journal.PriErr
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return journal.PriCrit
	default:
		return journal.PriInfo
	}
}
