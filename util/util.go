package util

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"
	gossh "golang.org/x/crypto/ssh"
)

//go:embed version.txt
var embeddedVersion string

var lineBreakRegex = regexp.MustCompile(`\r\n|\r|\n`)

const (
	minTextAreaHeight = 3
	maxTextAreaHeight = 20
)

func LogPublicKey(s ssh.Session) {
	log.Info().Str("user", s.User()).Str("remote", s.RemoteAddr().String()).Msg("opened a new ssh-session")
}

func PublicKeyToString(s ssh.PublicKey) string {
	return strings.TrimSpace(string(gossh.MarshalAuthorizedKey(s)))
}

// Fingerprint returns the OpenSSH SHA256 fingerprint ("SHA256:...") of a key.
func Fingerprint(pk ssh.PublicKey) string {
	return gossh.FingerprintSHA256(pk)
}

func GetVersion() string {
	return strings.TrimSpace(embeddedVersion)
}

func GetNameAndVersion() string {
	return fmt.Sprintf("%s / %s", Name, GetVersion())
}

func DateTimeFormat() string {
	return "2006-01-02 15:04"
}

// TextAreaHeight is the number of rows a textarea needs to show value
// without scrolling, plus one empty row for typing.
func TextAreaHeight(value string) int {
	if value == "" {
		return minTextAreaHeight
	}
	rows := len(lineBreakRegex.Split(value, -1)) + 1
	if rows < minTextAreaHeight {
		return minTextAreaHeight
	}
	if rows > maxTextAreaHeight {
		return maxTextAreaHeight
	}
	return rows
}

// TruncateWidth cuts s to at most width terminal cells, wide runes counted
// as two, and appends an ellipsis when it had to cut.
func TruncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = lineBreakRegex.ReplaceAllString(s, " ")
	return runewidth.Truncate(s, width, "…")
}

// FormatTimeAgo returns a human-readable time difference
func FormatTimeAgo(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	} else if duration < time.Hour {
		mins := int(duration.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	} else if duration < 24*time.Hour {
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(duration.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
