package middleware

import (
	"net"
	"strings"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/deemkeen/herald/util"
	"github.com/rs/zerolog/log"
	gossh "golang.org/x/crypto/ssh"
)

// AuthMiddleware lets in the keys listed in authorizedKeys. Entries are
// SHA256 fingerprints or authorized_keys lines. An empty list lets every
// key in.
func AuthMiddleware(conf *util.AppConfig) wish.Middleware {
	return func(h ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			ip := remoteIP(s.RemoteAddr().String())

			if !Authorized(conf.Conf.AuthorizedKeys, s.PublicKey()) {
				ev := log.Warn().Str("ip", ip)
				if pk := s.PublicKey(); pk != nil {
					ev = ev.Str("fingerprint", util.Fingerprint(pk)).Str("key", util.PublicKeyToString(pk))
				}
				ev.Msg("rejected unknown key")
				s.Write([]byte("Your key is not allowed on this console.\n"))
				s.Close()
				return
			}

			util.LogPublicKey(s)
			h(s)
		}
	}
}

// Authorized reports whether pk matches one of keys.
func Authorized(keys []string, pk ssh.PublicKey) bool {
	if len(keys) == 0 {
		return true
	}
	if pk == nil {
		return false
	}
	fp := util.Fingerprint(pk)
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if strings.HasPrefix(k, "SHA256:") {
			if k == fp {
				return true
			}
			continue
		}
		allowed, _, _, _, err := gossh.ParseAuthorizedKey([]byte(k))
		if err != nil {
			log.Warn().Err(err).Msg("skipping malformed authorized key")
			continue
		}
		if ssh.KeysEqual(pk, allowed) {
			return true
		}
	}
	return false
}

// remoteIP strips the port from a remote address.
func remoteIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
