package middleware

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/deemkeen/herald/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"
)

func newKey(t *testing.T) gossh.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	pk, err := gossh.NewPublicKey(pub)
	require.NoError(t, err)
	return pk
}

func TestRemoteIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		expectedIP string
	}{
		{"IPv4 with port", "192.168.1.100:12345", "192.168.1.100"},
		{"IPv4 without port", "192.168.1.100", "192.168.1.100"},
		{"IPv6 with port", "[::1]:12345", "::1"},
		{"IPv6 without port", "::1", "::1"},
		{"localhost with port", "127.0.0.1:22", "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedIP, remoteIP(tt.remoteAddr))
		})
	}
}

func TestAuthorized(t *testing.T) {
	alice := newKey(t)
	bob := newKey(t)
	aliceLine := string(gossh.MarshalAuthorizedKey(alice))

	tests := []struct {
		name string
		keys []string
		pk   gossh.PublicKey
		want bool
	}{
		{"empty list allows everyone", nil, bob, true},
		{"fingerprint match", []string{util.Fingerprint(alice)}, alice, true},
		{"fingerprint mismatch", []string{util.Fingerprint(alice)}, bob, false},
		{"authorized_keys line", []string{aliceLine}, alice, true},
		{"malformed entries are skipped", []string{"garbage", " " + util.Fingerprint(bob) + " "}, bob, true},
		{"no key offered", []string{util.Fingerprint(alice)}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorized(tt.keys, tt.pk))
		})
	}
}
