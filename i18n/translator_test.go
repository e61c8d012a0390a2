package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstant(t *testing.T) {
	tests := []struct {
		lang string
		key  string
		want string
	}{
		{"en", "broadcast_saved", "Broadcast saved"},
		{"fr", "broadcast_saved", "Message enregistré"},
		{"FR ", "broadcast_deleted", "Message supprimé"},
		{"", "broadcast_deleted", "Broadcast deleted"},
		{"de", "broadcast_deleted", "Broadcast deleted"},
		{"en", "no_such_key", "no_such_key"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.key, func(t *testing.T) {
			tr, err := New(tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tr.Instant(tt.key))
		})
	}
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	tr, err := New("klingon")
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguage, tr.Language())
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	en, err := load("en")
	require.NoError(t, err)
	fr, err := load("fr")
	require.NoError(t, err)

	for k := range en {
		assert.Contains(t, fr, k)
	}
	for k := range fr {
		assert.Contains(t, en, k)
	}
}
