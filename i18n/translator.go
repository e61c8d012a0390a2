// Package i18n resolves UI message keys against embedded yaml catalogs.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultLanguage = "en"

//go:embed locales/*.yaml
var locales embed.FS

type Translator struct {
	lang     string
	messages map[string]string
	fallback map[string]string
}

// New loads the catalog of lang, falling back to English for missing keys
// and unknown languages.
func New(lang string) (*Translator, error) {
	fallback, err := load(DefaultLanguage)
	if err != nil {
		return nil, err
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || lang == DefaultLanguage {
		return &Translator{lang: DefaultLanguage, messages: fallback, fallback: fallback}, nil
	}
	messages, err := load(lang)
	if err != nil {
		return &Translator{lang: DefaultLanguage, messages: fallback, fallback: fallback}, nil
	}
	return &Translator{lang: lang, messages: messages, fallback: fallback}, nil
}

func load(lang string) (map[string]string, error) {
	raw, err := locales.ReadFile(path.Join("locales", lang+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("no catalog for %q: %w", lang, err)
	}
	m := map[string]string{}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("catalog %q: %w", lang, err)
	}
	return m, nil
}

func (t *Translator) Language() string {
	return t.lang
}

// Instant returns the message for key, or key itself when no catalog has it.
func (t *Translator) Instant(key string) string {
	if v, ok := t.messages[key]; ok {
		return v
	}
	if v, ok := t.fallback[key]; ok {
		return v
	}
	return key
}
