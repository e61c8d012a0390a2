package util

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const Name = "herald"
const ConfigFileName = "config.yaml"

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		Host              string
		SshPort           int      `yaml:"sshPort"`
		ApiURL            string   `yaml:"apiURL"`
		ApiToken          string   `yaml:"apiToken"`
		Language          string   `yaml:"language"`
		LogLevel          string   `yaml:"logLevel"`
		WithJournald      bool     `yaml:"withJournald"`
		RequestsPerSecond int      `yaml:"requestsPerSecond"`
		NavbarRefresh     int      `yaml:"navbarRefresh"`
		ToastSeconds      int      `yaml:"toastSeconds"`
		AuthorizedKeys    []string `yaml:"authorizedKeys"`
		DevApiPort        int      `yaml:"devApiPort"`
	}
}

// ReadConf loads the config from an explicit path, or resolves config.yaml
// locally and in the user config dir when path is empty.
func ReadConf(path string) (*AppConfig, error) {

	c := &AppConfig{}

	configPath := path
	if configPath == "" {
		configPath = ResolveFilePath(ConfigFileName)
	}

	buf, err := os.ReadFile(configPath)
	if err != nil {
		if path != "" {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		// If file doesn't exist, use embedded config and create user config file
		log.Info().Str("path", configPath).Msg("config file not found, using embedded defaults")
		buf = embeddedConfig

		configDir, dirErr := GetConfigDir()
		if dirErr == nil {
			userConfigPath := filepath.Join(configDir, ConfigFileName)
			if writeErr := os.WriteFile(userConfigPath, embeddedConfig, 0600); writeErr != nil {
				log.Warn().Err(writeErr).Str("path", userConfigPath).Msg("could not write default config")
			} else {
				log.Info().Str("path", userConfigPath).Msg("created default config file")
			}
		}
	}

	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("in config file: %w", err)
	}
	if stray := strayKeys(buf); len(stray) > 0 {
		log.Warn().Str("path", configPath).Strs("keys", stray).Msg("ignoring config keys outside the conf section")
	}

	c.applyEnv()
	c.applyDefaults()

	return c, nil
}

// strayKeys lists the top level keys other than conf. Settings written
// there, such as a flat apiURL, are not read.
func strayKeys(buf []byte) []string {
	var top map[string]yaml.Node
	if err := yaml.Unmarshal(buf, &top); err != nil {
		return nil
	}
	var stray []string
	for k := range top {
		if k != "conf" {
			stray = append(stray, k)
		}
	}
	sort.Strings(stray)
	return stray
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("HERALD_HOST"); v != "" {
		c.Conf.Host = v
	}
	if v := os.Getenv("HERALD_API_URL"); v != "" {
		c.Conf.ApiURL = v
	}
	if v := os.Getenv("HERALD_API_TOKEN"); v != "" {
		c.Conf.ApiToken = v
	}
	if v := os.Getenv("HERALD_LANGUAGE"); v != "" {
		c.Conf.Language = v
	}
	if v := os.Getenv("HERALD_LOG_LEVEL"); v != "" {
		c.Conf.LogLevel = v
	}
	if os.Getenv("HERALD_WITH_JOURNALD") == "true" {
		c.Conf.WithJournald = true
	}
	if v := os.Getenv("HERALD_AUTHORIZED_KEYS"); v != "" {
		c.Conf.AuthorizedKeys = strings.Split(v, ",")
	}

	intEnv("HERALD_SSHPORT", &c.Conf.SshPort)
	intEnv("HERALD_REQUESTS_PER_SECOND", &c.Conf.RequestsPerSecond)
	intEnv("HERALD_NAVBAR_REFRESH", &c.Conf.NavbarRefresh)
	intEnv("HERALD_TOAST_SECONDS", &c.Conf.ToastSeconds)
	intEnv("HERALD_DEVAPI_PORT", &c.Conf.DevApiPort)
}

func intEnv(key string, dst *int) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("ignoring invalid integer env value")
		return
	}
	*dst = v
}

func (c *AppConfig) applyDefaults() {
	if c.Conf.Host == "" {
		c.Conf.Host = "127.0.0.1"
	}
	if c.Conf.SshPort == 0 {
		c.Conf.SshPort = 23235
	}
	if c.Conf.Language == "" {
		c.Conf.Language = "en"
	}
	if c.Conf.LogLevel == "" {
		c.Conf.LogLevel = "info"
	}
	if c.Conf.DevApiPort == 0 {
		c.Conf.DevApiPort = 8081
	}
	if c.Conf.ApiURL == "" {
		c.Conf.ApiURL = fmt.Sprintf("http://127.0.0.1:%d", c.Conf.DevApiPort)
	}

	// The API throttles aggressive clients, stay well below its limit.
	if c.Conf.RequestsPerSecond < 1 {
		c.Conf.RequestsPerSecond = 10
	} else if c.Conf.RequestsPerSecond > 50 {
		log.Warn().Int("value", c.Conf.RequestsPerSecond).Msg("requestsPerSecond exceeds maximum of 50, capping")
		c.Conf.RequestsPerSecond = 50
	}

	if c.Conf.NavbarRefresh < 0 {
		c.Conf.NavbarRefresh = 0
	} else if c.Conf.NavbarRefresh == 0 {
		c.Conf.NavbarRefresh = 60
	}

	if c.Conf.ToastSeconds < 1 {
		c.Conf.ToastSeconds = 4
	}

	for i, k := range c.Conf.AuthorizedKeys {
		c.Conf.AuthorizedKeys[i] = strings.TrimSpace(k)
	}
}

// GetConfigDir returns ~/.config/herald, creating it if necessary.
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, Name)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// ResolveFilePath prefers a file in the working directory and falls back to
// the user config dir.
func ResolveFilePath(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	dir, err := GetConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, name)
}
