package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deemkeen/herald/util"
	"github.com/deemkeen/herald/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFlag(t *testing.T) {
	for _, flag := range []string{"-v", "--version"} {
		t.Run(flag, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run([]string{flag}, &out))

			outputStr := strings.TrimSpace(out.String())
			require.True(t, strings.HasPrefix(outputStr, "herald v"), "got: %s", outputStr)

			parts := strings.Split(outputStr, "herald v")
			require.Len(t, parts, 2)
			assert.Len(t, strings.Split(parts[1], "."), 3, "expected semantic version X.Y.Z, got %s", parts[1])
			assert.Equal(t, util.GetVersion(), parts[1])
		})
	}
}

func TestUsage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, &out))
	assert.Contains(t, out.String(), "serve")
	assert.Contains(t, out.String(), "--config")

	out.Reset()
	require.NoError(t, run([]string{"--help"}, &out))
	assert.Contains(t, out.String(), "Usage: herald")
}

func TestUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"--nope"}, &out))
}

func TestMissingConfig(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml"), "broadcasts"}, &out)
	assert.Error(t, err)
}

func TestRunCommandAgainstDevAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(web.NewRouter(web.DefaultOptions("tok")))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "config.yaml")
	conf := "conf:\n  apiURL: " + srv.URL + "\n  apiToken: tok\n  language: en\n"
	require.NoError(t, os.WriteFile(path, []byte(conf), 0o600))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-c", path, "broadcasts", "-a"}, &out))
	assert.Contains(t, out.String(), "Welcome")
	assert.Contains(t, out.String(), "Maintenance")

	cfg, err := util.ReadConf(path)
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, runCommand(context.Background(), cfg, []string{"help"}, &out))
	assert.Contains(t, out.String(), "broadcast console")
}
