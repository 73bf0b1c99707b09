package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1, cfg.Scenario.ProtocolVersion)
	assert.Equal(t, "/tmp", cfg.Scenario.SessionCwd)
	assert.NotEmpty(t, cfg.Scenario.Prompt)
	assert.Zero(t, cfg.Timeout, "base behavior blocks indefinitely")
}

func TestLoad(t *testing.T) {
	t.Run("empty path keeps defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conform.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
agent:
  command: ./my-agent
  args: [acp]
  env:
    AGENT_MODE: test
scenario:
  session_cwd: /work
  with_mcp: true
timeout: 30s
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "./my-agent", cfg.Agent.Command)
		assert.Equal(t, []string{"acp"}, cfg.Agent.Args)
		assert.Equal(t, "test", cfg.Agent.Env["AGENT_MODE"])
		assert.Equal(t, "/work", cfg.Scenario.SessionCwd)
		assert.True(t, cfg.Scenario.WithMCP)
		assert.Equal(t, 30*time.Second, cfg.Timeout)

		// Untouched fields keep their defaults.
		assert.Equal(t, 1, cfg.Scenario.ProtocolVersion)
		assert.NotEmpty(t, cfg.Scenario.Prompt)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("agent: [unclosed"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate(), "agent command is required")

	cfg.Agent.Command = "./agent"
	assert.NoError(t, cfg.Validate())

	cfg.Scenario.ProtocolVersion = 0
	assert.Error(t, cfg.Validate())
}
