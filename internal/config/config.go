// Package config loads the harness scenario configuration.
// Everything has a default mirroring the canonical conformance run, so
// a config file is only needed to deviate from it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Agent describes how to launch the agent under test.
type Agent struct {
	Command string            `yaml:"command"`
	Args    []string          `yaml:"args"`
	Cwd     string            `yaml:"cwd"`
	Env     map[string]string `yaml:"env"`
}

// Scenario tunes the fixed four-step conformance sequence.
type Scenario struct {
	ProtocolVersion int    `yaml:"protocol_version"`
	SessionCwd      string `yaml:"session_cwd"`
	Prompt          string `yaml:"prompt"`
	WithMCP         bool   `yaml:"with_mcp"`
	ClientName      string `yaml:"client_name"`
	ClientVersion   string `yaml:"client_version"`
}

// Config is the root harness configuration.
type Config struct {
	Agent    Agent         `yaml:"agent"`
	Scenario Scenario      `yaml:"scenario"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the canonical conformance run configuration.
func Default() *Config {
	return &Config{
		Scenario: Scenario{
			ProtocolVersion: 1,
			SessionCwd:      "/tmp",
			Prompt:          "Hello, what can you do?",
			ClientName:      "acp-conform",
			ClientVersion:   "1.0.0",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the configuration names an agent to launch.
func (c *Config) Validate() error {
	if c.Agent.Command == "" {
		return fmt.Errorf("no agent command configured")
	}
	if c.Scenario.ProtocolVersion <= 0 {
		return fmt.Errorf("protocol_version must be positive, got %d", c.Scenario.ProtocolVersion)
	}

	return nil
}
