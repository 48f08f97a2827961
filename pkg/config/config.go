// Package config loads the slideforge project configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Checkpoint engine modes selectable from configuration.
const (
	ModeAuto        = "auto"
	ModeInteractive = "interactive"
	ModeBatch       = "batch"
)

// defaultConfigYAML is the configuration written for new projects and the
// baseline every loaded file is merged over.
const defaultConfigYAML = `# slideforge project configuration
version: 1

# Directory scanned for pipeline artifacts.
project_dir: .

# Persisted workflow state; used by modify-pause and resume.
state_file: .slideforge/state.json

checkpoint:
  # auto, interactive, or batch
  mode: interactive
  # Only consulted in auto mode.
  auto_approve: false
  # Only consulted in batch mode.
  batch_size: 2

# How many times a retry decision may re-run the same phase.
max_phase_retries: 1

# Skill ids per phase, executed in order.
phases:
  research: [web_research, insight_extraction]
  outline: [outline_generation]
  content: [content_drafting, content_optimization]
  assembly: [image_generation, visual_validation, pptx_assembly]

# Per-skill configuration maps, passed to the factory on instantiation.
skills: {}
`

// CheckpointConfig parameterizes the checkpoint engine.
type CheckpointConfig struct {
	Mode        string `yaml:"mode"`
	AutoApprove bool   `yaml:"auto_approve"`
	BatchSize   int    `yaml:"batch_size"`
}

// Config models the project configuration file.
type Config struct {
	Version         int                               `yaml:"version"`
	ProjectDir      string                            `yaml:"project_dir"`
	StateFile       string                            `yaml:"state_file"`
	Checkpoint      CheckpointConfig                  `yaml:"checkpoint"`
	MaxPhaseRetries int                               `yaml:"max_phase_retries"`
	Phases          map[string][]string               `yaml:"phases"`
	Skills          map[string]map[string]interface{} `yaml:"skills"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	// The embedded document is maintained alongside the struct; a decode
	// failure here is a programming error.
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err != nil {
		panic(fmt.Sprintf("invalid built-in configuration: %v", err))
	}
	return &cfg
}

// Load reads a YAML configuration file, applying defaults for anything
// the file leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields that break the pipeline when wrong.
func (c *Config) Validate() error {
	switch c.Checkpoint.Mode {
	case ModeAuto, ModeInteractive, ModeBatch:
	default:
		return fmt.Errorf("unknown checkpoint mode: %q", c.Checkpoint.Mode)
	}
	if c.Checkpoint.Mode == ModeBatch && c.Checkpoint.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1, got %d", c.Checkpoint.BatchSize)
	}
	if c.MaxPhaseRetries < 0 {
		return fmt.Errorf("max_phase_retries must not be negative, got %d", c.MaxPhaseRetries)
	}
	return nil
}

// WriteDefault writes the default configuration document to path when no
// file exists there yet.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
