// Package config loads training-run configuration from YAML with CLI
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a classifier training run.
type Config struct {
	DataDir        string  `yaml:"data_dir"`
	Fashion        bool    `yaml:"fashion"`
	Epochs         int     `yaml:"epochs"`
	BatchSize      int     `yaml:"batch_size"`
	LearningRate   float64 `yaml:"learning_rate"`
	Optimizer      string  `yaml:"optimizer"`
	Momentum       float64 `yaml:"momentum"`
	HiddenSizes    []int   `yaml:"hidden_sizes"`
	Dropout        float32 `yaml:"dropout"`
	ValidationPct  float64 `yaml:"validation_pct"`
	Seed           int64   `yaml:"seed"`
	CheckpointPath string  `yaml:"checkpoint_path"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		DataDir:        "data",
		Epochs:         5,
		BatchSize:      64,
		LearningRate:   0.001,
		Optimizer:      "adam",
		Momentum:       0.9,
		HiddenSizes:    []int{128, 64},
		Dropout:        0.2,
		ValidationPct:  0.1,
		Seed:           42,
		CheckpointPath: "model.ckpt",
	}
}

// Overrides captures CLI-supplied values. Zero values mean "not set".
type Overrides struct {
	DataDir        string
	Epochs         int
	BatchSize      int
	LearningRate   float64
	Optimizer      string
	CheckpointPath string
}

// Load reads and validates a Config from a YAML file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg from any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Optimizer != "" {
		c.Optimizer = o.Optimizer
	}
	if o.CheckpointPath != "" {
		c.CheckpointPath = o.CheckpointPath
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DataDir == "" {
		return errors.New("data_dir must be set")
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be positive, got %v", c.LearningRate)
	}
	if c.Optimizer != "adam" && c.Optimizer != "sgd" {
		return fmt.Errorf("optimizer must be adam or sgd, got %q", c.Optimizer)
	}
	if len(c.HiddenSizes) == 0 {
		return errors.New("hidden_sizes must name at least one layer")
	}
	for i, h := range c.HiddenSizes {
		if h <= 0 {
			return fmt.Errorf("hidden_sizes[%d] must be positive, got %d", i, h)
		}
	}
	if c.Dropout < 0 || c.Dropout >= 1 {
		return fmt.Errorf("dropout must be in [0, 1), got %v", c.Dropout)
	}
	if c.ValidationPct <= 0 || c.ValidationPct >= 1 {
		return fmt.Errorf("validation_pct must be in (0, 1), got %v", c.ValidationPct)
	}
	if c.CheckpointPath == "" {
		return errors.New("checkpoint_path must be set")
	}
	return nil
}
