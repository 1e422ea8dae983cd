// SPDX-License-Identifier: MIT

// Package config loads, validates and saves the YAML description of a
// Markov consumption-saving model and turns it into an agent.Type.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/consmarkov/income"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variables that override file values.
const (
	EnvSeed   = "CONSMARKOV_SEED"
	EnvCycles = "CONSMARKOV_CYCLES"
)

// Config is the full model description.
type Config struct {
	Name        string   `yaml:"name"`
	CRRA        float64  `yaml:"crra"`
	DiscFac     float64  `yaml:"disc_fac"`
	LivPrb      float64  `yaml:"liv_prb"`
	BoroCnstArt *float64 `yaml:"boro_cnst_art"` // null: no artificial constraint
	VFunc       bool     `yaml:"vfunc"`
	Cubic       bool     `yaml:"cubic"`

	Cycles              int     `yaml:"cycles"` // 0: infinite horizon
	Tolerance           float64 `yaml:"tolerance"`
	MaxIterations       int     `yaml:"max_iterations"`
	ConstraintTolerance float64 `yaml:"constraint_tolerance"`

	NormalizeTransition bool          `yaml:"normalize_transition"`
	Grid                GridConfig    `yaml:"grid"`
	Transition          [][]float64   `yaml:"transition"`
	States              []StateConfig `yaml:"states"`

	Simulation SimulationConfig `yaml:"simulation"`
}

// GridConfig describes the grid of assets above the borrowing limit.
type GridConfig struct {
	Min   float64   `yaml:"min"`
	Max   float64   `yaml:"max"`
	Count int       `yaml:"count"`
	Nest  int       `yaml:"nest"`
	Extra []float64 `yaml:"extra,omitempty"`
}

// StateConfig describes one Markov state. Income is either discretised from
// lognormal parameters or given explicitly as Shocks.
type StateConfig struct {
	Name       string               `yaml:"name"`
	Rfree      float64              `yaml:"rfree"`
	PermGroFac float64              `yaml:"perm_gro_fac"`
	Income     *income.Params       `yaml:"income,omitempty"`
	Shocks     *income.Distribution `yaml:"shocks,omitempty"`
}

// SimulationConfig drives the simulate command.
type SimulationConfig struct {
	Agents    int   `yaml:"agents"`
	Periods   int   `yaml:"periods"`
	Seed      int64 `yaml:"seed"`
	InitState int   `yaml:"init_state"`
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvSeed, v, err)
		}
		c.Simulation.Seed = seed
	}
	if v := os.Getenv(EnvCycles); v != "" {
		cycles, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvCycles, v, err)
		}
		c.Cycles = cycles
	}

	return nil
}
