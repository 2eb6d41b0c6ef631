// Package config holds the ambient configuration an embedding host can
// hand to a RepoEngine: the default branch name, which ContentArea
// variant to mint from createArea, and the Clock's epoch-rebuild
// window. There is no repository directory to locate a file in, so
// Load decodes from an io.Reader rather than a path.
package config

import (
	"io"
	"math"

	"github.com/BurntSushi/toml"
)

// AreaVariant selects which content.Area implementation createArea
// mints.
type AreaVariant string

const (
	AreaInsertionOrdered AreaVariant = "insertion_ordered"
	AreaSorted           AreaVariant = "sorted"
)

// EngineConfig is the [engine] table of a nanovc-go TOML config.
type EngineConfig struct {
	DefaultBranch string      `toml:"default_branch"`
	AreaVariant   AreaVariant `toml:"area_variant"`
	ClockMinRange int64       `toml:"clock_min_range"`
	ClockMaxRange int64       `toml:"clock_max_range"`
}

// Config is the root of a nanovc-go TOML config document.
type Config struct {
	Engine EngineConfig `toml:"engine"`
}

// Default returns the configuration an engine uses when none is
// supplied: branch "main", insertion-ordered areas, and the Clock's
// full int32 rebuild window.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			DefaultBranch: "main",
			AreaVariant:   AreaInsertionOrdered,
			ClockMinRange: math.MinInt32,
			ClockMaxRange: math.MaxInt32,
		},
	}
}

// Load decodes a Config from r, filling any field the document omits
// from Default().
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
