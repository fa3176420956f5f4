// Package config holds tunable knobs for the lazy cache (spec.md §4.H/I)
// and the composition engine (spec.md §4.J), in a teacher-style Config
// struct with a DefaultConfig constructor (teacher: dfa/lazy/config.go).
// Unlike the teacher, this package also loads a Config from a TOML file.
package config

import (
	"github.com/BurntSushi/toml"
)

// CacheConfig tunes the lazy on-demand expansion cache shared by compose,
// replace, and factor-weight's lazy.Fst substrate.
type CacheConfig struct {
	// MaxStates caps the number of states the lazy cache will hold before
	// it refuses further expansion and the owning Fst latches an error.
	//
	// Default: 1,000,000 states.
	//
	// Tuning guidelines:
	//   - Interactive/CLI use: 10,000-100,000 states
	//   - Batch composition of large grammars: 1,000,000+ states
	//   - Memory-constrained: 10,000 states
	MaxStates uint32 `toml:"max_states"`

	// MaxClears is a cache-clearing budget. The cache never clears
	// itself, whatever this value is: it only grows until MaxStates and
	// then fails. No component of this module reads MaxClears; Validate
	// only checks that it is not negative.
	//
	// Default: 0.
	MaxClears int `toml:"max_clears"`
}

// ComposeConfig tunes the composition engine (spec.md §4.J).
type ComposeConfig struct {
	// ConnectLookAhead enables the look-ahead filter's reachability
	// pruning, trimming composition pairs that provably cannot reach a
	// final state in the second operand before they are ever expanded.
	//
	// Default: true.
	ConnectLookAhead bool `toml:"connect_look_ahead"`

	// MaxLookAheadDepth bounds how many of the matcher state's arcs a
	// look-ahead query scans. Arcs beyond the bound are not considered,
	// so a pair whose only matching arc lies beyond it is reported as
	// unreachable and pruned. Zero means unbounded.
	//
	// Default: 0 (unbounded).
	MaxLookAheadDepth int `toml:"max_look_ahead_depth"`
}

// Config is the top-level tunable surface for this module.
type Config struct {
	Cache   CacheConfig   `toml:"cache"`
	Compose ComposeConfig `toml:"compose"`
}

// DefaultConfig returns a configuration with sensible defaults: a large
// cache that effectively never clears, and look-ahead pruning enabled.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			MaxStates: 1_000_000,
			MaxClears: 0,
		},
		Compose: ComposeConfig{
			ConnectLookAhead:  true,
			MaxLookAheadDepth: 0,
		},
	}
}

// Validate checks if the configuration is valid, returning a Kind-tagged
// *Error describing the first parameter out of range.
func (c *Config) Validate() error {
	if c.Cache.MaxStates == 0 {
		return &Error{Kind: InvalidConfig, Message: "Cache.MaxStates must be > 0"}
	}
	if c.Cache.MaxClears < 0 {
		return &Error{Kind: InvalidConfig, Message: "Cache.MaxClears must be >= 0"}
	}
	if c.Compose.MaxLookAheadDepth < 0 {
		return &Error{Kind: InvalidConfig, Message: "Compose.MaxLookAheadDepth must be >= 0"}
	}
	return nil
}

// WithMaxStates returns a new config with the cache's MaxStates set.
func (c Config) WithMaxStates(maxStates uint32) Config {
	c.Cache.MaxStates = maxStates
	return c
}

// WithMaxClears returns a new config with the cache's MaxClears set.
func (c Config) WithMaxClears(maxClears int) Config {
	c.Cache.MaxClears = maxClears
	return c
}

// WithConnectLookAhead returns a new config with look-ahead pruning
// enabled or disabled.
func (c Config) WithConnectLookAhead(enabled bool) Config {
	c.Compose.ConnectLookAhead = enabled
	return c
}

// WithMaxLookAheadDepth returns a new config with the given look-ahead
// depth bound.
func (c Config) WithMaxLookAheadDepth(depth int) Config {
	c.Compose.MaxLookAheadDepth = depth
	return c
}

// Load reads a TOML file at path and decodes it into a Config, starting
// from DefaultConfig so an omitted section keeps its default values. The
// decoded config is validated before it's returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, &Error{Kind: LoadFailed, Message: "decoding TOML config " + path, Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
