package vigie

import "time"

// Config configures the vigie service. Window and limit bounds are the
// project's backpressure mechanism: computation cost is capped by rejecting
// unbounded scans at validation time, so there is no queueing model behind
// them.
type Config struct {
	// DefaultWindowDays applies when a derivation's optional window
	// parameter is omitted.
	DefaultWindowDays int

	// MaxWindowDays bounds the optional window parameter (inclusive).
	MaxWindowDays int

	// MaxPressureWindowDays bounds the competitive-pressure window, the only
	// mandatory one — its cost is multiplicative across queries × snapshots
	// × results.
	MaxPressureWindowDays int

	// DefaultLimit / MaxLimit bound result-count limits.
	DefaultLimit int
	MaxLimit     int

	// MomentumWindowDays is the fixed width of each momentum window.
	MomentumWindowDays int

	// ExtractionCacheTTL / ExtractionCacheSize tune the extracted-result
	// memo cache. Observations are immutable so entries can never go stale;
	// the cache only saves re-parsing payloads within and across requests.
	ExtractionCacheTTL  time.Duration
	ExtractionCacheSize uint64
}

func (c *Config) defaults() {
	if c.DefaultWindowDays <= 0 {
		c.DefaultWindowDays = 30
	}
	if c.MaxWindowDays <= 0 {
		c.MaxWindowDays = 365
	}
	if c.MaxPressureWindowDays <= 0 {
		c.MaxPressureWindowDays = 90
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = 10
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = 100
	}
	if c.MomentumWindowDays <= 0 {
		c.MomentumWindowDays = 30
	}
	if c.ExtractionCacheTTL <= 0 {
		c.ExtractionCacheTTL = 10 * time.Minute
	}
	if c.ExtractionCacheSize == 0 {
		c.ExtractionCacheSize = 4096
	}
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}
