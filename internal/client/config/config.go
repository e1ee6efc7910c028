package config

import "time"

// Config holds runtime settings for the GeoVision client.
//
// Fields:
//   - APIBaseURL: root of the backend HTTP API.
//   - RequestTimeout: per-request bound; expired requests are aborted and
//     reported as transport failures.
//   - RetryAfterDefault: fallback Retry-After (seconds) when a rate-limited
//     response carries no usable header. Policy choice, deliberately
//     configurable.
//   - StoreDSN: sqlite DSN of the local session store.
//   - RefreshLeeway: how close to token expiry the refresh watcher acts.
type Config struct {
	APIBaseURL        string
	RequestTimeout    time.Duration
	RetryAfterDefault int
	StoreDSN          string
	RefreshLeeway     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 10 * time.Second
	c.RetryAfterDefault = 60
	c.StoreDSN = "geominer.db"
	c.RefreshLeeway = 2 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), a JSON file (if
// given) and command-line flags. Later sources take precedence over earlier
// ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
