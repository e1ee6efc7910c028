package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first when present; it never
// overrides variables already set in the environment.
//
// Recognized variables:
//
//	GEOMINER_API_URL        backend base URL
//	GEOMINER_TIMEOUT        request timeout in seconds
//	GEOMINER_RETRY_AFTER    fallback Retry-After in seconds
//	GEOMINER_STORE          sqlite DSN of the local store
//	GEOMINER_REFRESH_LEEWAY refresh leeway in seconds
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("GEOMINER_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("GEOMINER_STORE"); v != "" {
		cfg.StoreDSN = v
	}
	if seconds, ok := envSeconds("GEOMINER_TIMEOUT"); ok {
		cfg.RequestTimeout = seconds
	}
	if seconds, ok := envSeconds("GEOMINER_REFRESH_LEEWAY"); ok {
		cfg.RefreshLeeway = seconds
	}
	if v := os.Getenv("GEOMINER_RETRY_AFTER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetryAfterDefault = n
		}
	}
}

func envSeconds(name string) (time.Duration, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return time.Duration(n) * time.Second, true
}
