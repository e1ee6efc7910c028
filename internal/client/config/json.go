package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/karanja-droid/geo-miner-ai-sub000/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// given in whole seconds and copied into the runtime Config afterwards.
type JsonConfig struct {
	APIBaseURL           string `json:"api_base_url"`
	RequestTimeoutSecs   int    `json:"request_timeout_seconds"`
	RetryAfterDefault    int    `json:"retry_after_default"`
	StoreDSN             string `json:"store_dsn"`
	RefreshLeewaySeconds int    `json:"refresh_leeway_seconds"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// comes from the -c/-config flags. Absent path means no JSON layer. Only
// fields present in the file override; zero values are skipped. Read or
// unmarshal errors panic (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeoutSecs > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSecs) * time.Second
	}
	if jc.RetryAfterDefault > 0 {
		cfg.RetryAfterDefault = jc.RetryAfterDefault
	}
	if jc.StoreDSN != "" {
		cfg.StoreDSN = jc.StoreDSN
	}
	if jc.RefreshLeewaySeconds > 0 {
		cfg.RefreshLeeway = time.Duration(jc.RefreshLeewaySeconds) * time.Second
	}
}
