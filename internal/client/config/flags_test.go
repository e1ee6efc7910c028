package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	withArgs(t, []string{"cli", "-a", "https://flags.geovision.example", "-t", "25", "-s", "flags.db"})

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "https://flags.geovision.example", cfg.APIBaseURL)
	require.Equal(t, 25*time.Second, cfg.RequestTimeout)
	require.Equal(t, "flags.db", cfg.StoreDSN)
}

func TestParseFlagsDefaults(t *testing.T) {
	withArgs(t, []string{"cli"})

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, "geominer.db", cfg.StoreDSN)
}

func TestParseFlagsIgnoresUnknown(t *testing.T) {
	withArgs(t, []string{"cli", "-c", "somewhere.json", "-s", "flags.db"})

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "flags.db", cfg.StoreDSN)
}
