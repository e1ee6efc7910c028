package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-a", "http://api", "-x", "junk"}, []string{"-a"})
	require.Equal(t, []string{"-a", "http://api"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	got := FilterArgs([]string{"--config=conf.json", "-a=addr", "-b=nope"}, []string{"--config", "-a"})
	require.Equal(t, []string{"--config=conf.json", "-a=addr"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	got := FilterArgs([]string{"-v", "-a", "-t", "5"}, []string{"-v", "-t"})
	require.Equal(t, []string{"-v", "-t", "5"}, got)
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-a"})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestConfigFileFlag(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"cli", "-c", "conf.json", "-a", "http://api"}
	require.Equal(t, "conf.json", ConfigFileFlag())

	os.Args = []string{"cli", "--config=other.json"}
	require.Equal(t, "other.json", ConfigFileFlag())

	os.Args = []string{"cli", "-a", "http://api"}
	require.Equal(t, "", ConfigFileFlag())
}
