package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCmd_DefaultLogLevel_RemainsWarn(t *testing.T) {
	flag := rootCmd.Flags().Lookup("log")

	assert.NotNil(t, flag, "log flag must be registered")
	assert.Equal(t, "warn", flag.DefValue, "default log level must remain 'warn'")
}

func TestParseRunArgs_OutputDirOnly(t *testing.T) {
	rate, path, dir, err := parseRunArgs([]string{"out"})
	require.NoError(t, err)
	assert.Nil(t, rate)
	assert.Equal(t, defaultConfigPath, path)
	assert.Equal(t, "out", dir)
}

func TestParseRunArgs_ConfigPathAndOutputDir(t *testing.T) {
	rate, path, dir, err := parseRunArgs([]string{"config.json", "out"})
	require.NoError(t, err)
	assert.Nil(t, rate)
	assert.Equal(t, "config.json", path)
	assert.Equal(t, "out", dir)
}

func TestParseRunArgs_ServiceRateConfigAndOutputDir(t *testing.T) {
	rate, path, dir, err := parseRunArgs([]string{"2.5", "config.json", "out"})
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.Equal(t, 2.5, *rate)
	assert.Equal(t, "config.json", path)
	assert.Equal(t, "out", dir)
}

func TestParseRunArgs_RejectsUnparseableServiceRateWithThreeArgs(t *testing.T) {
	_, _, _, err := parseRunArgs([]string{"not-a-number", "config.json", "out"})
	assert.Error(t, err)
}
