package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestTopology(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "topology.txt")
	require.NoError(t, os.WriteFile(path, []byte("2\n0 1\n1 0\n"), 0o644))
	return path
}

func writeTestConfig(t *testing.T, dir, topologyPath string) string {
	t.Helper()
	contents := `{
		"enable-logging": false,
		"export-dataset": false,
		"params": {
			"ignore-first": false,
			"sampling-time": 1,
			"simulation-duration": 100,
			"arrival-rate": 2,
			"service-rate": 5,
			"iterations": 1,
			"spectrum-width": 400,
			"slot-width": 12.5,
			"modulation": "passband",
			"topology": "` + topologyPath + `",
			"requests": [
				{"type": "default", "modulation": "QPSK", "bandwidth": 100, "allocator": "first-fit", "ratio": 1}
			]
		},
		"modulation": [
			{"type": "QPSK", "bits-per-symbol": 2}
		]
	}`
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigFile_ParsesAllRecognizedKeys(t *testing.T) {
	dir := t.TempDir()
	topology := writeTestTopology(t, dir)
	configPath := writeTestConfig(t, dir, topology)

	loaded, err := LoadConfigFile(configPath, nil)
	require.NoError(t, err)

	require.Equal(t, 2, loaded.Configuration.Graph.Size())
	require.Equal(t, 100.0, loaded.Configuration.TimeUnits)
	require.Equal(t, 5.0, loaded.Configuration.ServiceRate)
	require.Len(t, loaded.Configuration.RequestTypes, 1)
	require.Equal(t, 400.0, loaded.SpectrumWidth)
	require.Equal(t, 12.5, loaded.SlotWidth)
}

func TestLoadConfigFile_ServiceRateOverrideWins(t *testing.T) {
	dir := t.TempDir()
	topology := writeTestTopology(t, dir)
	configPath := writeTestConfig(t, dir, topology)

	override := 99.0
	loaded, err := LoadConfigFile(configPath, &override)
	require.NoError(t, err)
	require.Equal(t, 99.0, loaded.Configuration.ServiceRate)
}

func TestLoadConfigFile_RejectsUnknownAllocator(t *testing.T) {
	dir := t.TempDir()
	topology := writeTestTopology(t, dir)
	contents := `{
		"params": {
			"topology": "` + topology + `",
			"spectrum-width": 400,
			"slot-width": 12.5,
			"requests": [{"type": "x", "modulation": "QPSK", "bandwidth": 100, "allocator": "bogus-fit", "ratio": 1}]
		},
		"modulation": [
			{"type": "QPSK", "bits-per-symbol": 2}
		]
	}`
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o644))

	_, err := LoadConfigFile(configPath, nil)
	require.Error(t, err)
}

func TestLoadConfigFile_RejectsUnknownRequestModulationName(t *testing.T) {
	dir := t.TempDir()
	topology := writeTestTopology(t, dir)
	contents := `{
		"params": {
			"topology": "` + topology + `",
			"spectrum-width": 400,
			"slot-width": 12.5,
			"requests": [{"type": "x", "modulation": "16-QAM", "bandwidth": 100, "allocator": "first-fit", "ratio": 1}]
		},
		"modulation": [
			{"type": "QPSK", "bits-per-symbol": 2}
		]
	}`
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o644))

	_, err := LoadConfigFile(configPath, nil)
	require.Error(t, err)
}

func TestLoadConfigFile_UsesSpectralEfficiencyFromModulationTable(t *testing.T) {
	dir := t.TempDir()
	topology := writeTestTopology(t, dir)
	contents := `{
		"params": {
			"topology": "` + topology + `",
			"spectrum-width": 400,
			"slot-width": 12.5,
			"modulation": "passband",
			"requests": [{"type": "x", "modulation": "16-QAM", "bandwidth": 100, "allocator": "first-fit", "ratio": 1}]
		},
		"modulation": [
			{"type": "16-QAM", "bits-per-symbol": 4}
		]
	}`
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o644))

	loaded, err := LoadConfigFile(configPath, nil)
	require.NoError(t, err)
	require.Len(t, loaded.Configuration.RequestTypes, 1)
	// Passband FSUs = ceil(bandwidth / (spectralEfficiency * slotWidth)) = ceil(100 / (4*12.5)) = 2.
	require.Equal(t, 2, loaded.Configuration.RequestTypes[0].FSUs)
}

func TestLoadConfigFile_MissingFileReturnsError(t *testing.T) {
	_, err := LoadConfigFile("/nonexistent/config.json", nil)
	require.Error(t, err)
}
