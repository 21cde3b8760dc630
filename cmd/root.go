// cmd/root.go
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	rsa "github.com/elastic-optical/rsa-sim/rsa"
)

const defaultConfigPath = "resources/configuration/configuration.json"

var logLevel string

// rootCmd itself takes the positional args directly (no "run" keyword):
// rsa-sim <service-rate-override?> <config-path?> <output-dir>.
var rootCmd = &cobra.Command{
	Use:   "rsa-sim <service-rate-override?> <config-path?> <output-dir>",
	Short: "Discrete-event simulator for elastic optical network spectrum assignment",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		serviceRateOverride, configPath, outputDir, err := parseRunArgs(args)
		if err != nil {
			return err
		}

		return runSimulation(serviceRateOverride, configPath, outputDir)
	},
}

// parseRunArgs maps the CLI's optional-prefix positional args onto
// (serviceRateOverride, configPath, outputDir): the first two are each
// optional, but outputDir is always the final argument.
func parseRunArgs(args []string) (*float64, string, string, error) {
	configPath := defaultConfigPath
	var serviceRateOverride *float64

	switch len(args) {
	case 1:
		return nil, configPath, args[0], nil
	case 2:
		rate, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			// argv[1] wasn't numeric: treat it as the config path instead,
			// with argv[2] being the output dir.
			return nil, args[0], args[1], nil
		}
		serviceRateOverride = &rate
		return serviceRateOverride, configPath, args[1], nil
	case 3:
		rate, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, "", "", fmt.Errorf("parsing service-rate override %q: %w", args[0], err)
		}
		serviceRateOverride = &rate
		return serviceRateOverride, args[1], args[2], nil
	default:
		return nil, "", "", fmt.Errorf("expected 1 to 3 positional arguments, got %d", len(args))
	}
}

func runSimulation(serviceRateOverride *float64, configPath, outputDir string) error {
	loaded, err := LoadConfigFile(configPath, serviceRateOverride)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	iterations := loaded.Iterations
	if iterations <= 0 {
		iterations = 1
	}

	for i := 0; i < iterations; i++ {
		start := time.Now()

		k := rsa.NewKernel(loaded.Configuration)
		k.Run()

		elapsed := time.Since(start)
		timestamp := start.Format(time.RFC3339)

		report := buildIterationReport(timestamp, loaded.Configuration, loaded.SpectrumWidth, loaded.SlotWidth, k, i, elapsed)

		base := fmt.Sprintf("%02d", i)
		if err := writeTextReport(fmt.Sprintf("%s/%s_report.txt", outputDir, base), report); err != nil {
			return err
		}
		if err := writeYAMLReport(fmt.Sprintf("%s/%s_report.yaml", outputDir, base), report); err != nil {
			return err
		}

		// The dataset CSV is written whenever export-dataset does not
		// explicitly suppress it.
		if !loaded.ExportDataset {
			if err := writeDatasetCSV(fmt.Sprintf("%s/%s_dataset.csv", outputDir, base), k.Snapshots()); err != nil {
				return err
			}
		}

		loaded.Configuration.Rand.SetSeed(loaded.Configuration.Rand.Seed() + 1)
	}

	return nil
}

// Execute runs the root command, exiting 1 on any top-level error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (debug, info, warn, error)")
}
