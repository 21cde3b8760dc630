package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	rsa "github.com/elastic-optical/rsa-sim/rsa"
)

// requestTypeReport is the per-RequestType slice of one iterationReport:
// its observed share of traffic, its own grade of service, and the load it
// contributes to a link.
type requestTypeReport struct {
	Name           string  `yaml:"name"`
	Ratio          float64 `yaml:"ratio"`
	GradeOfService float64 `yaml:"grade_of_service"`
	NormalizedLoad float64 `yaml:"normalized_load"`
}

// iterationReport is everything printed into NN_report.txt / NN_report.yaml
// for one completed iteration.
type iterationReport struct {
	Timestamp        string              `yaml:"timestamp"`
	Seed             uint64              `yaml:"seed"`
	SimulatedTime    float64             `yaml:"simulated_time"`
	SpectrumWidth    float64             `yaml:"spectrum_width"`
	SlotWidth        float64             `yaml:"slot_width"`
	FSUsPerLink      int                 `yaml:"fsus_per_link"`
	ArrivalRate      float64             `yaml:"arrival_rate"`
	ServiceRate      float64             `yaml:"service_rate"`
	Load             float64             `yaml:"load"`
	GradeOfService   float64             `yaml:"grade_of_service"`
	RequestTypes     []requestTypeReport `yaml:"request_types"`
	Iteration        int                 `yaml:"iteration"`
	WallClockElapsed string              `yaml:"wall_clock_elapsed"`
}

// buildIterationReport summarizes a finished Kernel run. wallClock is the
// elapsed real time measured by the caller; the Kernel itself stays free of
// wall-clock concerns.
//
// Per-RequestType figures are the simulation-observed counters (counting,
// blocking), not the configured input ratio: ratio = counting/requestCount,
// grade of service = blocking/requestCount, and normalized load =
// arrivalRate * (FSUs/FSUsPerLink). Load (E), the separate overall
// arrivalRate/serviceRate figure, is reported once for the whole run.
func buildIterationReport(timestamp string, config *rsa.Configuration, spectrumWidth, slotWidth float64, k *rsa.Kernel, iteration int, wallClock time.Duration) iterationReport {
	stats := k.Statistics()
	requestCount := float64(stats.TotalRequests)

	requestTypes := make([]requestTypeReport, 0, len(config.RequestTypes))
	for _, rt := range config.RequestTypes {
		var ratio, gos float64
		if requestCount > 0 {
			ratio = float64(rt.Counting) / requestCount
			gos = float64(rt.Blocking) / requestCount
		}

		normalizedLoad := 0.0
		if config.FSUsPerLink > 0 {
			normalizedLoad = config.ArrivalRate * (float64(rt.FSUs) / float64(config.FSUsPerLink))
		}

		requestTypes = append(requestTypes, requestTypeReport{
			Name:           rt.Name,
			Ratio:          ratio,
			GradeOfService: gos,
			NormalizedLoad: normalizedLoad,
		})
	}

	load := 0.0
	if config.ServiceRate > 0 {
		load = config.ArrivalRate / config.ServiceRate
	}

	return iterationReport{
		Timestamp:        timestamp,
		Seed:             config.Rand.Seed(),
		SimulatedTime:    stats.Time,
		SpectrumWidth:    spectrumWidth,
		SlotWidth:        slotWidth,
		FSUsPerLink:      config.FSUsPerLink,
		ArrivalRate:      config.ArrivalRate,
		ServiceRate:      config.ServiceRate,
		Load:             load,
		GradeOfService:   stats.GradeOfService(),
		RequestTypes:     requestTypes,
		Iteration:        iteration,
		WallClockElapsed: wallClock.String(),
	}
}

// writeTextReport renders the report as human-readable key-value pairs.
func writeTextReport(path string, r iterationReport) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating report file %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Warnf("closing report file %s: %v", path, closeErr)
		}
	}()

	lines := []struct {
		key   string
		value string
	}{
		{"timestamp", r.Timestamp},
		{"seed", strconv.FormatUint(r.Seed, 10)},
		{"simulated_time", strconv.FormatFloat(r.SimulatedTime, 'f', 3, 64)},
		{"spectrum_width", strconv.FormatFloat(r.SpectrumWidth, 'f', 3, 64)},
		{"slot_width", strconv.FormatFloat(r.SlotWidth, 'f', 3, 64)},
		{"fsus_per_link", strconv.Itoa(r.FSUsPerLink)},
		{"arrival_rate", strconv.FormatFloat(r.ArrivalRate, 'f', 6, 64)},
		{"service_rate", strconv.FormatFloat(r.ServiceRate, 'f', 6, 64)},
		{"load", strconv.FormatFloat(r.Load, 'f', 6, 64)},
		{"grade_of_service", strconv.FormatFloat(r.GradeOfService, 'f', 6, 64)},
		{"iteration", strconv.Itoa(r.Iteration)},
		{"wall_clock_elapsed", r.WallClockElapsed},
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(file, "%s: %s\n", l.key, l.value); err != nil {
			return fmt.Errorf("writing report file %s: %w", path, err)
		}
	}
	for _, rt := range r.RequestTypes {
		if _, err := fmt.Fprintf(file, "request_type[%s].ratio: %s\n", rt.Name, strconv.FormatFloat(rt.Ratio, 'f', 6, 64)); err != nil {
			return fmt.Errorf("writing report file %s: %w", path, err)
		}
		if _, err := fmt.Fprintf(file, "request_type[%s].grade_of_service: %s\n", rt.Name, strconv.FormatFloat(rt.GradeOfService, 'f', 6, 64)); err != nil {
			return fmt.Errorf("writing report file %s: %w", path, err)
		}
		if _, err := fmt.Fprintf(file, "request_type[%s].normalized_load: %s\n", rt.Name, strconv.FormatFloat(rt.NormalizedLoad, 'f', 6, 64)); err != nil {
			return fmt.Errorf("writing report file %s: %w", path, err)
		}
	}

	return nil
}

// writeYAMLReport writes the same report as a machine-readable supplement
// to the required .txt/.csv outputs (SPEC_FULL.md §7).
func writeYAMLReport(path string, r iterationReport) error {
	out, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report YAML: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing report YAML %s: %w", path, err)
	}
	return nil
}

// writeDatasetCSV writes one row per fragmentation snapshot.
func writeDatasetCSV(path string, snapshots []rsa.Statistics) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating dataset file %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Warnf("closing dataset file %s: %v", path, closeErr)
		}
	}()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"time", "absolute_fragmentation", "entropy", "external_fragmentation", "grade_of_service", "slot_blocking_probability", "active_requests"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing dataset header %s: %w", path, err)
	}

	for _, s := range snapshots {
		row := []string{
			strconv.FormatFloat(s.Time, 'f', 6, 64),
			strconv.FormatFloat(s.AbsoluteFrag, 'f', 6, 64),
			strconv.FormatFloat(s.EntropyFrag, 'f', 6, 64),
			strconv.FormatFloat(s.ExternalFrag, 'f', 6, 64),
			strconv.FormatFloat(s.GradeOfService(), 'f', 6, 64),
			strconv.FormatFloat(s.SlotBlockingProbability(), 'f', 6, 64),
			strconv.FormatInt(s.ActiveRequests, 10),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing dataset row %s: %w", path, err)
		}
	}

	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing dataset %s: %w", path, err)
	}
	return nil
}
