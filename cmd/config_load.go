package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	rsa "github.com/elastic-optical/rsa-sim/rsa"
)

// requestTypeSpec is the on-disk shape of one entry of params.requests.
type requestTypeSpec struct {
	Type       string  `json:"type"`
	Modulation string  `json:"modulation"`
	Bandwidth  float64 `json:"bandwidth"`
	Allocator  string  `json:"allocator"`
	Ratio      float64 `json:"ratio"`
}

// modulationSpec is the on-disk shape of one entry of the top-level
// modulation array.
type modulationSpec struct {
	Type          string  `json:"type"`
	BitsPerSymbol float64 `json:"bits-per-symbol"`
}

type paramsSpec struct {
	IgnoreFirst        bool              `json:"ignore-first"`
	SamplingTime       float64           `json:"sampling-time"`
	SimulationDuration float64           `json:"simulation-duration"`
	ArrivalRate        float64           `json:"arrival-rate"`
	ServiceRate        float64           `json:"service-rate"`
	Iterations         int               `json:"iterations"`
	SpectrumWidth      float64           `json:"spectrum-width"`
	SlotWidth          float64           `json:"slot-width"`
	Modulation         string            `json:"modulation"`
	Topology           string            `json:"topology"`
	Requests           []requestTypeSpec `json:"requests"`
}

// fileSpec is the full on-disk JSON configuration document.
type fileSpec struct {
	EnableLogging bool             `json:"enable-logging"`
	ExportDataset bool             `json:"export-dataset"`
	Params        paramsSpec       `json:"params"`
	Modulation    []modulationSpec `json:"modulation"`
}

// LoadedConfig bundles the parsed Configuration with the run-level output
// options that don't belong on rsa.Configuration itself.
type LoadedConfig struct {
	Configuration *rsa.Configuration
	EnableLogging bool
	ExportDataset bool
	Iterations    int
	SpectrumWidth float64
	SlotWidth     float64
}

// LoadConfigFile reads and validates the JSON configuration file at path,
// applying serviceRateOverride when non-nil.
func LoadConfigFile(path string, serviceRateOverride *float64) (*LoadedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file: %w", err)
	}

	var spec fileSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing configuration JSON: %w", err)
	}

	if spec.Params.Topology == "" {
		return nil, fmt.Errorf("configuration missing required key params.topology")
	}
	graph, err := rsa.GraphFromAdjacencyMatrix(spec.Params.Topology)
	if err != nil {
		return nil, fmt.Errorf("loading topology: %w", err)
	}

	if spec.Params.SpectrumWidth <= 0 || spec.Params.SlotWidth <= 0 {
		return nil, fmt.Errorf("configuration requires positive params.spectrum-width and params.slot-width")
	}
	fsusPerLink := int(spec.Params.SpectrumWidth / spec.Params.SlotWidth)

	serviceRate := spec.Params.ServiceRate
	if serviceRateOverride != nil {
		serviceRate = *serviceRateOverride
	}

	modulationKind, err := parseModulationKind(spec.Params.Modulation)
	if err != nil {
		return nil, err
	}

	rand := rsa.NewRandomNumberService()
	rand.SetExponential("arrival", spec.Params.ArrivalRate)
	rand.SetExponential("service", serviceRate)
	rand.SetUniform("routing", 0, float64(graph.Size()))
	rand.SetUniform("random_fit", 0, 1)

	spectralEfficiencies := make(map[string]float64, len(spec.Modulation))
	for _, m := range spec.Modulation {
		spectralEfficiencies[m.Type] = m.BitsPerSymbol
	}

	requestTypes, err := buildRequestTypes(spec.Params.Requests, modulationKind, spec.Params.SlotWidth, spectralEfficiencies, rand)
	if err != nil {
		return nil, err
	}

	ratios := make([]float64, len(requestTypes))
	for i, rt := range requestTypes {
		ratios[i] = rt.Ratio
	}
	rand.SetDiscrete("fsus", ratios)

	config := &rsa.Configuration{
		Graph:        graph,
		IgnoreFirst:  spec.Params.IgnoreFirst,
		SamplingTime: spec.Params.SamplingTime,
		TimeUnits:    spec.Params.SimulationDuration,
		ArrivalRate:  spec.Params.ArrivalRate,
		ServiceRate:  serviceRate,
		Iterations:   spec.Params.Iterations,
		FSUsPerLink:  fsusPerLink,
		RequestTypes: requestTypes,
		Logger:       rsa.NewLogger(spec.EnableLogging),
		Rand:         rand,
	}

	return &LoadedConfig{
		Configuration: config,
		EnableLogging: spec.EnableLogging,
		ExportDataset: spec.ExportDataset,
		Iterations:    spec.Params.Iterations,
		SpectrumWidth: spec.Params.SpectrumWidth,
		SlotWidth:     spec.Params.SlotWidth,
	}, nil
}

func parseModulationKind(name string) (rsa.ModulationKind, error) {
	switch name {
	case "", "passband":
		return rsa.ModulationPassband, nil
	case "gigabits":
		return rsa.ModulationGigabits, nil
	case "terabits":
		return rsa.ModulationTerabits, nil
	default:
		return 0, fmt.Errorf("unknown modulation %q; valid options: passband, gigabits, terabits", name)
	}
}

func parseAllocator(name string, rand *rsa.RandomNumberService) (rsa.Allocator, error) {
	switch name {
	case "best-fit":
		return rsa.BestFit, nil
	case "first-fit":
		return rsa.FirstFit, nil
	case "last-fit":
		return rsa.LastFit, nil
	case "random-fit":
		return rsa.RandomFitWith(rand), nil
	case "worst-fit":
		return rsa.WorstFit, nil
	default:
		return nil, fmt.Errorf("unknown allocator %q; valid options: best-fit, first-fit, last-fit, random-fit, worst-fit", name)
	}
}

// buildRequestTypes resolves each request's FSUs footprint. kind (the
// passband/gigabits/terabits formula) is selected once, globally, from
// params.modulation; each request's own "modulation" field is instead a
// name looked up in spectralEfficiencies (the top-level modulation[*]
// table) to find its bits-per-symbol.
func buildRequestTypes(specs []requestTypeSpec, kind rsa.ModulationKind, slotWidth float64, spectralEfficiencies map[string]float64, rand *rsa.RandomNumberService) ([]*rsa.RequestType, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("configuration requires at least one entry in params.requests")
	}

	types := make([]*rsa.RequestType, 0, len(specs))
	for _, rts := range specs {
		spectralEfficiency, ok := spectralEfficiencies[rts.Modulation]
		if !ok {
			return nil, fmt.Errorf("request type %q: modulation %q not found in top-level modulation table", rts.Type, rts.Modulation)
		}

		allocator, err := parseAllocator(rts.Allocator, rand)
		if err != nil {
			return nil, err
		}

		distance := spectrumDistanceSentinel(kind)
		fsus := rsa.RequiredFSUs(kind, rsa.Cost(rts.Bandwidth), rsa.Cost(spectralEfficiency), rsa.Cost(slotWidth), distance)

		types = append(types, &rsa.RequestType{
			Name:           rts.Type,
			ModulationName: rts.Modulation,
			Allocator:      allocator,
			Bandwidth:      rsa.Cost(rts.Bandwidth),
			FSUs:           fsus,
			Ratio:          rts.Ratio,
		})
	}
	return types, nil
}

// spectrumDistanceSentinel returns the maximum Cost for the adaptive
// modulation kinds, since the config path has no per-request distance to
// supply, and is unused (zero) for passband, whose FSUs derive from
// bandwidth alone.
func spectrumDistanceSentinel(kind rsa.ModulationKind) rsa.Cost {
	if kind == rsa.ModulationPassband {
		return 0
	}
	return rsa.CostMax()
}
