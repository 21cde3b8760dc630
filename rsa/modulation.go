package rsa

import "math"

// ModulationKind selects one of the three bandwidth/distance-to-FSU-count
// mapping strategies. Modeled as a closed tagged union since the set never
// grows at runtime.
type ModulationKind int

const (
	// ModulationPassband computes FSUs from bandwidth and spectral
	// efficiency.
	ModulationPassband ModulationKind = iota
	// ModulationGigabits is a distance-to-FSU step function for
	// lower-rate adaptive modulation.
	ModulationGigabits
	// ModulationTerabits is a distance-to-FSU step function for
	// higher-rate adaptive modulation.
	ModulationTerabits
)

// maxFSUs is the sentinel returned by the adaptive step functions when no
// modulation format reaches the requested distance.
const maxFSUs = math.MaxInt32

// RequiredFSUs computes the number of FSUs a request needs under kind.
// For ModulationPassband, bandwidth/spectralEfficiency/slotWidth determine
// the count; distance is ignored. For the adaptive kinds, distance (in km)
// determines the count via a step function and bandwidth is ignored.
func RequiredFSUs(kind ModulationKind, bandwidth, spectralEfficiency, slotWidth, distance Cost) int {
	switch kind {
	case ModulationPassband:
		return int(math.Ceil(float64(bandwidth) / (float64(spectralEfficiency) * float64(slotWidth))))
	case ModulationGigabits:
		return gigabitsFSUs(distance)
	case ModulationTerabits:
		return terabitsFSUs(distance)
	default:
		panic("rsa: unhandled modulation kind")
	}
}

func gigabitsFSUs(distance Cost) int {
	switch {
	case distance <= 160:
		return 5
	case distance <= 880:
		return 6
	case distance <= 2480:
		return 7
	case distance <= 3120:
		return 9
	case distance <= 5000:
		return 10
	case distance <= 6080:
		return 12
	case distance <= 8000:
		return 13
	default:
		return maxFSUs
	}
}

func terabitsFSUs(distance Cost) int {
	switch {
	case distance <= 400:
		return 14
	case distance <= 800:
		return 15
	case distance <= 1600:
		return 17
	case distance <= 3040:
		return 19
	case distance <= 4160:
		return 22
	case distance <= 6400:
		return 25
	case distance <= 8000:
		return 28
	default:
		return maxFSUs
	}
}
