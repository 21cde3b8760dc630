package rsa

// Carriers maps a link-key (Cantor pairing of endpoint vertex ids) to the
// Spectrum carried on that directed edge.
type Carriers map[uint64]*Spectrum

// routeKeys returns the ordered sequence of link-keys along route, derived
// by Cantor-pairing consecutive vertices in the order the Route preserves
// them (source to destination).
func routeKeys(route Route) []uint64 {
	if len(route.Vertices) < 2 {
		return nil
	}
	keys := make([]uint64, 0, len(route.Vertices)-1)
	for i := 1; i < len(route.Vertices); i++ {
		keys = append(keys, cantorPair(route.Vertices[i-1], route.Vertices[i]))
	}
	return keys
}

// Dispatch attempts to reserve a contiguous Slice for request across every
// link of its Route. It asks the request's allocator for a candidate on the
// first link, then validates that candidate against every link before
// committing any allocation — so a failure partway through validation never
// mutates carriers. On success, the same Slice is allocated on every link
// and recorded on request.
func Dispatch(carriers Carriers, request *Request) bool {
	keys := routeKeys(request.Route)
	if len(keys) == 0 {
		return false
	}

	first := carriers[keys[0]]
	candidate, ok := request.Type.Allocator(first, request.Type.FSUs)
	if !ok {
		return false
	}

	for _, key := range keys {
		spectrum := carriers[key]
		if spectrum.Available() < request.Type.FSUs || !spectrum.AvailableAt(candidate) {
			return false
		}
	}

	for _, key := range keys {
		carriers[key].Allocate(candidate)
	}
	request.Slice = candidate
	return true
}

// Release deallocates request's Slice on every link of its Route.
func Release(carriers Carriers, request *Request) {
	for _, key := range routeKeys(request.Route) {
		carriers[key].Deallocate(request.Slice)
	}
}
