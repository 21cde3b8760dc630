package rsa

// Allocator selects a candidate Slice of the given width from a Spectrum's
// free list, or reports no fit found. A fit policy never mutates the
// Spectrum; the Dispatcher commits the allocation once it has validated the
// candidate across every link of a route.
type Allocator func(s *Spectrum, width int) (Slice, bool)

// candidateSlices returns every free slice wide enough for width, in the
// free list's stored (ascending-Start) order.
func candidateSlices(s *Spectrum, width int) []Slice {
	var out []Slice
	for _, f := range s.free {
		if f.Width() >= width {
			out = append(out, f)
		}
	}
	return out
}

// FirstFit selects the lowest-start free slice wide enough for width.
func FirstFit(s *Spectrum, width int) (Slice, bool) {
	for _, f := range s.free {
		if f.Width() >= width {
			return Slice{Start: f.Start, End: f.Start + width - 1}, true
		}
	}
	return Slice{}, false
}

// LastFit selects the highest-start free slice wide enough for width.
func LastFit(s *Spectrum, width int) (Slice, bool) {
	for i := len(s.free) - 1; i >= 0; i-- {
		f := s.free[i]
		if f.Width() >= width {
			return Slice{Start: f.Start, End: f.Start + width - 1}, true
		}
	}
	return Slice{}, false
}

// BestFit selects the candidate free slice of minimum width, breaking ties
// on lowest Start.
func BestFit(s *Spectrum, width int) (Slice, bool) {
	candidates := candidateSlices(s, width)
	if len(candidates) == 0 {
		return Slice{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Width() < best.Width() || (c.Width() == best.Width() && c.Start < best.Start) {
			best = c
		}
	}
	return Slice{Start: best.Start, End: best.Start + width - 1}, true
}

// WorstFit selects the candidate free slice of maximum width, breaking ties
// on lowest Start.
func WorstFit(s *Spectrum, width int) (Slice, bool) {
	candidates := candidateSlices(s, width)
	if len(candidates) == 0 {
		return Slice{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Width() > best.Width() || (c.Width() == best.Width() && c.Start < best.Start) {
			best = c
		}
	}
	return Slice{Start: best.Start, End: best.Start + width - 1}, true
}

// RandomFitWith enumerates every starting position across the whole
// spectrum for which a width-wide window fits entirely inside one free
// slice, then draws uniformly among those positions via rand's
// "random_fit" stream. Enumerating positions (rather than sampling a free
// slice and left-aligning within it) is what lets two free slices of width
// 3 and 2 produce five distinct single-FSU outcomes.
func RandomFitWith(rand *RandomNumberService) Allocator {
	return func(s *Spectrum, width int) (Slice, bool) {
		var starts []int
		for _, f := range s.free {
			if f.Width() < width {
				continue
			}
			for start := f.Start; start+width-1 <= f.End; start++ {
				starts = append(starts, start)
			}
		}
		if len(starts) == 0 {
			return Slice{}, false
		}
		start := starts[rand.Intn("random_fit", len(starts))]
		return Slice{Start: start, End: start + width - 1}, true
	}
}
