package rsa

import (
	"fmt"
	"sort"
	"strings"
)

// Slice is an inclusive integer interval of FSU indices.
type Slice struct {
	Start int
	End   int
}

// Width returns the number of FSUs covered by the slice.
func (s Slice) Width() int { return s.End - s.Start + 1 }

// contains reports whether other lies entirely inside s.
func (s Slice) contains(other Slice) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// FSU (Frequency Slot Unit) is the smallest indivisible unit of optical
// spectrum on a link.
type FSU struct {
	Allocated bool
	// Occupancy counts cumulative historical allocations of this slot
	// index. It is write-only telemetry: no control-flow decision reads it.
	Occupancy uint64
}

// Spectrum is the per-link slot vector and its free-list, for one link.
// Invariants: free slices are sorted by Start, pairwise disjoint, and never
// adjacent (adjacent free slices are always merged into one).
type Spectrum struct {
	resources []FSU
	free      []Slice
}

// NewSpectrum creates a Spectrum of n FSUs, entirely free.
func NewSpectrum(n int) *Spectrum {
	s := &Spectrum{resources: make([]FSU, n)}
	if n > 0 {
		s.free = []Slice{{Start: 0, End: n - 1}}
	}
	return s
}

// Size returns the number of FSUs on this link.
func (s *Spectrum) Size() int { return len(s.resources) }

// Available returns the total width of free spectrum.
func (s *Spectrum) Available() int {
	total := 0
	for _, f := range s.free {
		total += f.Width()
	}
	return total
}

// AvailableAt reports whether slice lies entirely within a single free
// slice.
func (s *Spectrum) AvailableAt(slice Slice) bool {
	for _, f := range s.free {
		if f.contains(slice) {
			return true
		}
	}
	return false
}

// FreeSlices returns a copy of the current free list, sorted by Start.
func (s *Spectrum) FreeSlices() []Slice {
	out := make([]Slice, len(s.free))
	copy(out, s.free)
	return out
}

// At returns the FSU at index i.
func (s *Spectrum) At(i int) FSU { return s.resources[i] }

// Allocate marks every index in slice as allocated and splits the
// containing free slice accordingly. Pre: slice lies entirely inside some
// free slice (callers must check AvailableAt first); violating the
// precondition is a programming error and Allocate reports it via the bool
// return rather than mutating partially.
func (s *Spectrum) Allocate(slice Slice) bool {
	idx := -1
	for i, f := range s.free {
		if f.contains(slice) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	for i := slice.Start; i <= slice.End; i++ {
		s.resources[i].Allocated = true
		s.resources[i].Occupancy++
	}

	f := s.free[idx]
	switch {
	case f.Start == slice.Start && f.End == slice.End:
		s.free = append(s.free[:idx], s.free[idx+1:]...)
	case f.Start == slice.Start:
		s.free[idx] = Slice{Start: slice.End + 1, End: f.End}
	case f.End == slice.End:
		s.free[idx] = Slice{Start: f.Start, End: slice.Start - 1}
	default:
		left := Slice{Start: f.Start, End: slice.Start - 1}
		right := Slice{Start: slice.End + 1, End: f.End}
		s.free = append(s.free[:idx], append([]Slice{left, right}, s.free[idx+1:]...)...)
	}
	return true
}

// Deallocate clears allocation on every index in slice and merges it back
// into the free list, coalescing with adjacent free neighbors. Pre: every
// index in slice is currently allocated; releasing an already-free slot is
// a programming error and Deallocate reports false instead of corrupting
// the free list.
func (s *Spectrum) Deallocate(slice Slice) bool {
	for i := slice.Start; i <= slice.End; i++ {
		if !s.resources[i].Allocated {
			return false
		}
	}
	for i := slice.Start; i <= slice.End; i++ {
		s.resources[i].Allocated = false
	}

	pos := sort.Search(len(s.free), func(i int) bool { return s.free[i].End >= slice.Start })

	mergedLeft := pos > 0 && s.free[pos-1].End+1 == slice.Start
	mergedRight := pos < len(s.free) && slice.End+1 == s.free[pos].Start

	switch {
	case mergedLeft && mergedRight:
		merged := Slice{Start: s.free[pos-1].Start, End: s.free[pos].End}
		s.free = append(s.free[:pos-1], append([]Slice{merged}, s.free[pos+1:]...)...)
	case mergedLeft:
		s.free[pos-1].End = slice.End
	case mergedRight:
		s.free[pos].Start = slice.Start
	default:
		s.free = append(s.free[:pos], append([]Slice{slice}, s.free[pos:]...)...)
	}
	return true
}

// Serialize renders the free list as a compact string, mirroring
// original_source's Spectrum::Serialize for debugging/tests.
func (s *Spectrum) Serialize() string {
	parts := make([]string, len(s.free))
	for i, f := range s.free {
		parts[i] = fmt.Sprintf("[%d,%d]", f.Start, f.End)
	}
	return strings.Join(parts, ",")
}
