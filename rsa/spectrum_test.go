package rsa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newFittedSpectrum(t *testing.T, width int, allocations ...Slice) *Spectrum {
	t.Helper()
	s := NewSpectrum(width)
	for _, a := range allocations {
		require.True(t, s.Allocate(a), "allocation %v should succeed on a fresh spectrum", a)
	}
	return s
}

func TestSpectrum_InitialState(t *testing.T) {
	s := NewSpectrum(10)
	require.Equal(t, 10, s.Size())
	require.Equal(t, 10, s.Available())
	require.Equal(t, []Slice{{Start: 0, End: 9}}, s.FreeSlices())
}

func TestSpectrum_Allocate_ExactMatch(t *testing.T) {
	s := NewSpectrum(4)
	require.True(t, s.Allocate(Slice{Start: 0, End: 3}))
	require.Empty(t, s.FreeSlices())
	require.Equal(t, 0, s.Available())
}

func TestSpectrum_Allocate_LeftAligned(t *testing.T) {
	s := NewSpectrum(10)
	require.True(t, s.Allocate(Slice{Start: 0, End: 1}))
	require.Equal(t, []Slice{{Start: 2, End: 9}}, s.FreeSlices())
}

func TestSpectrum_Allocate_RightAligned(t *testing.T) {
	s := NewSpectrum(10)
	require.True(t, s.Allocate(Slice{Start: 8, End: 9}))
	require.Equal(t, []Slice{{Start: 0, End: 7}}, s.FreeSlices())
}

func TestSpectrum_Allocate_Middle(t *testing.T) {
	s := NewSpectrum(10)
	require.True(t, s.Allocate(Slice{Start: 4, End: 5}))
	require.Equal(t, []Slice{{Start: 0, End: 3}, {Start: 6, End: 9}}, s.FreeSlices())
}

func TestSpectrum_Allocate_OutOfRangeFails(t *testing.T) {
	s := NewSpectrum(10)
	require.True(t, s.Allocate(Slice{Start: 0, End: 3}))
	require.False(t, s.Allocate(Slice{Start: 2, End: 5}), "overlapping allocation must fail without mutating")
	require.Equal(t, []Slice{{Start: 4, End: 9}}, s.FreeSlices())
}

func TestSpectrum_Deallocate_MergesBothNeighbors(t *testing.T) {
	s := NewSpectrum(10)
	require.True(t, s.Allocate(Slice{Start: 0, End: 1}))
	require.True(t, s.Allocate(Slice{Start: 5, End: 7}))
	// free is now [2,4] and [8,9]; release [0,1] and [5,7] to reconstruct
	// the full range, merging with both neighbors in turn.
	require.True(t, s.Deallocate(Slice{Start: 0, End: 1}))
	require.True(t, s.Deallocate(Slice{Start: 5, End: 7}))
	require.Equal(t, []Slice{{Start: 0, End: 9}}, s.FreeSlices())
}

func TestSpectrum_Deallocate_AlreadyFreeFails(t *testing.T) {
	s := NewSpectrum(10)
	require.False(t, s.Deallocate(Slice{Start: 0, End: 1}))
}

func TestSpectrum_AllocateDeallocateRoundTrip(t *testing.T) {
	s := NewSpectrum(10)
	require.True(t, s.Allocate(Slice{Start: 0, End: 1}))
	require.True(t, s.Allocate(Slice{Start: 5, End: 7}))
	before := s.FreeSlices()

	candidate := Slice{Start: 2, End: 3}
	require.True(t, s.Allocate(candidate))
	require.True(t, s.Deallocate(candidate))

	require.Equal(t, before, s.FreeSlices())

	require.True(t, s.Allocate(candidate))
	require.Equal(t, []Slice{{Start: 4, End: 4}, {Start: 8, End: 9}}, s.FreeSlices())
}

func TestSpectrum_AvailableAt(t *testing.T) {
	s := newFittedSpectrum(t, 10, Slice{Start: 0, End: 1}, Slice{Start: 5, End: 7})
	require.True(t, s.AvailableAt(Slice{Start: 2, End: 4}))
	require.True(t, s.AvailableAt(Slice{Start: 8, End: 9}))
	require.False(t, s.AvailableAt(Slice{Start: 2, End: 5}))
	require.False(t, s.AvailableAt(Slice{Start: 0, End: 0}))
}

func TestSpectrum_Occupancy(t *testing.T) {
	s := NewSpectrum(4)
	require.True(t, s.Allocate(Slice{Start: 0, End: 1}))
	require.True(t, s.Deallocate(Slice{Start: 0, End: 1}))
	require.True(t, s.Allocate(Slice{Start: 0, End: 0}))
	require.EqualValues(t, 2, s.At(0).Occupancy)
	require.EqualValues(t, 0, s.At(2).Occupancy)
}
