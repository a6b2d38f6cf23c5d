package materials

import (
	"math/rand"
	"sort"
)

// ColorTrack maps a frame index to the ball's emissive color: red at frame
// zero, then a new random color held from each landing until the next.
// Colors are drawn once at construction, so lookups are pure.
type ColorTrack struct {
	landings []int        // sorted ascending
	colors   [][3]float32 // colors[i] applies from landings[i] onward
	initial  [3]float32
}

// NewColorTrack draws one color per landing frame from rng.
func NewColorTrack(landings []int, rng *rand.Rand) *ColorTrack {
	sorted := make([]int, len(landings))
	copy(sorted, landings)
	sort.Ints(sorted)

	colors := make([][3]float32, len(sorted))
	for i := range colors {
		colors[i] = [3]float32{rng.Float32(), rng.Float32(), rng.Float32()}
	}

	return &ColorTrack{
		landings: sorted,
		colors:   colors,
		initial:  [3]float32{1, 0, 0},
	}
}

// At returns the emissive color in effect at the given frame.
func (t *ColorTrack) At(frame int) [3]float32 {
	// Last landing at or before frame.
	i := sort.SearchInts(t.landings, frame+1) - 1
	if i < 0 {
		return t.initial
	}
	return t.colors[i]
}
