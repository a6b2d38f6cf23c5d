package stairs

import (
	"fmt"
	gomath "math"

	"github.com/exhalegfx/escherball/pkg/math"
)

// FlightParams configures the rectangular four-flight rendition of the
// illusion: straight runs of steps whose columns grow by a constant height
// gain, with the whole group yawed so the loop reads as closed from the
// intended viewpoint.
type FlightParams struct {
	StepSize   float32 // step footprint (width and depth), > 0
	BaseHeight float32 // column height of the first step, > 0
	HeightGain float32 // column growth per step, > 0

	// Steps per flight, walked counterclockwise starting toward -Z. The
	// classic staircase is {6, 5, 4, 2}.
	FlightSteps []int

	Origin   math.Vec2 // XZ position of the first step
	GroupYaw float32   // degrees, rotation of the finished group about Y
}

// DefaultFlightParams returns the hand-tuned staircase the project started
// from.
func DefaultFlightParams() FlightParams {
	return FlightParams{
		StepSize:    2,
		BaseHeight:  20,
		HeightGain:  0.25,
		FlightSteps: []int{6, 5, 4, 2},
		Origin:      math.Vec2{X: -6, Y: 4},
		GroupYaw:    225,
	}
}

// Step is one column of the flight layout. Center is the column's world
// center after the group yaw; Size its box dimensions.
type Step struct {
	Index  int
	Flight int // 0 is the lone first step
	Center math.Vec3
	Size   math.Vec3
	Yaw    float32 // degrees, same for every step
}

// TopCenter returns the point on top of the column, raised by clearance.
func (s Step) TopCenter(clearance float32) math.Vec3 {
	return math.Vec3{X: s.Center.X, Y: s.Center.Y + s.Size.Y/2 + clearance, Z: s.Center.Z}
}

// FlightLayout builds the rectangular staircase: the first tall step, then
// each flight turning 90 degrees from the previous one. Step columns keep
// their base on the ground plane and grow by HeightGain per step.
func FlightLayout(p FlightParams) ([]Step, error) {
	if p.StepSize <= 0 || p.BaseHeight <= 0 || p.HeightGain <= 0 {
		return nil, fmt.Errorf("%w: step size %v, base height %v and height gain %v must be > 0",
			ErrInvalidParameter, p.StepSize, p.BaseHeight, p.HeightGain)
	}
	if len(p.FlightSteps) == 0 {
		return nil, fmt.Errorf("%w: no flights", ErrInvalidParameter)
	}
	for i, n := range p.FlightSteps {
		if n < 1 {
			return nil, fmt.Errorf("%w: flight %d has %d steps", ErrInvalidParameter, i+1, n)
		}
	}

	// Walk direction per flight: -Z, +X, +Z, -X, repeating.
	deltas := []math.Vec2{
		{X: 0, Y: -p.StepSize},
		{X: p.StepSize, Y: 0},
		{X: 0, Y: p.StepSize},
		{X: -p.StepSize, Y: 0},
	}

	var steps []Step
	x, z := p.Origin.X, p.Origin.Y
	height := p.BaseHeight

	place := func(flight int) {
		steps = append(steps, Step{
			Index:  len(steps),
			Flight: flight,
			Center: math.Vec3{X: x, Y: height / 2, Z: z},
			Size:   math.Vec3{X: p.StepSize, Y: height, Z: p.StepSize},
			Yaw:    p.GroupYaw,
		})
		height += p.HeightGain
	}

	place(0)
	for f, n := range p.FlightSteps {
		d := deltas[f%len(deltas)]
		for i := 0; i < n; i++ {
			x += d.X
			z += d.Y
			place(f + 1)
		}
	}

	// Yaw the whole group about the world Y axis.
	yaw := float64(p.GroupYaw) * gomath.Pi / 180
	c := float32(gomath.Cos(yaw))
	s := float32(gomath.Sin(yaw))
	for i := range steps {
		px, pz := steps[i].Center.X, steps[i].Center.Z
		steps[i].Center.X = c*px + s*pz
		steps[i].Center.Z = -s*px + c*pz
	}

	return steps, nil
}

// DescendingTops returns the step-top points in the order the ball visits
// them: from the last-placed (highest) column down to the first step.
func DescendingTops(steps []Step, clearance float32) []math.Vec3 {
	tops := make([]math.Vec3, 0, len(steps))
	for i := len(steps) - 1; i >= 0; i-- {
		tops = append(tops, steps[i].TopCenter(clearance))
	}
	return tops
}
