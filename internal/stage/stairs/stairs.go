// Package stairs lays out the impossible staircase: a closed loop of stair
// segments in which every segment appears to climb toward the next while the
// loop's net vertical displacement stays zero.
package stairs

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/exhalegfx/escherball/pkg/math"
)

// ErrInvalidParameter is returned when a layout parameter is out of range.
var ErrInvalidParameter = errors.New("stairs: invalid parameter")

// Params configures the ring layout.
type Params struct {
	SegmentCount int     // >= 4
	StepHeight   float32 // > 0, local rise per segment
	StepDepth    float32 // > 0
	LoopRadius   float32 // > 0
}

// Segment is one stair segment of the loop. Rotation is in degrees: X pitch,
// Y yaw, Z roll.
type Segment struct {
	Index      int
	Position   math.Vec3
	Rotation   math.Vec3
	StepHeight float32
	StepDepth  float32
}

// RingLayout places SegmentCount segments evenly on a horizontal circle.
// Each segment's yaw points its climbing direction at the next segment and
// its pitch is the constant grade that rises StepHeight over one segment, so
// every segment reads as ascending while the loop closes at height zero.
func RingLayout(p Params) ([]Segment, error) {
	if p.SegmentCount < 4 {
		return nil, fmt.Errorf("%w: segment count %d must be >= 4", ErrInvalidParameter, p.SegmentCount)
	}
	if p.StepHeight <= 0 {
		return nil, fmt.Errorf("%w: step height %v must be > 0", ErrInvalidParameter, p.StepHeight)
	}
	if p.StepDepth <= 0 {
		return nil, fmt.Errorf("%w: step depth %v must be > 0", ErrInvalidParameter, p.StepDepth)
	}
	if p.LoopRadius <= 0 {
		return nil, fmt.Errorf("%w: loop radius %v must be > 0", ErrInvalidParameter, p.LoopRadius)
	}

	n := p.SegmentCount
	yawStep := 360.0 / float32(n)

	// The perceived grade rises StepHeight over the chord between two
	// neighboring segments.
	chord := 2 * p.LoopRadius * sin32(gomath.Pi/float32(n))
	pitch := deg32(atan232(p.StepHeight, chord))

	segments := make([]Segment, n)
	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * gomath.Pi / float64(n)
		segments[i] = Segment{
			Index: i,
			Position: math.Vec3{
				X: p.LoopRadius * float32(gomath.Cos(angle)),
				Y: 0,
				Z: p.LoopRadius * float32(gomath.Sin(angle)),
			},
			// Yaw as i*step so the delta between neighbors is exact.
			Rotation:   math.Vec3{X: pitch, Y: float32(i) * yawStep, Z: 0},
			StepHeight: p.StepHeight,
			StepDepth:  p.StepDepth,
		}
	}
	return segments, nil
}

// TopCenters returns the point a ball would land on for each segment: the
// segment position raised by the step height plus the given clearance.
func TopCenters(segments []Segment, clearance float32) []math.Vec3 {
	tops := make([]math.Vec3, len(segments))
	for i, s := range segments {
		tops[i] = math.Vec3{X: s.Position.X, Y: s.Position.Y + s.StepHeight + clearance, Z: s.Position.Z}
	}
	return tops
}

func sin32(x float32) float32 {
	return float32(gomath.Sin(float64(x)))
}

func atan232(y, x float32) float32 {
	return float32(gomath.Atan2(float64(y), float64(x)))
}

func deg32(rad float32) float32 {
	return rad * 180 / gomath.Pi
}
