package trajectory

import (
	"fmt"

	"github.com/exhalegfx/escherball/pkg/math"
)

// PathParams configures a trajectory that hops along an ordered list of
// points, one parabolic arc per gap.
type PathParams struct {
	Points []math.Vec3 // visited in order; at least 2

	FrameRate float32 // frames per second, > 0
	Duration  float32 // seconds for the full traversal, > 0

	BounceHeight float32 // apex of each hop above the line between its endpoints
	BounceFactor float32 // steepness of the hop parabola
	SquashFactor float32 // squash at contact / stretch in flight, [0, 1]

	// Loop appends the first point after the last so the traversal ends
	// where it started.
	Loop bool
}

// Path samples a hop-along-points trajectory. Like Generator it is a pure
// function of the frame index.
type Path struct {
	params PathParams
	points []math.Vec3

	totalFrames int
	perHop      float32 // frames per hop
}

// NewPath validates params and fixes the frame layout: the frame budget is
// split evenly across the gaps between consecutive points.
func NewPath(p PathParams) (*Path, error) {
	if len(p.Points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 path points, got %d", ErrInvalidParameter, len(p.Points))
	}
	if p.FrameRate <= 0 {
		return nil, fmt.Errorf("%w: frame rate %v must be > 0", ErrInvalidParameter, p.FrameRate)
	}
	if p.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration %v must be > 0", ErrInvalidParameter, p.Duration)
	}
	if p.BounceHeight <= 0 || p.BounceFactor <= 0 {
		return nil, fmt.Errorf("%w: bounce height %v and factor %v must be > 0", ErrInvalidParameter, p.BounceHeight, p.BounceFactor)
	}
	if p.SquashFactor < 0 || p.SquashFactor > 1 {
		return nil, fmt.Errorf("%w: squash factor %v must be in [0, 1]", ErrInvalidParameter, p.SquashFactor)
	}

	points := make([]math.Vec3, len(p.Points), len(p.Points)+1)
	copy(points, p.Points)
	if p.Loop {
		points = append(points, points[0])
	}

	total := int(p.FrameRate * p.Duration)
	return &Path{
		params:      p,
		points:      points,
		totalFrames: total,
		perHop:      float32(total) / float32(len(points)-1),
	}, nil
}

// TotalFrames returns the number of frames in one full traversal.
func (p *Path) TotalFrames() int {
	return p.totalFrames
}

// LandingFrames returns the frame of every arrival at a path point, in
// order. The start point is not a landing.
func (p *Path) LandingFrames() []int {
	frames := make([]int, 0, len(p.points)-1)
	for i := 1; i < len(p.points); i++ {
		frames = append(frames, int(float32(i)*p.perHop))
	}
	return frames
}

// At evaluates the path trajectory at the given frame. Frames past the end
// hold the final point at neutral scale, matching the closing keyframe of
// the traversal.
func (p *Path) At(frame int) (Sample, error) {
	if frame < 0 {
		return Sample{}, fmt.Errorf("%w: frame %d must be >= 0", ErrInvalidParameter, frame)
	}

	if frame >= p.totalFrames {
		last := p.points[len(p.points)-1]
		return Sample{
			Frame:    frame,
			Position: last,
			Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		}, nil
	}

	hop := int(float32(frame) / p.perHop)
	if hop > len(p.points)-2 {
		hop = len(p.points) - 2
	}
	t := (float32(frame) - float32(hop)*p.perHop) / p.perHop

	start := p.points[hop]
	end := p.points[hop+1]

	// Linear base motion between the two endpoints, with a parabolic hop on
	// top: bh * (1 - bf*(t-0.5)^2), clamped at zero so the arc never dips
	// below the line between the steps.
	pos := math.Vec3{
		X: lerp(start.X, end.X, t),
		Y: lerp(start.Y, end.Y, t),
		Z: lerp(start.Z, end.Z, t),
	}
	bounce := p.params.BounceHeight * (1 - p.params.BounceFactor*(t-0.5)*(t-0.5))

	var scaleY, scaleXZ float32
	if bounce > 0 {
		pos.Y += bounce
		// Stretch grows with height in flight.
		f := p.params.SquashFactor * bounce / p.params.BounceHeight
		scaleY = 1 + f
		scaleXZ = 1 - f
	} else {
		scaleY = 1 - p.params.SquashFactor
		scaleXZ = 1 + p.params.SquashFactor
	}

	// Vertical speed of the combined motion, for completeness of the sample.
	slope := (end.Y - start.Y) / p.perHop * p.params.FrameRate
	arcRate := float32(0)
	if bounce > 0 {
		arcRate = -2 * p.params.BounceHeight * p.params.BounceFactor * (t - 0.5) * p.params.FrameRate / p.perHop
	}

	return Sample{
		Frame:            frame,
		Position:         pos,
		Scale:            math.Vec3{X: scaleXZ, Y: scaleY, Z: scaleXZ},
		VerticalVelocity: slope + arcRate,
	}, nil
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}
