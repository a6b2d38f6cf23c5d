// Package stage assembles the whole scene from configuration: staircase
// layout, ball trajectory, backdrop walls with frames, lights and the
// emissive color track. Everything here is pure computation; the renderer
// and the inspection tool both consume the result.
package stage

import (
	"fmt"
	"math/rand"

	"github.com/exhalegfx/escherball/internal/config"
	"github.com/exhalegfx/escherball/internal/engine/lighting"
	"github.com/exhalegfx/escherball/internal/stage/materials"
	"github.com/exhalegfx/escherball/internal/stage/stairs"
	"github.com/exhalegfx/escherball/internal/stage/trajectory"
	"github.com/exhalegfx/escherball/internal/stage/walls"
	"github.com/exhalegfx/escherball/pkg/math"
)

// Frames hang this far off their wall's front face.
const frameStandoff = 0.25

// Stage is the fully generated scene. Immutable once built; safe to sample
// from multiple goroutines.
type Stage struct {
	Layout string

	// Exactly one of these is populated, depending on Layout.
	Steps    []stairs.Step
	Segments []stairs.Segment

	Backdrop walls.Layout
	Frames   []walls.PlacedFrame

	Lights *lighting.PointLightBuffer
	Key    lighting.AreaLight

	// Frames beyond the point light cap get no light of their own.
	LightsDropped int

	Ball       trajectory.Sampler
	BallOffset math.Vec3 // world anchor added to every ball sample
	BallRadius float32
	Track      *materials.ColorTrack

	FrameRate   float32
	TotalFrames int
}

// Build generates the stage. All randomness flows from cfg.Stage.Seed, so
// the same config always yields the same stage.
func Build(cfg *config.Config) (*Stage, error) {
	sc := cfg.Stage
	rng := rand.New(rand.NewSource(sc.Seed))

	s := &Stage{
		Layout:     sc.Layout,
		BallRadius: sc.BallRadius,
		FrameRate:  sc.FrameRate,
	}

	// Staircase and the step-top points the ball visits, highest first.
	var tops []math.Vec3
	switch sc.Layout {
	case "flights":
		steps, err := stairs.FlightLayout(stairs.DefaultFlightParams())
		if err != nil {
			return nil, fmt.Errorf("building flight layout: %w", err)
		}
		s.Steps = steps
		tops = stairs.DescendingTops(steps, sc.BallRadius)
	case "ring":
		segments, err := stairs.RingLayout(stairs.Params{
			SegmentCount: sc.Ring.SegmentCount,
			StepHeight:   sc.Ring.StepHeight,
			StepDepth:    sc.Ring.StepDepth,
			LoopRadius:   sc.Ring.LoopRadius,
		})
		if err != nil {
			return nil, fmt.Errorf("building ring layout: %w", err)
		}
		s.Segments = segments
		tops = stairs.TopCenters(segments, sc.BallRadius)
		// Walk the ring against its winding so the ball reads as
		// descending.
		for i, j := 0, len(tops)-1; i < j; i, j = i+1, j-1 {
			tops[i], tops[j] = tops[j], tops[i]
		}
	default:
		return nil, fmt.Errorf("unknown staircase layout %q", sc.Layout)
	}

	// Ball animation.
	var landings []int
	switch sc.BallMode {
	case "path":
		path, err := trajectory.NewPath(trajectory.PathParams{
			Points:       tops,
			FrameRate:    sc.FrameRate,
			Duration:     sc.Duration,
			BounceHeight: sc.Path.BounceHeight,
			BounceFactor: sc.Path.BounceFactor,
			SquashFactor: sc.Path.SquashFactor,
			Loop:         true,
		})
		if err != nil {
			return nil, fmt.Errorf("building ball path: %w", err)
		}
		s.Ball = path
		s.TotalFrames = path.TotalFrames()
		landings = path.LandingFrames()
	case "drop":
		gen, err := trajectory.NewGenerator(trajectory.Params{
			InitialHeight:   sc.Bounce.InitialHeight,
			Gravity:         sc.Bounce.Gravity,
			Restitution:     sc.Bounce.Restitution,
			HorizontalSpeed: sc.Bounce.HorizontalSpeed,
			SquashStrength:  sc.Bounce.SquashStrength,
			FrameRate:       sc.FrameRate,
			MinBounceHeight: sc.Bounce.MinBounceHeight,
			MaxFrames:       sc.Bounce.MaxFrames,
		})
		if err != nil {
			return nil, fmt.Errorf("building ball bounce: %w", err)
		}
		s.Ball = gen
		// The ball drops onto the highest step top.
		s.BallOffset = tops[0]
		if n, err := gen.FrameCount(); err == nil {
			s.TotalFrames = n
		} else {
			// Unbounded: loop the viewer over one configured duration.
			s.TotalFrames = int(sc.FrameRate * sc.Duration)
		}
		landings = gen.LandingFrames()
	default:
		return nil, fmt.Errorf("unknown ball mode %q", sc.BallMode)
	}

	s.Track = materials.NewColorTrack(landings, rng)

	// Backdrop, frames and lights.
	backdrop, err := walls.Build(walls.DefaultLayoutParams(), rng)
	if err != nil {
		return nil, fmt.Errorf("building backdrop: %w", err)
	}
	s.Backdrop = backdrop
	for _, w := range backdrop.Walls {
		s.Frames = append(s.Frames, walls.WorldFrames(w, frameStandoff)...)
	}

	s.Lights = lighting.NewPointLightBuffer()
	s.LightsDropped = s.Lights.SetLights(lighting.ForFrames(s.Frames))
	s.Key = lighting.KeyLight()

	return s, nil
}

// BallAt samples the ball at the given frame, anchored in world space.
func (s *Stage) BallAt(frame int) (trajectory.Sample, error) {
	sample, err := s.Ball.At(frame)
	if err != nil {
		return trajectory.Sample{}, err
	}
	sample.Position = sample.Position.Add(s.BallOffset)
	return sample, nil
}
