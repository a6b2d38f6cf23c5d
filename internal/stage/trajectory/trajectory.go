// Package trajectory computes the bouncing ball's position, vertical velocity
// and squash/stretch scale as a pure function of a frame index. Samples are
// evaluated analytically per bounce arc instead of stepping a simulation, so
// any frame can be queried on its own and repeated queries are bit-identical.
package trajectory

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/exhalegfx/escherball/pkg/math"
)

var (
	// ErrInvalidParameter is returned when a parameter is out of range.
	ErrInvalidParameter = errors.New("trajectory: invalid parameter")

	// ErrUnboundedSequence is returned when a finite materialization is
	// requested from a trajectory with no frame cap or bounce floor.
	ErrUnboundedSequence = errors.New("trajectory: unbounded sequence")
)

// Params configures a bounce trajectory. Supplied once, never mutated.
type Params struct {
	InitialHeight   float32 // drop height above GroundLevel, > 0
	Gravity         float32 // > 0
	Restitution     float32 // fraction of vertical speed kept per contact, (0, 1]
	HorizontalSpeed float32 // units per second along +X, may be 0
	GroundLevel     float32
	SquashStrength  float32 // scaleY dips to 1-SquashStrength at contact, [0, 1]
	FrameRate       float32 // frames per second, > 0

	// Termination. Either makes the sequence finite; both zero leaves it
	// infinite (lazily samplable only).
	MinBounceHeight float32 // stop bouncing once an arc's peak falls below this
	MaxFrames       int
}

// Sampler is anything that can evaluate a ball sample at a frame index.
// Generator and Path both qualify.
type Sampler interface {
	At(frame int) (Sample, error)
}

// Sample is the ball state at one frame.
type Sample struct {
	Frame            int
	Position         math.Vec3
	Scale            math.Vec3
	VerticalVelocity float32
}

// arc is one parabolic flight between two ground contacts. The initial drop
// is an arc that starts at the apex with zero launch speed.
type arc struct {
	start    float32 // seconds since frame 0
	duration float32
	peak     float32 // apex height above ground
	y0       float32 // height at start of arc
	v0       float32 // vertical speed at start of arc
}

// Generator evaluates a bounce trajectory. Safe for concurrent use; all
// state is written once at construction.
type Generator struct {
	params Params
	arcs   []arc

	// time after which the ball stays on the ground. Infinite while
	// restitution == 1.
	restTime float32
	periodic bool
}

// Squash/stretch tuning. The easing runs over the first and last fifth of
// each arc; the overshoot keeps a hint of stretch while the ball recoils.
const (
	contactWindow    = 0.2
	stretchOvershoot = 0.15

	// arcs with peaks below this fraction of the drop height are treated
	// as the ball having come to rest
	decayFloor = 1e-4
)

// NewGenerator validates params and precomputes the bounce-arc table.
func NewGenerator(p Params) (*Generator, error) {
	if p.InitialHeight <= 0 {
		return nil, fmt.Errorf("%w: initial height %v must be > 0", ErrInvalidParameter, p.InitialHeight)
	}
	if p.Gravity <= 0 {
		return nil, fmt.Errorf("%w: gravity %v must be > 0", ErrInvalidParameter, p.Gravity)
	}
	if p.Restitution <= 0 || p.Restitution > 1 {
		return nil, fmt.Errorf("%w: restitution %v must be in (0, 1]", ErrInvalidParameter, p.Restitution)
	}
	if p.SquashStrength < 0 || p.SquashStrength > 1 {
		return nil, fmt.Errorf("%w: squash strength %v must be in [0, 1]", ErrInvalidParameter, p.SquashStrength)
	}
	if p.FrameRate <= 0 {
		return nil, fmt.Errorf("%w: frame rate %v must be > 0", ErrInvalidParameter, p.FrameRate)
	}
	if p.MinBounceHeight < 0 {
		return nil, fmt.Errorf("%w: min bounce height %v must be >= 0", ErrInvalidParameter, p.MinBounceHeight)
	}
	if p.MaxFrames < 0 {
		return nil, fmt.Errorf("%w: max frames %v must be >= 0", ErrInvalidParameter, p.MaxFrames)
	}

	g := &Generator{
		params:   p,
		periodic: p.Restitution == 1,
	}
	g.buildArcs()
	return g, nil
}

// buildArcs fills the arc table. Peaks are produced by iterative multiply so
// peak[n+1] == peak[n] * restitution^2 holds exactly.
func (g *Generator) buildArcs() {
	p := g.params

	// Initial drop: from the apex straight down.
	drop := arc{
		start:    0,
		duration: sqrt32(2 * p.InitialHeight / p.Gravity),
		peak:     p.InitialHeight,
		y0:       p.InitialHeight,
		v0:       0,
	}
	g.arcs = append(g.arcs, drop)

	if g.periodic {
		// Non-decaying bounce: one flight arc, repeated forever.
		v0 := p.Gravity * drop.duration
		g.arcs = append(g.arcs, arc{
			start:    drop.duration,
			duration: 2 * v0 / p.Gravity,
			peak:     p.InitialHeight,
			v0:       v0,
		})
		g.restTime = float32(gomath.Inf(1))
		return
	}

	cutoff := p.InitialHeight * decayFloor
	if p.MinBounceHeight > cutoff {
		cutoff = p.MinBounceHeight
	}

	k := p.Restitution * p.Restitution
	start := drop.duration
	peak := p.InitialHeight * k
	for peak >= cutoff {
		v0 := sqrt32(2 * p.Gravity * peak)
		a := arc{
			start:    start,
			duration: 2 * v0 / p.Gravity,
			peak:     peak,
			v0:       v0,
		}
		g.arcs = append(g.arcs, a)
		start += a.duration
		peak *= k
	}
	g.restTime = start
}

// Params returns the configuration the generator was built with.
func (g *Generator) Params() Params {
	return g.params
}

// PeakHeights returns the apex height of every arc in the table, initial
// drop first.
func (g *Generator) PeakHeights() []float32 {
	peaks := make([]float32, len(g.arcs))
	for i, a := range g.arcs {
		peaks[i] = a.peak
	}
	return peaks
}

// RestTime returns the time in seconds after which the ball stays on the
// ground, or +Inf while restitution is 1.
func (g *Generator) RestTime() float32 {
	return g.restTime
}

// LandingFrames returns the frame index of every ground contact in the arc
// table, nearest-frame rounded.
func (g *Generator) LandingFrames() []int {
	frames := make([]int, 0, len(g.arcs)-1)
	for _, a := range g.arcs[1:] {
		frames = append(frames, int(a.start*g.params.FrameRate+0.5))
	}
	return frames
}

// At evaluates the trajectory at the given frame. Pure: the same frame
// always yields the same sample.
func (g *Generator) At(frame int) (Sample, error) {
	if frame < 0 {
		return Sample{}, fmt.Errorf("%w: frame %d must be >= 0", ErrInvalidParameter, frame)
	}

	p := g.params
	t := float32(frame) / p.FrameRate

	y, v, scaleY := g.vertical(t)

	scaleXZ := float32(1) / sqrt32(scaleY)
	return Sample{
		Frame:            frame,
		Position:         math.Vec3{X: p.HorizontalSpeed * t, Y: p.GroundLevel + y, Z: 0},
		Scale:            math.Vec3{X: scaleXZ, Y: scaleY, Z: scaleXZ},
		VerticalVelocity: v,
	}, nil
}

// vertical returns height above ground, vertical speed, and scaleY at time t.
func (g *Generator) vertical(t float32) (y, v, scaleY float32) {
	a, tau, ok := g.locate(t)
	if !ok {
		// At rest on the ground.
		return 0, 0, 1
	}

	y = a.y0 + a.v0*tau - 0.5*g.params.Gravity*tau*tau
	if y < 0 {
		y = 0
	}
	v = a.v0 - g.params.Gravity*tau

	// Normalized time to the nearest ground contact. The initial drop only
	// contacts at its end.
	m := a.duration - tau
	if a.v0 != 0 && tau < m {
		m = tau
	}
	ease := smoothstep(m / (contactWindow * a.duration))
	scaleY = 1 - g.params.SquashStrength*(1-ease) +
		stretchOvershoot*g.params.SquashStrength*4*ease*(1-ease)*(1-ease)
	return y, v, scaleY
}

// locate finds the arc containing time t and the offset into it. ok is
// false once the ball has come to rest.
func (g *Generator) locate(t float32) (arc, float32, bool) {
	if g.periodic {
		drop := g.arcs[0]
		if t < drop.duration {
			return drop, t, true
		}
		flight := g.arcs[1]
		tau := mod32(t-flight.start, flight.duration)
		return flight, tau, true
	}

	if t >= g.restTime {
		return arc{}, 0, false
	}
	// Linear scan; arc tables are tens of entries at most.
	for _, a := range g.arcs {
		if t < a.start+a.duration {
			return a, t - a.start, true
		}
	}
	return arc{}, 0, false
}

// FrameCount returns how many frames the finite trajectory spans, or
// ErrUnboundedSequence when neither MinBounceHeight nor MaxFrames bound it.
func (g *Generator) FrameCount() (int, error) {
	p := g.params
	if p.MaxFrames > 0 {
		return p.MaxFrames, nil
	}
	if p.MinBounceHeight > 0 && !g.periodic {
		return int(ceil32(g.restTime*p.FrameRate)) + 1, nil
	}
	return 0, fmt.Errorf("%w: set MinBounceHeight or MaxFrames", ErrUnboundedSequence)
}

// Materialize evaluates the whole finite trajectory.
func (g *Generator) Materialize() ([]Sample, error) {
	n, err := g.FrameCount()
	if err != nil {
		return nil, err
	}
	samples := make([]Sample, n)
	for i := 0; i < n; i++ {
		samples[i], _ = g.At(i)
	}
	return samples, nil
}

// smoothstep is the cubic ease 3u^2 - 2u^3, clamped to [0, 1].
func smoothstep(u float32) float32 {
	if u <= 0 {
		return 0
	}
	if u >= 1 {
		return 1
	}
	return u * u * (3 - 2*u)
}

func sqrt32(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}

func ceil32(x float32) float32 {
	return float32(gomath.Ceil(float64(x)))
}

func mod32(x, y float32) float32 {
	return float32(gomath.Mod(float64(x), float64(y)))
}
