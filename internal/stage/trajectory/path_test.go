package trajectory

import (
	"errors"
	"testing"

	"github.com/exhalegfx/escherball/pkg/math"
)

func basePathParams() PathParams {
	return PathParams{
		Points: []math.Vec3{
			{X: 0, Y: 4, Z: 0},
			{X: 2, Y: 3, Z: 0},
			{X: 4, Y: 2, Z: 0},
			{X: 6, Y: 1, Z: 0},
		},
		FrameRate:    25,
		Duration:     6,
		BounceHeight: 5,
		BounceFactor: 4,
		SquashFactor: 0.3,
	}
}

func TestNewPathInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PathParams)
	}{
		{"one point", func(p *PathParams) { p.Points = p.Points[:1] }},
		{"no points", func(p *PathParams) { p.Points = nil }},
		{"zero frame rate", func(p *PathParams) { p.FrameRate = 0 }},
		{"zero duration", func(p *PathParams) { p.Duration = 0 }},
		{"zero bounce height", func(p *PathParams) { p.BounceHeight = 0 }},
		{"zero bounce factor", func(p *PathParams) { p.BounceFactor = 0 }},
		{"squash above one", func(p *PathParams) { p.SquashFactor = 1.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := basePathParams()
			tt.mutate(&p)
			_, err := NewPath(p)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("NewPath() error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestPathTotalFrames(t *testing.T) {
	path, err := NewPath(basePathParams())
	if err != nil {
		t.Fatalf("NewPath() error = %v", err)
	}
	if path.TotalFrames() != 150 {
		t.Errorf("TotalFrames() = %d, want 150", path.TotalFrames())
	}
}

func TestPathHitsEndpoints(t *testing.T) {
	p := basePathParams()
	path, _ := NewPath(p)

	// Frame 0 sits on the first point; bounce(t=0) = 5*(1-4*0.25) = 0.
	s, err := path.At(0)
	if err != nil {
		t.Fatalf("At(0) error = %v", err)
	}
	if s.Position.X != p.Points[0].X || s.Position.Y != p.Points[0].Y {
		t.Errorf("At(0).Position = %v, want %v", s.Position, p.Points[0])
	}

	// Landings fall on the remaining points. With 3 hops over 150 frames
	// the hop boundaries land exactly on frame multiples of 50.
	for i, f := range path.LandingFrames() {
		s, err := path.At(f)
		if err != nil {
			t.Fatalf("At(%d) error = %v", f, err)
		}
		want := p.Points[i+1]
		if s.Position.X != want.X || s.Position.Y != want.Y || s.Position.Z != want.Z {
			t.Errorf("landing %d at frame %d: position = %v, want %v", i, f, s.Position, want)
		}
	}
}

func TestPathLoopClosure(t *testing.T) {
	p := basePathParams()
	p.Loop = true
	path, _ := NewPath(p)

	landings := path.LandingFrames()
	last := landings[len(landings)-1]
	s, err := path.At(last)
	if err != nil {
		t.Fatalf("At(%d) error = %v", last, err)
	}
	if s.Position != p.Points[0] {
		t.Errorf("final landing position = %v, want start point %v", s.Position, p.Points[0])
	}
}

func TestPathSquashAtContact(t *testing.T) {
	p := basePathParams()
	path, _ := NewPath(p)

	// At a hop boundary the bounce is clamped to zero: ball on the step.
	s, _ := path.At(50)
	if s.Scale.Y != 1-p.SquashFactor {
		t.Errorf("scaleY at contact = %v, want %v", s.Scale.Y, 1-p.SquashFactor)
	}
	if s.Scale.X != 1+p.SquashFactor {
		t.Errorf("scaleX at contact = %v, want %v", s.Scale.X, 1+p.SquashFactor)
	}
}

func TestPathStretchAtApex(t *testing.T) {
	p := basePathParams()
	path, _ := NewPath(p)

	// Frame 25 is the midpoint of the first hop: full bounce height, so the
	// stretch factor is exactly the squash factor.
	s, _ := path.At(25)
	if s.Scale.Y != 1+p.SquashFactor {
		t.Errorf("scaleY at apex = %v, want %v", s.Scale.Y, 1+p.SquashFactor)
	}
	wantY := lerp(p.Points[0].Y, p.Points[1].Y, 0.5) + p.BounceHeight
	if s.Position.Y != wantY {
		t.Errorf("height at apex = %v, want %v", s.Position.Y, wantY)
	}
}

func TestPathArcNeverDipsBelowLine(t *testing.T) {
	p := basePathParams()
	path, _ := NewPath(p)

	for f := 0; f < path.TotalFrames(); f++ {
		s, _ := path.At(f)
		// The line between consecutive points is monotone in Y here, so the
		// ball never drops below the lowest step.
		if s.Position.Y < p.Points[len(p.Points)-1].Y-1e-4 {
			t.Errorf("frame %d: position.Y = %v below the path", f, s.Position.Y)
		}
	}
}

func TestPathHoldsFinalPoint(t *testing.T) {
	p := basePathParams()
	path, _ := NewPath(p)

	last := p.Points[len(p.Points)-1]
	for _, f := range []int{path.TotalFrames(), path.TotalFrames() + 100} {
		s, err := path.At(f)
		if err != nil {
			t.Fatalf("At(%d) error = %v", f, err)
		}
		if s.Position != last {
			t.Errorf("At(%d).Position = %v, want held final point %v", f, s.Position, last)
		}
		if s.Scale != (math.Vec3{X: 1, Y: 1, Z: 1}) {
			t.Errorf("At(%d).Scale = %v, want neutral", f, s.Scale)
		}
	}
}

func TestPathNegativeFrame(t *testing.T) {
	path, _ := NewPath(basePathParams())
	if _, err := path.At(-3); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("At(-3) error = %v, want ErrInvalidParameter", err)
	}
}
