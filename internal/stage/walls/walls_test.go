package walls

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/exhalegfx/escherball/pkg/math"
)

func TestPackFramesNoOverlap(t *testing.T) {
	p := DefaultPackParams(67)
	rng := rand.New(rand.NewSource(1))

	frames, err := PackFrames(p, rng)
	if err != nil {
		t.Fatalf("PackFrames() error = %v", err)
	}
	if len(frames) == 0 {
		t.Fatal("expected at least one frame to be placed")
	}

	for i := range frames {
		for j := i + 1; j < len(frames); j++ {
			if Overlaps(frames[i], frames[j], p.Padding) {
				t.Errorf("frames %d and %d overlap: %+v vs %+v", i, j, frames[i], frames[j])
			}
		}
	}
}

func TestPackFramesWithinBounds(t *testing.T) {
	p := DefaultPackParams(67)
	rng := rand.New(rand.NewSource(2))

	frames, _ := PackFrames(p, rng)
	usable := p.WallSize - p.EdgeMargin
	for i, f := range frames {
		if f.Width < p.MinSize || f.Width > p.MaxSize || f.Height < p.MinSize || f.Height > p.MaxSize {
			t.Errorf("frame %d size %vx%v outside [%v, %v]", i, f.Width, f.Height, p.MinSize, p.MaxSize)
		}
		if f.Center.X-f.Width/2 < -usable/2-1e-3 || f.Center.X+f.Width/2 > usable/2+1e-3 {
			t.Errorf("frame %d crosses the wall edge horizontally: %+v", i, f)
		}
		if f.Center.Y-f.Height/2 < -1e-3 || f.Center.Y+f.Height/2 > usable+1e-3 {
			t.Errorf("frame %d crosses the wall edge vertically: %+v", i, f)
		}
	}
}

func TestPackFramesDeterministic(t *testing.T) {
	p := DefaultPackParams(67)

	a, _ := PackFrames(p, rand.New(rand.NewSource(7)))
	b, _ := PackFrames(p, rand.New(rand.NewSource(7)))

	if len(a) != len(b) {
		t.Fatalf("same seed packed %d vs %d frames", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("frame %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPackFramesInvalidParams(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name   string
		mutate func(*PackParams)
	}{
		{"zero wall", func(p *PackParams) { p.WallSize = 0 }},
		{"zero min size", func(p *PackParams) { p.MinSize = 0 }},
		{"max below min", func(p *PackParams) { p.MaxSize = p.MinSize - 1 }},
		{"zero tries", func(p *PackParams) { p.MaxTries = 0 }},
		{"negative attempts", func(p *PackParams) { p.Attempts = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPackParams(67)
			tt.mutate(&p)
			if _, err := PackFrames(p, rng); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("PackFrames() error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	a := Frame{Width: 4, Height: 4}

	tests := []struct {
		name    string
		b       Frame
		padding float32
		want    bool
	}{
		{"same spot", Frame{Width: 4, Height: 4}, 0, true},
		{"clear to the right", frameAt(10, 0), 0, false},
		{"touching within padding", frameAt(4.1, 0), 0.2, true},
		{"clear above", frameAt(0, 10), 0, false},
		{"diagonal clear", frameAt(5, 5), 0.2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(a, tt.b, tt.padding); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func frameAt(x, y float32) Frame {
	return Frame{Center: math.Vec2{X: x, Y: y}, Width: 4, Height: 4}
}

func TestBuildLayout(t *testing.T) {
	layout, err := Build(DefaultLayoutParams(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(layout.Walls) != 2 {
		t.Fatalf("got %d walls, want 2", len(layout.Walls))
	}
	for _, w := range layout.Walls {
		if len(w.Frames) == 0 {
			t.Errorf("wall %q has no frames", w.Name)
		}
	}
	if layout.Floor.Size.X <= 0 || layout.Floor.Size.Z <= 0 {
		t.Error("floor has no footprint")
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, _ := Build(DefaultLayoutParams(), rand.New(rand.NewSource(3)))
	b, _ := Build(DefaultLayoutParams(), rand.New(rand.NewSource(3)))

	for wi := range a.Walls {
		if len(a.Walls[wi].Frames) != len(b.Walls[wi].Frames) {
			t.Fatalf("wall %d frame counts differ", wi)
		}
		for i := range a.Walls[wi].Frames {
			if a.Walls[wi].Frames[i] != b.Walls[wi].Frames[i] {
				t.Errorf("wall %d frame %d differs between seeds", wi, i)
			}
		}
	}
}

func TestWorldFrames(t *testing.T) {
	w := Wall{
		Position: math.Vec3{X: 0, Y: -10, Z: 5},
		Yaw:      0,
		Size:     math.Vec3{X: 67, Y: 67, Z: 0.2},
		Frames: []Frame{
			{Center: math.Vec2{X: 3, Y: 12}, Width: 8, Height: 10},
		},
	}

	placed := WorldFrames(w, 0.25)
	if len(placed) != 1 {
		t.Fatalf("got %d placed frames, want 1", len(placed))
	}

	f := placed[0]
	// Unyawed wall: across is +X, normal +Z.
	if f.Position.X != 3 {
		t.Errorf("world X = %v, want 3", f.Position.X)
	}
	if f.Position.Y != -10+12 {
		t.Errorf("world Y = %v, want 2", f.Position.Y)
	}
	wantZ := float32(5) + 0.2/2 + 0.25
	if dz := f.Position.Z - wantZ; dz < -1e-4 || dz > 1e-4 {
		t.Errorf("world Z = %v, want %v", f.Position.Z, wantZ)
	}
	if f.Normal.X != 0 || f.Normal.Z != 1 {
		t.Errorf("normal = %v, want +Z", f.Normal)
	}
}
