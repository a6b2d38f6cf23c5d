// Package walls lays out the backdrop: two large walls hung with
// randomly sized, non-overlapping picture frames, and the floor slab. All
// placement is seeded, so a given seed reproduces the same gallery.
package walls

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand"

	"github.com/exhalegfx/escherball/pkg/math"
)

// ErrInvalidParameter is returned when a layout parameter is out of range.
var ErrInvalidParameter = errors.New("walls: invalid parameter")

// Frame is a picture frame on a wall, in wall-plane coordinates: X across
// the wall, Y up from its base.
type Frame struct {
	Center math.Vec2
	Width  float32
	Height float32
}

// PackParams configures the random frame packing for one wall.
type PackParams struct {
	WallSize float32 // walls are square, > 0

	Attempts   int     // frames tried; failures are discarded
	MaxTries   int     // placement retries per frame before giving up on it
	MinSize    float32 // frame width/height lower bound
	MaxSize    float32 // frame width/height upper bound
	Padding    float32 // minimum gap between frames
	EdgeMargin float32 // keep-out border along the wall boundary
}

// DefaultPackParams mirrors the gallery density the scene was tuned with.
func DefaultPackParams(wallSize float32) PackParams {
	return PackParams{
		WallSize:   wallSize,
		Attempts:   400,
		MaxTries:   300,
		MinSize:    8,
		MaxSize:    12,
		Padding:    0.2,
		EdgeMargin: 3,
	}
}

// PackFrames hangs frames on a wall: each candidate gets a random size, then
// up to MaxTries random positions; the first position whose padded bounding
// box clears every placed frame wins, otherwise the candidate is discarded.
func PackFrames(p PackParams, rng *rand.Rand) ([]Frame, error) {
	if p.WallSize <= 0 {
		return nil, fmt.Errorf("%w: wall size %v must be > 0", ErrInvalidParameter, p.WallSize)
	}
	if p.MinSize <= 0 || p.MaxSize < p.MinSize {
		return nil, fmt.Errorf("%w: frame size bounds [%v, %v]", ErrInvalidParameter, p.MinSize, p.MaxSize)
	}
	if p.Attempts < 0 || p.MaxTries < 1 {
		return nil, fmt.Errorf("%w: attempts %d / tries %d", ErrInvalidParameter, p.Attempts, p.MaxTries)
	}

	usable := p.WallSize - p.EdgeMargin
	var placed []Frame
	for i := 0; i < p.Attempts; i++ {
		w := p.MinSize + rng.Float32()*(p.MaxSize-p.MinSize)
		h := p.MinSize + rng.Float32()*(p.MaxSize-p.MinSize)
		if w > usable || h > usable {
			continue
		}

		for try := 0; try < p.MaxTries; try++ {
			x := -usable/2 + w/2 + rng.Float32()*(usable-w)
			y := h/2 + rng.Float32()*(usable-h)

			f := Frame{Center: math.Vec2{X: x, Y: y}, Width: w, Height: h}
			if !overlapsAny(f, placed, p.Padding) {
				placed = append(placed, f)
				break
			}
		}
	}
	return placed, nil
}

// Overlaps reports whether two frames' bounding boxes come within padding of
// each other.
func Overlaps(a, b Frame, padding float32) bool {
	return !(a.Center.X+a.Width/2+padding < b.Center.X-b.Width/2 ||
		a.Center.X-a.Width/2-padding > b.Center.X+b.Width/2 ||
		a.Center.Y+a.Height/2+padding < b.Center.Y-b.Height/2 ||
		a.Center.Y-a.Height/2-padding > b.Center.Y+b.Height/2)
}

func overlapsAny(f Frame, placed []Frame, padding float32) bool {
	for _, p := range placed {
		if Overlaps(f, p, padding) {
			return true
		}
	}
	return false
}

// Wall is one backdrop wall with its hung frames. Position/Rotation place
// the wall's center in the world; Rotation is degrees about Y.
type Wall struct {
	Name     string
	Position math.Vec3
	Yaw      float32
	Size     math.Vec3 // width, height, thickness
	Frames   []Frame
}

// Floor is the ground slab under the whole stage.
type Floor struct {
	Position math.Vec3
	Yaw      float32
	Size     math.Vec3
}

// Layout holds the complete backdrop.
type Layout struct {
	Walls []Wall
	Floor Floor
}

// LayoutParams configures the backdrop.
type LayoutParams struct {
	WallSize      float32
	WallThickness float32
	Pack          PackParams
}

// DefaultLayoutParams returns the hand-placed wall and floor transforms the
// illusion was framed with. The right wall's odd yaw is deliberate: it lines
// the two walls up with the staircase's forced perspective.
func DefaultLayoutParams() LayoutParams {
	return LayoutParams{
		WallSize:      67,
		WallThickness: 0.2,
		Pack:          DefaultPackParams(67),
	}
}

// Build packs frames for both walls and assembles the backdrop. Both walls
// draw from the same rng, so the whole layout follows one seed.
func Build(p LayoutParams, rng *rand.Rand) (Layout, error) {
	if p.WallSize <= 0 || p.WallThickness <= 0 {
		return Layout{}, fmt.Errorf("%w: wall size %v / thickness %v", ErrInvalidParameter, p.WallSize, p.WallThickness)
	}

	leftFrames, err := PackFrames(p.Pack, rng)
	if err != nil {
		return Layout{}, err
	}
	rightFrames, err := PackFrames(p.Pack, rng)
	if err != nil {
		return Layout{}, err
	}

	size := math.Vec3{X: p.WallSize, Y: p.WallSize, Z: p.WallThickness}
	return Layout{
		Walls: []Wall{
			{
				Name:     "left_wall",
				Position: math.Vec3{X: -10.571, Y: -33, Z: 42.109},
				Yaw:      180,
				Size:     size,
				Frames:   leftFrames,
			},
			{
				Name:     "right_wall",
				Position: math.Vec3{X: -42.995, Y: -33, Z: 8.603},
				Yaw:      89.478,
				Size:     size,
				Frames:   rightFrames,
			},
		},
		Floor: Floor{
			Position: math.Vec3{X: 0, Y: -33, Z: 7},
			Yaw:      48,
			Size:     math.Vec3{X: 120, Y: 0.2, Z: 120},
		},
	}, nil
}

// PlacedFrame is a frame resolved to world space, with the direction it
// faces. Lights and rendering both consume these.
type PlacedFrame struct {
	Position math.Vec3
	Normal   math.Vec3
	Width    float32
	Height   float32
	Yaw      float32
}

// WorldFrames resolves a wall's frames into world space. Frames hang just
// off the wall's front face, offset along its facing normal.
func WorldFrames(w Wall, standoff float32) []PlacedFrame {
	yaw := float64(w.Yaw) * gomath.Pi / 180
	c := float32(gomath.Cos(yaw))
	s := float32(gomath.Sin(yaw))

	// Wall plane axes in world space: across follows the yawed X axis, the
	// normal the yawed Z axis. The wall's base sits at Position.Y.
	across := math.Vec3{X: c, Y: 0, Z: -s}
	normal := math.Vec3{X: s, Y: 0, Z: c}

	placed := make([]PlacedFrame, len(w.Frames))
	for i, f := range w.Frames {
		base := w.Position.Add(across.Scale(f.Center.X)).Add(normal.Scale(w.Size.Z/2 + standoff))
		base.Y = w.Position.Y + f.Center.Y
		placed[i] = PlacedFrame{
			Position: base,
			Normal:   normal,
			Width:    f.Width,
			Height:   f.Height,
			Yaw:      w.Yaw,
		}
	}
	return placed
}
