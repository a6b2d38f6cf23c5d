// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/exhalegfx/escherball/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera sized for the staircase stage.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        60.0,
		RotationX:       0.5,
		RotationY:       0.8,
		MinDistance:     5.0,
		MaxDistance:     400.0,
		MinPitch:        -1.2,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return math.Vec3{
		X: c.CenterX + x,
		Y: c.CenterY + y,
		Z: c.CenterZ + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	pos := c.Position()
	center := math.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(pos, center, up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandleMovement pans the camera center point based on keyboard input.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	// Calculate movement direction based on current camera rotation
	dirX := float32(gomath.Sin(float64(c.RotationY)))
	dirZ := float32(gomath.Cos(float64(c.RotationY)))

	// Right direction (perpendicular to forward)
	rightX := float32(gomath.Cos(float64(c.RotationY)))
	rightZ := float32(-gomath.Sin(float64(c.RotationY)))

	// Apply movement to center point (negate forward so W moves "into" the scene)
	c.CenterX += (-dirX*forward + rightX*right) * speed
	c.CenterZ += (-dirZ*forward + rightZ*right) * speed
	c.CenterY += up * speed
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(x, y, z float32) {
	c.CenterX = x
	c.CenterY = y
	c.CenterZ = z
}

// LockedCamera is the hand-tuned perspective camera the illusion was framed
// with. The forced-perspective staircase only reads as a closed loop from
// (close to) this viewpoint, so the transform is fixed.
type LockedCamera struct {
	Position math.Vec3
	Rotation math.Vec3 // degrees, applied X then Y then Z

	FocalLength  float32 // mm
	FilmAperture math.Vec2 // inches, horizontal and vertical
}

// NewLockedCamera returns the staircase viewpoint preset.
func NewLockedCamera() *LockedCamera {
	return &LockedCamera{
		Position:     math.Vec3{X: 18.65, Y: 46.6565, Z: -20.5378},
		Rotation:     math.Vec3{X: 139.9612, Y: 49.3397, Z: 180},
		FocalLength:  35,
		FilmAperture: math.Vec2{X: 1.41732, Y: 0.94488},
	}
}

// ViewMatrix returns the view matrix: the inverse of the camera's world
// transform.
func (c *LockedCamera) ViewMatrix() math.Mat4 {
	rx := c.Rotation.X * gomath.Pi / 180
	ry := c.Rotation.Y * gomath.Pi / 180
	rz := c.Rotation.Z * gomath.Pi / 180

	world := math.Translate(c.Position.X, c.Position.Y, c.Position.Z).
		Mul(math.RotateZ(rz)).
		Mul(math.RotateY(ry)).
		Mul(math.RotateX(rx))
	return world.Inverse()
}

// VerticalFOV converts the film gate and focal length into a vertical field
// of view in radians.
func (c *LockedCamera) VerticalFOV() float32 {
	apertureMM := c.FilmAperture.Y * 25.4
	return 2 * float32(gomath.Atan(float64(apertureMM/2/c.FocalLength)))
}

// AspectRatio returns the film gate's aspect ratio.
func (c *LockedCamera) AspectRatio() float32 {
	return c.FilmAperture.X / c.FilmAperture.Y
}

// ProjectionMatrix returns the perspective projection for this camera.
func (c *LockedCamera) ProjectionMatrix(aspect, near, far float32) math.Mat4 {
	return math.Perspective(c.VerticalFOV(), aspect, near, far)
}
