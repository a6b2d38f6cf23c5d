// Package lighting provides the stage light rig: one warm area key light
// and a point light hung in front of every picture frame.
package lighting

import (
	"github.com/exhalegfx/escherball/internal/stage/walls"
	"github.com/exhalegfx/escherball/pkg/math"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 32

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Light radius/falloff distance
	Intensity float32    // Light intensity multiplier
}

// Warm gallery color shared by the key light and the frame lights.
var warmColor = [3]float32{0.301, 0.181, 0.114}

// Frame light tuning: lights float a fixed distance off the frame face and
// get brighter the higher they hang, clamped to a sane band.
const (
	frameLightStandoff = 1.5
	frameLightRange    = 25.0

	minIntensity = 5.0
	midIntensity = 20.0
	maxIntensity = 40.0
)

// ForFrames builds one point light per placed frame, offset along the
// frame's facing normal. Intensity maps linearly from the light's world
// height around the mid intensity.
func ForFrames(frames []walls.PlacedFrame) []PointLight {
	lights := make([]PointLight, 0, len(frames))
	for _, f := range frames {
		pos := f.Position.Add(f.Normal.Scale(frameLightStandoff))

		intensity := float32(midIntensity) + pos.Y
		if intensity < minIntensity {
			intensity = minIntensity
		}
		if intensity > maxIntensity {
			intensity = maxIntensity
		}

		lights = append(lights, PointLight{
			Position:  [3]float32{pos.X, pos.Y, pos.Z},
			Color:     warmColor,
			Range:     frameLightRange,
			Intensity: intensity,
		})
	}
	return lights
}

// AreaLight is the scene's key light.
type AreaLight struct {
	Position  math.Vec3
	Rotation  math.Vec3 // degrees
	Scale     float32
	Color     [3]float32
	Intensity float32
	Exposure  float32
}

// KeyLight returns the hand-placed warm key light above the staircase.
func KeyLight() AreaLight {
	return AreaLight{
		Position:  math.Vec3{X: 0, Y: 32.969, Z: -0.788},
		Rotation:  math.Vec3{X: -90.085, Y: 47.608, Z: -0.063},
		Scale:     41.011,
		Color:     warmColor,
		Intensity: 7.869,
		Exposure:  0.249,
	}
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// SetLights replaces all lights in the buffer, truncating to MaxPointLights.
// Returns the number of lights that did not fit.
func (b *PointLightBuffer) SetLights(lights []PointLight) int {
	b.Clear()
	count := len(lights)
	if count > MaxPointLights {
		count = MaxPointLights
	}
	b.Lights = append(b.Lights, lights[:count]...)
	b.Count = count
	return len(lights) - count
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) GetPositions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Position[0]
		result[i*3+1] = light.Position[1]
		result[i*3+2] = light.Position[2]
	}
	return result
}

// GetColors returns colors as a flat float32 slice for GPU upload.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (b *PointLightBuffer) GetColors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Color[0]
		result[i*3+1] = light.Color[1]
		result[i*3+2] = light.Color[2]
	}
	return result
}

// GetRanges returns ranges as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetRanges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}

// GetIntensities returns intensities as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetIntensities() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Intensity
	}
	return result
}
