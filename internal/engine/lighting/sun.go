package lighting

import "math"

// Direction converts longitude/latitude angles in degrees to a normalized
// light direction vector. Longitude is rotation around Y (0-360), latitude
// elevation from the horizon (0-90). The renderer uses this for the soft
// directional fill that keeps unlit faces readable.
func Direction(longitude, latitude float32) [3]float32 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return [3]float32{x, y, z}
}
