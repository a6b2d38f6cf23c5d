// Package materials holds the surface parameters the renderer shades with,
// and the ball's emissive color track.
package materials

// Surface is a shaded surface: a diffuse base plus an optional emissive
// term the lighting cannot darken.
type Surface struct {
	Name              string
	Diffuse           [3]float32
	Emissive          [3]float32
	EmissiveIntensity float32
}

// Marble is the staircase surface.
func Marble() Surface {
	return Surface{
		Name:    "marble",
		Diffuse: [3]float32{0.82, 0.80, 0.76},
	}
}

// Brick is the wall surface.
func Brick() Surface {
	return Surface{
		Name:    "brick",
		Diffuse: [3]float32{0.45, 0.26, 0.20},
	}
}

// BlackTile is the floor surface.
func BlackTile() Surface {
	return Surface{
		Name:    "black_tile",
		Diffuse: [3]float32{0.06, 0.06, 0.07},
	}
}

// Portrait is a frame's canvas. Each frame gets a slightly different tint,
// picked by index.
func Portrait(i int) Surface {
	tints := [][3]float32{
		{0.55, 0.45, 0.32},
		{0.38, 0.42, 0.50},
		{0.48, 0.34, 0.36},
		{0.36, 0.46, 0.38},
	}
	return Surface{
		Name:    "portrait",
		Diffuse: tints[i%len(tints)],
	}
}

// FrameEdge is the glowing border around each portrait.
func FrameEdge() Surface {
	return Surface{
		Name:              "frame_edge",
		Diffuse:           [3]float32{0.1, 0.1, 0.12},
		Emissive:          [3]float32{0.6, 0.8, 1.0},
		EmissiveIntensity: 5,
	}
}

// Ball returns the ball surface with the given emissive color.
func Ball(color [3]float32) Surface {
	return Surface{
		Name:              "ball",
		Diffuse:           [3]float32{0.2, 0.2, 0.2},
		Emissive:          color,
		EmissiveIntensity: 10,
	}
}
