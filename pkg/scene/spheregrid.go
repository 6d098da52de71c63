package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0, 1].
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) mgl64.Vec3 {
	hRad := mgl64.DegToRad(h)

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to non-linear LMS, then cube
	lms := mgl64.Vec3{
		l + 0.3963377774*a + 0.2158037573*b,
		l - 0.1055613458*a - 0.0638541728*b,
		l - 0.0894841775*a - 1.2914855480*b,
	}
	for i := range lms {
		lms[i] = lms[i] * lms[i] * lms[i]
	}

	toRGB := mgl64.Mat3{
		4.0767416621, -1.2684380046, -0.0041960863,
		-3.3077115913, 2.6097574011, -0.7034186147,
		0.2309699292, -0.3413193965, 1.7076147010,
	}
	rgb := toRGB.Mul3x1(lms)

	for i := range rgb {
		rgb[i] = math.Max(0, math.Min(1, rgb[i]))
	}
	return rgb
}

// NewSphereGridScene creates a scene with a grid of fuzzy metal spheres.
// Hue varies along x and chroma along z. gridSize spheres per side; values
// below 2 select 20.
func NewSphereGridScene(gridSize int) *Scene {
	if gridSize < 2 {
		gridSize = 20
	}

	frame := renderer.DefaultFrameConfig()
	frame.Width = 800
	frame.Height = 450
	frame.SamplesPerPixel = 20

	hitables := []core.Hitable{newGroundSphere()}

	// Fit the grid into a 9x9 area around (4.5, 0, 4.5)
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := mgl64.Vec3{x, sphereRadius, z}

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			fuzz := 0.05 + 0.1*float64((i+j)%3)/2.0
			metal := material.NewMetal(oklchToRGB(lightness, chroma, hue), fuzz)
			hitables = append(hitables, geometry.NewSphere(position, sphereRadius, metal))
		}
	}

	return &Scene{
		Name:     "sphere-grid",
		Hitables: hitables,
		CameraConfig: geometry.CameraConfig{
			LookFrom:    mgl64.Vec3{4.5, 6, 18},
			LookAt:      mgl64.Vec3{4.5, 0.8, 4.5},
			Up:          mgl64.Vec3{0, 1, 0},
			VFov:        40,
			AspectRatio: float64(frame.Width) / float64(frame.Height),
			Aperture:    0.02,
		},
		Frame: frame,
	}
}
