package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// showcaseCamera frames the three large spheres from the front-right
func showcaseCamera(aspectRatio float64) geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:      mgl64.Vec3{13, 2, 3},
		LookAt:        mgl64.Vec3{0, 0, 0},
		Up:            mgl64.Vec3{0, 1, 0},
		VFov:          20,
		AspectRatio:   aspectRatio,
		Aperture:      0.1,
		FocusDistance: 10,
	}
}

// showcaseSpheres returns the glass, diffuse and mirror spheres at the center
func showcaseSpheres() []core.Hitable {
	return []core.Hitable{
		geometry.NewSphere(mgl64.Vec3{0, 1, 0}, 1, material.NewDielectric(1.5)),
		geometry.NewSphere(mgl64.Vec3{-4, 1, 0}, 1, material.NewLambertian(mgl64.Vec3{0.4, 0.2, 0.1})),
		geometry.NewSphere(mgl64.Vec3{4, 1, 0}, 1, material.NewMetal(mgl64.Vec3{0.7, 0.6, 0.5}, 0.0)),
	}
}

// NewRandomSpheresScene creates the classic cover scene: a 22x22 field of
// small spheres with random materials around three large ones.
// All placement and material draws come from random.
func NewRandomSpheresScene(random *rand.Rand) *Scene {
	frame := renderer.DefaultFrameConfig()

	hitables := []core.Hitable{newGroundSphere()}
	keepClear := mgl64.Vec3{4, 0.2, 0}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := random.Float64()
			center := mgl64.Vec3{
				float64(a) + 0.9*random.Float64(),
				0.2,
				float64(b) + 0.9*random.Float64(),
			}

			// Leave room around the large metal sphere
			if center.Sub(keepClear).Len() <= 0.9 {
				continue
			}

			var m core.Material
			switch {
			case chooseMaterial < 0.8:
				m = material.NewLambertian(mgl64.Vec3{
					random.Float64() * random.Float64(),
					random.Float64() * random.Float64(),
					random.Float64() * random.Float64(),
				})
			case chooseMaterial < 0.95:
				m = material.NewMetal(mgl64.Vec3{
					0.5 * (1 + random.Float64()),
					0.5 * (1 + random.Float64()),
					0.5 * (1 + random.Float64()),
				}, 0.1)
			default:
				m = material.NewDielectric(1.5)
			}
			hitables = append(hitables, geometry.NewSphere(center, 0.2, m))
		}
	}
	hitables = append(hitables, showcaseSpheres()...)

	return &Scene{
		Name:         "random-spheres",
		Hitables:     hitables,
		CameraConfig: showcaseCamera(float64(frame.Width) / float64(frame.Height)),
		Frame:        frame,
	}
}
