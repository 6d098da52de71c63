package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// newGroundSphere returns the huge gray sphere every scene stands on
func newGroundSphere() *geometry.Sphere {
	return geometry.NewSphere(
		mgl64.Vec3{0, -1000, 0},
		1000,
		material.NewLambertian(mgl64.Vec3{0.5, 0.5, 0.5}),
	)
}

// NewGroundScene creates a scene with nothing but the ground, viewed along
// -z from just above it: sky in the top half, gray ground below
func NewGroundScene() *Scene {
	frame := renderer.DefaultFrameConfig()
	frame.Width = 400
	frame.Height = 200
	frame.SamplesPerPixel = 16

	return &Scene{
		Name:     "ground",
		Hitables: []core.Hitable{newGroundSphere()},
		CameraConfig: geometry.CameraConfig{
			LookFrom:    mgl64.Vec3{0, 1, 0},
			LookAt:      mgl64.Vec3{0, 1, -1},
			Up:          mgl64.Vec3{0, 1, 0},
			VFov:        90,
			AspectRatio: float64(frame.Width) / float64(frame.Height),
		},
		Frame: frame,
	}
}
