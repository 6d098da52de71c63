package renderer

import (
	"context"
	"math/rand"
	"sync/atomic"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/go-gl/mathgl/mgl64"
)

// createTestWorld builds a small scene with every material type
func createTestWorld() core.Hitable {
	hitables := []core.Hitable{
		geometry.NewSphere(mgl64.Vec3{0, -1000, 0}, 1000, material.NewLambertian(mgl64.Vec3{0.5, 0.5, 0.5})),
		geometry.NewSphere(mgl64.Vec3{-1, 0.5, -1}, 0.5, material.NewLambertian(mgl64.Vec3{0.8, 0.3, 0.3})),
		geometry.NewSphere(mgl64.Vec3{0, 0.5, -1}, 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(mgl64.Vec3{0, 0.5, -1}, -0.45, material.NewDielectric(1.5)),
		geometry.NewSphere(mgl64.Vec3{1, 0.5, -1}, 0.5, material.NewMetal(mgl64.Vec3{0.8, 0.6, 0.2}, 0.3)),
	}
	bvh, err := geometry.NewBVH(hitables, rand.New(rand.NewSource(42)))
	if err != nil {
		panic(err)
	}
	return bvh
}

// createGroundWorld is a single gray ground sphere
func createGroundWorld() core.Hitable {
	ground := geometry.NewSphere(mgl64.Vec3{0, -1000, 0}, 1000, material.NewLambertian(mgl64.Vec3{0.5, 0.5, 0.5}))
	bvh, err := geometry.NewBVH([]core.Hitable{ground}, rand.New(rand.NewSource(1)))
	if err != nil {
		panic(err)
	}
	return bvh
}

// createGroundCamera looks along -z from just above the ground
func createGroundCamera(aspect float64) *geometry.Camera {
	return geometry.NewCamera(geometry.CameraConfig{
		LookFrom:    mgl64.Vec3{0, 1, 0},
		LookAt:      mgl64.Vec3{0, 1, -1},
		Up:          mgl64.Vec3{0, 1, 0},
		VFov:        90,
		AspectRatio: aspect,
	})
}

// cancellingWorld cancels a context once it has been hit-tested limit times
type cancellingWorld struct {
	core.Hitable
	cancel context.CancelFunc
	limit  int64
	calls  atomic.Int64
}

func (w *cancellingWorld) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	if w.calls.Add(1) == w.limit {
		w.cancel()
	}
	return w.Hitable.Hit(ray, tMin, tMax)
}
