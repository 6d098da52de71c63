package geometry

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// mockShape is a pointer type so it can key the map in BVH.Stats
type mockShape struct {
	boundingBox core.AABB
	hitFn       func(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool)
	calls       int
}

func (m *mockShape) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	m.calls++
	if m.hitFn == nil {
		return core.HitRecord{}, false
	}
	return m.hitFn(ray, tMin, tMax)
}

func (m *mockShape) BoundingBox() core.AABB {
	return m.boundingBox
}

// hitAt returns a hit function reporting t when it lies in the open interval
func hitAt(t float64) func(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	return func(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
		if t > tMin && t < tMax {
			return core.HitRecord{T: t, Point: ray.At(t)}, true
		}
		return core.HitRecord{}, false
	}
}

func unitBoxAt(x float64) core.AABB {
	return core.NewAABB(mgl64.Vec3{x, 0, 0}, mgl64.Vec3{x + 1, 1, 1})
}

type stubMaterial struct{}

func (stubMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// randomSpheres scatters n small spheres through a 20-unit cube
func randomSpheres(n int, random *rand.Rand) []core.Hitable {
	hitables := make([]core.Hitable, n)
	for i := range hitables {
		center := mgl64.Vec3{
			random.Float64()*20 - 10,
			random.Float64()*20 - 10,
			random.Float64()*20 - 10,
		}
		hitables[i] = NewSphere(center, 0.2+random.Float64()*0.8, nil)
	}
	return hitables
}

func vecNear(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}
