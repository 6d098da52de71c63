package core

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// HitRecord contains information about a ray-object intersection.
//
// Normal is the outward surface normal and is not flipped to face the
// incoming ray; materials use its sign against the ray direction to tell
// entering from exiting.
type HitRecord struct {
	T        float64    // Parameter t along the ray
	Point    mgl64.Vec3 // Point of intersection
	Normal   mgl64.Vec3 // Unit outward normal at intersection
	Material Material   // Material of the hit object
}

// Hitable is implemented by everything a ray can be tested against
type Hitable interface {
	Hit(ray Ray, tMin, tMax float64) (HitRecord, bool)
	BoundingBox() AABB
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray        // The scattered ray
	Attenuation mgl64.Vec3 // Color attenuation
}

// Material interface for objects that can scatter rays.
// A false return means the ray was absorbed.
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}
