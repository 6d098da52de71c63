package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3 // Minimum corner
	Max mgl64.Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max mgl64.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Hit tests if a ray intersects with this AABB using the slab method.
//
// A zero direction component is not special-cased: 1/0 yields ±Inf and the
// slab bounds become ±Inf (origin outside the slab, empty interval) or
// (-Inf, +Inf) (origin inside the slab, no constraint), which is the
// correct answer for a ray parallel to that axis. An origin lying exactly on
// the slab plane gives 0*Inf = NaN, which fails both comparisons and leaves
// the interval unchanged.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction[axis]
		t0 := (aabb.Min[axis] - ray.Origin[axis]) * invD
		t1 := (aabb.Max[axis] - ray.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}

		if tMax <= tMin {
			return false
		}
	}

	return true
}

// SurroundingBox returns the smallest AABB that bounds both boxes
func SurroundingBox(a, b AABB) AABB {
	small := mgl64.Vec3{
		math.Min(a.Min[0], b.Min[0]),
		math.Min(a.Min[1], b.Min[1]),
		math.Min(a.Min[2], b.Min[2]),
	}
	big := mgl64.Vec3{
		math.Max(a.Max[0], b.Max[0]),
		math.Max(a.Max[1], b.Max[1]),
		math.Max(a.Max[2], b.Max[2]),
	}
	return AABB{Min: small, Max: big}
}

// Contains reports whether point lies inside or on the boundary of the box
func (aabb AABB) Contains(point mgl64.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if point[axis] < aabb.Min[axis] || point[axis] > aabb.Max[axis] {
			return false
		}
	}
	return true
}

// Center returns the center point of the AABB
func (aabb AABB) Center() mgl64.Vec3 {
	return aabb.Min.Add(aabb.Max).Mul(0.5)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min[0] <= aabb.Max[0] &&
		aabb.Min[1] <= aabb.Max[1] &&
		aabb.Min[2] <= aabb.Max[2]
}
