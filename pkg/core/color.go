package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MultiplyVec returns component-wise multiplication of two vectors
func MultiplyVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Lerp linearly interpolates between a (t = 0) and b (t = 1)
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// IsFinite reports whether every component is neither NaN nor infinite
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
