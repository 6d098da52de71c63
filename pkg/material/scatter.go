package material

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n mgl64.Vec3) mgl64.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Refract bends v through a surface with unit normal n using Snell's law.
// niOverNt is the ratio of refractive indices on the incident and
// transmitted sides. It returns false on total internal reflection.
func Refract(v, n mgl64.Vec3, niOverNt float64) (mgl64.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return mgl64.Vec3{}, false
	}
	return uv.Sub(n.Mul(dt)).Mul(niOverNt).Sub(n.Mul(math.Sqrt(discriminant))), true
}

// Schlick approximates the Fresnel reflectance for an angle with the given
// cosine on a surface of refractive index refIdx
func Schlick(cosine, refIdx float64) float64 {
	r0 := (1 - refIdx) / (1 + refIdx)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
