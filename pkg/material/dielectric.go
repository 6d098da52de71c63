package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// The hit normal always points out of the surface, so its sign against the
// ray direction tells whether the ray is leaving or entering the material.
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	// Clear glass absorbs nothing
	attenuation := mgl64.Vec3{1, 1, 1}
	reflected := Reflect(rayIn.Direction, hit.Normal)

	var outwardNormal mgl64.Vec3
	var niOverNt, cosine float64
	dirDotN := rayIn.Direction.Dot(hit.Normal)
	if dirDotN > 0 {
		// Exiting: glass to air
		outwardNormal = hit.Normal.Mul(-1)
		niOverNt = d.RefractiveIndex
		cosine = d.RefractiveIndex * dirDotN / rayIn.Direction.Len()
	} else {
		// Entering: air to glass
		outwardNormal = hit.Normal
		niOverNt = 1.0 / d.RefractiveIndex
		cosine = -dirDotN / rayIn.Direction.Len()
	}

	// Total internal reflection always reflects
	reflectProb := 1.0
	refracted, canRefract := Refract(rayIn.Direction, outwardNormal, niOverNt)
	if canRefract {
		reflectProb = Schlick(cosine, d.RefractiveIndex)
	}

	direction := refracted
	if random.Float64() < reflectProb {
		direction = reflected
	}

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}
