package core

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// RandomInUnitSphere rejection-samples a point strictly inside the unit ball
func RandomInUnitSphere(random *rand.Rand) mgl64.Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := mgl64.Vec3{
			2*random.Float64() - 1,
			2*random.Float64() - 1,
			2*random.Float64() - 1,
		}
		if p.Dot(p) < 1.0 {
			return p
		}
	}
}

// RandomInUnitDisk rejection-samples a point strictly inside the unit disk (z = 0)
func RandomInUnitDisk(random *rand.Rand) mgl64.Vec3 {
	for {
		p := mgl64.Vec3{2*random.Float64() - 1, 2*random.Float64() - 1, 0}
		if p.Dot(p) < 1.0 {
			return p
		}
	}
}
