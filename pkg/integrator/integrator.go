package integrator

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along ray.
	// Returns (color, number of ray segments cast against world)
	RayColor(ray core.Ray, world core.Hitable, random *rand.Rand) (mgl64.Vec3, int)
}
