package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultMaxBounces caps the number of scatter events per path
	DefaultMaxBounces = 50

	// tMin keeps scattered rays from re-hitting the surface they left
	tMin = 0.001
)

// SkyGradient is the environment seen by rays that escape the scene.
// It blends from Bottom (ray pointing straight down) to Top (straight up).
type SkyGradient struct {
	Top    mgl64.Vec3
	Bottom mgl64.Vec3
}

// DefaultSky is the white-to-blue gradient
var DefaultSky = SkyGradient{
	Top:    mgl64.Vec3{0.5, 0.7, 1.0},
	Bottom: mgl64.Vec3{1.0, 1.0, 1.0},
}

// Color returns the sky color in the direction of r
func (s SkyGradient) Color(r core.Ray) mgl64.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection[1] + 1.0)
	return core.Lerp(s.Bottom, s.Top, t)
}

// PathTracingIntegrator implements unidirectional path tracing with no
// explicit light sampling; the sky is the only light source.
type PathTracingIntegrator struct {
	MaxBounces int
	Sky        SkyGradient
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A non-positive maxBounces selects DefaultMaxBounces.
func NewPathTracingIntegrator(maxBounces int, sky SkyGradient) *PathTracingIntegrator {
	if maxBounces <= 0 {
		maxBounces = DefaultMaxBounces
	}
	return &PathTracingIntegrator{
		MaxBounces: maxBounces,
		Sky:        sky,
	}
}

// RayColor follows the path iteratively, multiplying attenuation into a
// running throughput. Each of the MaxBounces segments is one world test
// followed by a scatter; only a ray that escapes within them carries light.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Hitable, random *rand.Rand) (mgl64.Vec3, int) {
	throughput := mgl64.Vec3{1, 1, 1}
	segments := 0

	for bounce := 0; bounce < pt.MaxBounces; bounce++ {
		segments++
		hit, isHit := world.Hit(ray, tMin, math.Inf(1))
		if !isHit {
			return core.MultiplyVec(throughput, pt.Sky.Color(ray)), segments
		}

		scatter, didScatter := hit.Material.Scatter(ray, hit, random)
		if !didScatter {
			return mgl64.Vec3{}, segments
		}

		throughput = core.MultiplyVec(throughput, scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Still bouncing at the cap
	return mgl64.Vec3{}, segments
}
