package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/go-gl/mathgl/mgl64"
)

// mirrorMaterial sends every ray straight back with a fixed attenuation
type mirrorMaterial struct {
	attenuation mgl64.Vec3
	calls       int
}

func (m *mirrorMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	m.calls++
	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, rayIn.Direction.Mul(-1)),
		Attenuation: m.attenuation,
	}, true
}

// absorber never scatters
type absorber struct{}

func (absorber) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func vecNear(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

func TestSkyGradient(t *testing.T) {
	tests := []struct {
		name      string
		direction mgl64.Vec3
		expected  mgl64.Vec3
	}{
		{"straight up", mgl64.Vec3{0, 1, 0}, DefaultSky.Top},
		{"straight down", mgl64.Vec3{0, -5, 0}, DefaultSky.Bottom},
		{"horizon", mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0.75, 0.85, 1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultSky.Color(core.NewRay(mgl64.Vec3{}, tt.direction))
			if !vecNear(got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPathTracingMissedRay(t *testing.T) {
	sphere := geometry.NewSphere(mgl64.Vec3{0, 0, -1}, 0.5, absorber{})
	integrator := NewPathTracingIntegrator(DefaultMaxBounces, DefaultSky)

	// Pointing away from the sphere
	ray := core.NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})
	color, segments := integrator.RayColor(ray, sphere, rand.New(rand.NewSource(42)))

	if !vecNear(color, DefaultSky.Top, 1e-12) {
		t.Errorf("Expected sky color %v, got %v", DefaultSky.Top, color)
	}
	if segments != 1 {
		t.Errorf("Expected a single segment, got %d", segments)
	}
}

func TestPathTracingAbsorbedRay(t *testing.T) {
	sphere := geometry.NewSphere(mgl64.Vec3{0, 0, -1}, 0.5, absorber{})
	integrator := NewPathTracingIntegrator(DefaultMaxBounces, DefaultSky)

	ray := core.NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1})
	color, _ := integrator.RayColor(ray, sphere, rand.New(rand.NewSource(42)))

	if color != (mgl64.Vec3{}) {
		t.Errorf("Expected black for absorbed ray, got %v", color)
	}
}

func TestPathTracingAttenuatesSingleBounce(t *testing.T) {
	mirror := &mirrorMaterial{attenuation: mgl64.Vec3{0.5, 0.25, 1.0}}
	sphere := geometry.NewSphere(mgl64.Vec3{0, 0, -1}, 0.5, mirror)
	integrator := NewPathTracingIntegrator(DefaultMaxBounces, DefaultSky)

	// Bounces straight back along +z and escapes towards the horizon
	ray := core.NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1})
	color, segments := integrator.RayColor(ray, sphere, rand.New(rand.NewSource(42)))

	expected := core.MultiplyVec(mirror.attenuation, mgl64.Vec3{0.75, 0.85, 1.0})
	if !vecNear(color, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, color)
	}
	if segments != 2 {
		t.Errorf("Expected 2 segments, got %d", segments)
	}
	if mirror.calls != 1 {
		t.Errorf("Expected one scatter, got %d", mirror.calls)
	}
}

func TestPathTracingBounceCap(t *testing.T) {
	// A ray trapped inside a mirrored sphere never escapes
	mirror := &mirrorMaterial{attenuation: mgl64.Vec3{1, 1, 1}}
	sphere := geometry.NewSphere(mgl64.Vec3{0, 0, 0}, 1, mirror)

	tests := []struct {
		name       string
		maxBounces int
		expected   int
	}{
		{"default cap", 0, DefaultMaxBounces},
		{"small cap", 3, 3},
		{"larger cap", 75, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mirror.calls = 0
			integrator := NewPathTracingIntegrator(tt.maxBounces, DefaultSky)

			ray := core.NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1})
			color, segments := integrator.RayColor(ray, sphere, rand.New(rand.NewSource(1)))

			if color != (mgl64.Vec3{}) {
				t.Errorf("Expected black at the bounce cap, got %v", color)
			}
			if mirror.calls != tt.expected {
				t.Errorf("Expected %d scatters, got %d", tt.expected, mirror.calls)
			}
			if segments != tt.expected {
				t.Errorf("Expected %d segments, got %d", tt.expected, segments)
			}
		})
	}
}

// limitedWorld is hit a fixed number of times and missed afterwards
type limitedWorld struct {
	remaining int
	material  core.Material
}

func (w *limitedWorld) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	if w.remaining == 0 {
		return core.HitRecord{}, false
	}
	w.remaining--
	return core.HitRecord{
		T:        1,
		Point:    ray.At(1),
		Normal:   mgl64.Vec3{0, 0, 1},
		Material: w.material,
	}, true
}

func (w *limitedWorld) BoundingBox() core.AABB {
	return core.NewAABB(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})
}

func TestPathTracingEscapeAtCap(t *testing.T) {
	tests := []struct {
		name       string
		hits       int
		maxBounces int
		escapes    bool
		segments   int
	}{
		{"escapes on last segment", 2, 3, true, 3},
		{"still bouncing at cap", 3, 3, false, 3},
		{"escapes immediately", 0, 3, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := &limitedWorld{
				remaining: tt.hits,
				material:  &mirrorMaterial{attenuation: mgl64.Vec3{1, 1, 1}},
			}
			integrator := NewPathTracingIntegrator(tt.maxBounces, DefaultSky)
			ray := core.NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})

			color, segments := integrator.RayColor(ray, world, rand.New(rand.NewSource(1)))
			if segments != tt.segments {
				t.Errorf("Expected %d segments, got %d", tt.segments, segments)
			}
			if tt.escapes && color == (mgl64.Vec3{}) {
				t.Error("Expected sky light for an escaping path")
			}
			if !tt.escapes && color != (mgl64.Vec3{}) {
				t.Errorf("Expected black at the bounce cap, got %v", color)
			}
		})
	}
}

func TestPathTracingLambertianGround(t *testing.T) {
	ground := geometry.NewSphere(mgl64.Vec3{0, -1000, 0}, 1000, material.NewLambertian(mgl64.Vec3{0.5, 0.5, 0.5}))
	integrator := NewPathTracingIntegrator(DefaultMaxBounces, DefaultSky)
	random := rand.New(rand.NewSource(42))

	// Looking down at the ground: every path's first bounce halves the sky
	ray := core.NewRay(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, -1, 0})

	var sum mgl64.Vec3
	const numSamples = 2000
	for i := 0; i < numSamples; i++ {
		color, _ := integrator.RayColor(ray, ground, random)
		if !core.IsFinite(color) {
			t.Fatalf("Non-finite color %v", color)
		}
		for c := 0; c < 3; c++ {
			if color[c] < 0 || color[c] > 0.5+1e-12 {
				t.Fatalf("Channel %d = %f outside [0, 0.5]", c, color[c])
			}
		}
		sum = sum.Add(color)
	}

	mean := sum.Mul(1.0 / numSamples)
	// A flat ground sees only the upper sky hemisphere, which is bluer than white
	if mean[2] <= mean[0] {
		t.Errorf("Expected blue-tinted ground, got %v", mean)
	}
	if math.Abs(mean[2]-0.5) > 0.05 {
		t.Errorf("Expected blue channel near 0.5, got %f", mean[2])
	}
}

func TestPathTracingDeterministic(t *testing.T) {
	glass := geometry.NewSphere(mgl64.Vec3{0, 0, -1}, 0.5, material.NewDielectric(1.5))
	integrator := NewPathTracingIntegrator(DefaultMaxBounces, DefaultSky)
	ray := core.NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.1, 0, -1})

	first, _ := integrator.RayColor(ray, glass, rand.New(rand.NewSource(99)))
	second, _ := integrator.RayColor(ray, glass, rand.New(rand.NewSource(99)))
	if first != second {
		t.Errorf("Expected identical colors for identical seeds, got %v and %v", first, second)
	}
}

func TestPathTracingLambertianNeverExceedsSky(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	hitables := []core.Hitable{
		geometry.NewSphere(mgl64.Vec3{0, -1000, 0}, 1000, material.NewLambertian(mgl64.Vec3{0.9, 0.9, 0.9})),
	}
	for i := 0; i < 30; i++ {
		center := mgl64.Vec3{random.Float64()*8 - 4, 0.5, random.Float64()*8 - 4}
		albedo := mgl64.Vec3{random.Float64(), random.Float64(), random.Float64()}
		hitables = append(hitables, geometry.NewSphere(center, 0.5, material.NewLambertian(albedo)))
	}
	world, err := geometry.NewBVH(hitables, random)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// The brightest sky color is white, and no albedo exceeds 1
	integrator := NewPathTracingIntegrator(DefaultMaxBounces, DefaultSky)
	for i := 0; i < 2000; i++ {
		origin := mgl64.Vec3{random.Float64()*6 - 3, 1 + random.Float64(), random.Float64()*6 - 3}
		ray := core.NewRay(origin, core.RandomInUnitSphere(random).Add(mgl64.Vec3{0, -0.5, 0}))

		color, _ := integrator.RayColor(ray, world, random)
		for c := 0; c < 3; c++ {
			if math.IsNaN(color[c]) || color[c] < 0 || color[c] > 1+1e-9 {
				t.Fatalf("Channel %d = %f outside [0, 1]", c, color[c])
			}
		}
	}
}
