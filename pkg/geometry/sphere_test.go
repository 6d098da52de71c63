package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(mgl64.Vec3{0, 0, 0}, 1.0, nil)
	ray := core.NewRay(mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 1, 0})

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_TangentIsMiss(t *testing.T) {
	// Discriminant of exactly zero is not a hit
	sphere := NewSphere(mgl64.Vec3{0, 0, 0}, 1.0, nil)
	ray := core.NewRay(mgl64.Vec3{1, 0, -5}, mgl64.Vec3{0, 0, 1})

	if _, isHit := sphere.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Expected grazing ray to miss")
	}
}

func TestSphere_Hit_TowardsCenter(t *testing.T) {
	center := mgl64.Vec3{1, 2, -3}
	radius := 0.75

	tests := []struct {
		name      string
		origin    mgl64.Vec3
		direction mgl64.Vec3
	}{
		{"along z", mgl64.Vec3{1, 2, 5}, mgl64.Vec3{0, 0, -1}},
		{"along x unnormalized", mgl64.Vec3{-9, 2, -3}, mgl64.Vec3{4, 0, 0}},
		{"diagonal", mgl64.Vec3{4, 5, 0}, mgl64.Vec3{-1, -1, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(center, radius, nil)
			ray := core.NewRay(tt.origin, tt.direction)

			hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			// t is measured in units of the direction length
			distance := center.Sub(tt.origin).Len()
			expectedT := (distance - radius) / tt.direction.Len()
			if math.Abs(hit.T-expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", expectedT, hit.T)
			}

			expectedNormal := hit.Point.Sub(center).Mul(1 / radius)
			if !vecNear(hit.Normal, expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
			}
			if math.Abs(hit.Normal.Len()-1.0) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", hit.Normal.Len())
			}

			// Normal faces back towards the origin for an outside hit
			if hit.Normal.Dot(tt.direction) >= 0 {
				t.Errorf("Expected normal %v to oppose direction %v", hit.Normal, tt.direction)
			}
		})
	}
}

func TestSphere_Hit_FromInsideKeepsOutwardNormal(t *testing.T) {
	sphere := NewSphere(mgl64.Vec3{0, 0, 0}, 1.0, nil)
	ray := core.NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1})

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit from inside")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got %f", hit.T)
	}

	// Not flipped: still points outward, same side as the ray direction
	expected := mgl64.Vec3{0, 0, 1}
	if !vecNear(hit.Normal, expected, 1e-12) {
		t.Errorf("Expected outward normal %v, got %v", expected, hit.Normal)
	}
}

func TestSphere_Hit_RespectsInterval(t *testing.T) {
	sphere := NewSphere(mgl64.Vec3{0, 0, 0}, 1.0, nil)
	ray := core.NewRay(mgl64.Vec3{0, 0, -5}, mgl64.Vec3{0, 0, 1})

	// Roots at t=4 and t=6
	tests := []struct {
		name      string
		tMin      float64
		tMax      float64
		expectHit bool
		expectedT float64
	}{
		{"both roots inside", 0.001, 100, true, 4},
		{"near root excluded", 4.5, 100, true, 6},
		{"near root on open lower bound", 4, 100, true, 6},
		{"far root on open upper bound", 4.5, 6, false, 0},
		{"both roots excluded", 7, 100, false, 0},
		{"interval before sphere", 0.001, 3, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_HitCarriesMaterial(t *testing.T) {
	material := &stubMaterial{}
	sphere := NewSphere(mgl64.Vec3{0, 0, 0}, 1.0, material)
	ray := core.NewRay(mgl64.Vec3{0, 0, -5}, mgl64.Vec3{0, 0, 1})

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != material {
		t.Error("Hit record should reference the sphere's material")
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
	}{
		{"positive radius", 2},
		{"negative radius", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(mgl64.Vec3{1, 1, 1}, tt.radius, nil)
			box := sphere.BoundingBox()

			if box.Min != (mgl64.Vec3{-1, -1, -1}) || box.Max != (mgl64.Vec3{3, 3, 3}) {
				t.Errorf("Unexpected bounding box %v", box)
			}
			if !box.IsValid() {
				t.Error("Bounding box should be valid")
			}
		})
	}
}
