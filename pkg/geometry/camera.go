package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraConfig contains all parameters needed to set up a thin-lens camera
type CameraConfig struct {
	LookFrom      mgl64.Vec3 // Camera position
	LookAt        mgl64.Vec3 // Point the camera looks at
	Up            mgl64.Vec3 // Up direction (usually {0, 1, 0})
	VFov          float64    // Vertical field of view in degrees, top to bottom
	AspectRatio   float64    // Width / height
	Aperture      float64    // Lens diameter (0 = pinhole, no depth of field)
	FocusDistance float64    // Distance to the plane in focus (0 = |LookFrom - LookAt|)
}

// Camera generates rays for rendering. It is immutable after construction.
type Camera struct {
	origin          mgl64.Vec3
	lowerLeftCorner mgl64.Vec3
	horizontal      mgl64.Vec3
	vertical        mgl64.Vec3
	u, v, w         mgl64.Vec3
	lensRadius      float64
}

// NewCamera derives the camera basis and viewport from config
func NewCamera(config CameraConfig) *Camera {
	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookFrom.Sub(config.LookAt).Len()
	}

	theta := mgl64.DegToRad(config.VFov)
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	w := config.LookFrom.Sub(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	lowerLeftCorner := origin.
		Sub(u.Mul(halfWidth * focusDistance)).
		Sub(v.Mul(halfHeight * focusDistance)).
		Sub(w.Mul(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Mul(2 * halfWidth * focusDistance),
		vertical:        v.Mul(2 * halfHeight * focusDistance),
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for image-plane coordinates (s, t), 0 <= s,t <= 1,
// with (0, 0) at the lower left. The origin is jittered over the lens disk
// and the direction corrected so every ray through (s, t) meets the same
// point on the focal plane.
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	var offset mgl64.Vec3
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Mul(c.lensRadius)
		offset = c.u.Mul(rd[0]).Add(c.v.Mul(rd[1]))
	}

	target := c.FocalPoint(s, t)
	return core.NewRay(c.origin.Add(offset), target.Sub(c.origin).Sub(offset))
}

// FocalPoint returns the point on the focal plane that (s, t) maps to
func (c *Camera) FocalPoint(s, t float64) mgl64.Vec3 {
	return c.lowerLeftCorner.Add(c.horizontal.Mul(s)).Add(c.vertical.Mul(t))
}
