package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// HitableList tests a ray against every member in turn.
// It is the brute-force reference the BVH has to agree with.
type HitableList struct {
	Hitables []core.Hitable
	box      core.AABB
}

// NewHitableList creates a list over hitables; the slice is not copied
func NewHitableList(hitables []core.Hitable) (*HitableList, error) {
	if len(hitables) == 0 {
		return nil, ErrInvalidScene
	}

	box := hitables[0].BoundingBox()
	for _, h := range hitables[1:] {
		box = core.SurroundingBox(box, h.BoundingBox())
	}

	return &HitableList{Hitables: hitables, box: box}, nil
}

// Hit returns the closest hit over all members
func (l *HitableList) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	var closestHit core.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, h := range l.Hitables {
		if hit, isHit := h.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the union of all member boxes
func (l *HitableList) BoundingBox() core.AABB {
	return l.box
}
