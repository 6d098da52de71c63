package geometry

import (
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
)

// BVHNode is an internal node of the bounding volume hierarchy.
// Left and Right are either further nodes or primitives; a node built over a
// single primitive holds it on both sides.
type BVHNode struct {
	Left  core.Hitable
	Right core.Hitable
	Box   core.AABB
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is read-only once built and safe for concurrent Hit calls.
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of hitables, drawing split axes from random
func NewBVH(hitables []core.Hitable, random *rand.Rand) (*BVH, error) {
	if len(hitables) == 0 {
		return nil, ErrInvalidScene
	}

	// The builder sorts in place, so work on a private copy
	working := make([]core.Hitable, len(hitables))
	copy(working, hitables)

	return &BVH{Root: buildBVH(working, random)}, nil
}

// buildBVH recursively builds the tree with a median split on a random axis
func buildBVH(hitables []core.Hitable, random *rand.Rand) *BVHNode {
	axis := random.Intn(3)
	less := func(a, b core.Hitable) bool {
		return a.BoundingBox().Min[axis] < b.BoundingBox().Min[axis]
	}

	node := &BVHNode{}
	switch len(hitables) {
	case 1:
		node.Left = hitables[0]
		node.Right = hitables[0]
	case 2:
		if less(hitables[0], hitables[1]) {
			node.Left, node.Right = hitables[0], hitables[1]
		} else {
			node.Left, node.Right = hitables[1], hitables[0]
		}
	default:
		sort.Slice(hitables, func(i, j int) bool {
			return less(hitables[i], hitables[j])
		})
		mid := len(hitables) / 2
		node.Left = buildBVH(hitables[:mid], random)
		node.Right = buildBVH(hitables[mid:], random)
	}

	node.Box = core.SurroundingBox(node.Left.BoundingBox(), node.Right.BoundingBox())
	return node
}

// Hit returns the closest intersection in the subtree
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return core.HitRecord{}, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax)
	if hitLeft {
		// Right subtree may only report something closer
		tMax = leftHit.T
	}

	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the box enclosing both children
func (n *BVHNode) BoundingBox() core.AABB {
	return n.Box
}

// Hit tests if a ray intersects any primitive in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	return bvh.Root.Hit(ray, tMin, tMax)
}

// BoundingBox returns the bounds of the whole scene
func (bvh *BVH) BoundingBox() core.AABB {
	return bvh.Root.Box
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	Nodes        int     // Internal nodes
	LeafRefs     int     // Child slots holding a primitive (a single-primitive node counts two)
	Primitives   int     // Distinct primitives
	MaxDepth     int     // Deepest primitive reference, root children at depth 1
	AvgLeafDepth float64 // Mean depth over leaf references
}

// Stats walks the tree and collects structural statistics
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	seen := make(map[core.Hitable]struct{})
	depthSum := 0

	var walk func(h core.Hitable, depth int)
	walk = func(h core.Hitable, depth int) {
		switch node := h.(type) {
		case *BVHNode:
			stats.Nodes++
			walk(node.Left, depth+1)
			walk(node.Right, depth+1)
		default:
			stats.LeafRefs++
			depthSum += depth
			stats.MaxDepth = max(stats.MaxDepth, depth)
			seen[h] = struct{}{}
		}
	}
	walk(bvh.Root, 0)

	stats.Primitives = len(seen)
	if stats.LeafRefs > 0 {
		stats.AvgLeafDepth = float64(depthSum) / float64(stats.LeafRefs)
	}
	return stats
}
