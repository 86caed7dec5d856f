package bounds

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/voxel"
)

// Intersection is the three-valued result of a frustum test.
type Intersection uint8

const (
	None Intersection = iota
	Partial
	Full
)

func (i Intersection) String() string {
	switch i {
	case None:
		return "none"
	case Partial:
		return "partial"
	default:
		return "full"
	}
}

// min combines per-plane results: None absorbs, Partial beats Full.
func (i Intersection) min(o Intersection) Intersection {
	if o < i {
		return o
	}
	return i
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// Intersect tests the sphere against every plane in order and stops at the
// first plane that rejects it.
func (s Sphere) Intersect(f *Frustum) Intersection {
	res := Full
	for i := range f.Planes {
		d := f.Planes[i].Distance(s.Center)
		switch {
		case d < -s.Radius:
			return None
		case d < s.Radius:
			res = res.min(Partial)
		}
	}
	return res
}

// AABB is an axis-aligned box given by its center and half extents.
type AABB struct {
	Center  mgl32.Vec3
	Extents mgl32.Vec3
}

// Min returns the lowest corner.
func (b AABB) Min() mgl32.Vec3 { return b.Center.Sub(b.Extents) }

// Max returns the highest corner.
func (b AABB) Max() mgl32.Vec3 { return b.Center.Add(b.Extents) }

// Intersect tests the box using the projected radius r = |n|·extents.
func (b AABB) Intersect(f *Frustum) Intersection {
	res := Full
	for i := range f.Planes {
		p := &f.Planes[i]
		r := abs(p.Normal.X())*b.Extents.X() +
			abs(p.Normal.Y())*b.Extents.Y() +
			abs(p.Normal.Z())*b.Extents.Z()
		d := p.Distance(b.Center)
		switch {
		case d < -r:
			return None
		case d < r:
			res = res.min(Partial)
		}
	}
	return res
}

// Hierarchy is a sphere enclosing an AABB. The sphere answers most queries;
// the box refines the Partial ones.
type Hierarchy struct {
	Sphere Sphere
	Box    AABB
}

// NewHierarchy builds the hierarchy for a box.
func NewHierarchy(box AABB) Hierarchy {
	return Hierarchy{
		Sphere: Sphere{Center: box.Center, Radius: box.Extents.Len()},
		Box:    box,
	}
}

// ForChunk returns the hierarchy covering the chunk's voxels in world space.
// Negative chunk coordinates sit one voxel higher than key*32, matching the
// mirrored addressing.
func ForChunk(key voxel.ChunkKey) Hierarchy {
	o := voxel.JoinWorldPos(key, [3]int{})
	half := float32(voxel.ChunkSize) / 2
	return NewHierarchy(AABB{
		Center:  mgl32.Vec3{float32(o[0]) + half, float32(o[1]) + half, float32(o[2]) + half},
		Extents: mgl32.Vec3{half, half, half},
	})
}

// Intersect evaluates the sphere and falls back to the box when the sphere
// straddles a plane.
func (h Hierarchy) Intersect(f *Frustum) Intersection {
	res := h.Sphere.Intersect(f)
	if res != Partial {
		return res
	}
	return h.Box.Intersect(f)
}

func abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
