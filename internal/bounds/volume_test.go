package bounds

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/voxel"
)

func testFrustum() *Frustum {
	view := mgl32.LookAtV(mgl32.Vec3{0, 16, 0}, mgl32.Vec3{0, 16, -1}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 1000)
	return FromCamera(view, proj)
}

func corners(b AABB) []mgl32.Vec3 {
	lo, hi := b.Min(), b.Max()
	out := make([]mgl32.Vec3, 0, 8)
	for i := 0; i < 8; i++ {
		p := lo
		if i&1 != 0 {
			p[0] = hi[0]
		}
		if i&2 != 0 {
			p[1] = hi[1]
		}
		if i&4 != 0 {
			p[2] = hi[2]
		}
		out = append(out, p)
	}
	return out
}

func TestFrustumPlaneOrderAndFacing(t *testing.T) {
	f := testFrustum()
	inside := mgl32.Vec3{0, 16, -50}
	for i, p := range f.Planes {
		if d := p.Distance(inside); d <= 0 {
			t.Fatalf("plane %d: point on the view axis has distance %v", i, d)
		}
		if l := p.Normal.Len(); l < 0.999 || l > 1.001 {
			t.Fatalf("plane %d not normalized: |n| = %v", i, l)
		}
	}
	// the far plane faces back toward the camera, the near plane away from it
	if f.Planes[PlaneFar].Normal.Z() <= 0 || f.Planes[PlaneNear].Normal.Z() >= 0 {
		t.Fatalf("far/near normals = %v / %v", f.Planes[PlaneFar].Normal, f.Planes[PlaneNear].Normal)
	}
	if f.Planes[PlaneLeft].Normal.X() <= 0 || f.Planes[PlaneRight].Normal.X() >= 0 {
		t.Fatalf("left/right normals = %v / %v", f.Planes[PlaneLeft].Normal, f.Planes[PlaneRight].Normal)
	}
	if f.Planes[PlaneTop].Normal.Y() >= 0 || f.Planes[PlaneBottom].Normal.Y() <= 0 {
		t.Fatalf("top/bottom normals = %v / %v", f.Planes[PlaneTop].Normal, f.Planes[PlaneBottom].Normal)
	}
}

func TestHierarchyKnownChunks(t *testing.T) {
	f := testFrustum()
	tests := []struct {
		key  voxel.ChunkKey
		want Intersection
	}{
		{voxel.ChunkKey{X: 0, Y: 0, Z: -4}, Full},
		{voxel.ChunkKey{X: 0, Y: 0, Z: 2}, None},
		{voxel.ChunkKey{X: 40, Y: 0, Z: -2}, None},
	}
	for _, tt := range tests {
		if got := ForChunk(tt.key).Intersect(f); got != tt.want {
			t.Errorf("chunk %v: got %v, want %v", tt.key, got, tt.want)
		}
	}
	// the chunk containing the camera straddles the near plane
	if got := ForChunk(voxel.ChunkKey{X: -1, Y: 0, Z: -1}).Intersect(f); got != Partial {
		t.Errorf("camera chunk: got %v, want partial", got)
	}
}

// TestHierarchySoundness checks the three-valued result against a brute-force
// corner test: None means some plane has every corner outside, Full means
// every corner is inside every plane.
func TestHierarchySoundness(t *testing.T) {
	f := testFrustum()
	for x := int32(-8); x <= 8; x++ {
		for y := int32(-2); y <= 2; y++ {
			for z := int32(-12); z <= 4; z++ {
				key := voxel.ChunkKey{X: x, Y: y, Z: z}
				h := ForChunk(key)
				cs := corners(h.Box)
				switch h.Intersect(f) {
				case None:
					rejected := false
					for _, p := range f.Planes {
						out := 0
						for _, c := range cs {
							if p.Distance(c) < 0 {
								out++
							}
						}
						if out == len(cs) {
							rejected = true
							break
						}
					}
					if !rejected {
						t.Fatalf("chunk %v reported none but no plane rejects every corner", key)
					}
				case Full:
					for _, p := range f.Planes {
						for _, c := range cs {
							if p.Distance(c) < -1e-3 {
								t.Fatalf("chunk %v reported full but corner %v is outside", key, c)
							}
						}
					}
				}
			}
		}
	}
}

func TestSphereContainsBox(t *testing.T) {
	h := ForChunk(voxel.ChunkKey{X: 3, Y: -2, Z: 7})
	for _, c := range corners(h.Box) {
		if d := c.Sub(h.Sphere.Center).Len(); d > h.Sphere.Radius+1e-3 {
			t.Fatalf("corner %v outside sphere (d=%v r=%v)", c, d, h.Sphere.Radius)
		}
	}
	// negative chunks are shifted by one voxel
	if h.Box.Min() != (mgl32.Vec3{96, -63, 224}) {
		t.Fatalf("box min = %v", h.Box.Min())
	}
}
