package bounds

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Plane is a*x + b*y + c*z + d with the normal (a, b, c) pointing into the
// frustum. Planes built by FromMatrix are normalized.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// Distance returns the signed distance from p to the plane.
func (pl Plane) Distance(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

func normalizePlane(a, b, c, d float32) Plane {
	l := float32(math.Sqrt(float64(a*a + b*b + c*c)))
	if l == 0 {
		return Plane{Normal: mgl32.Vec3{a, b, c}, D: d}
	}
	return Plane{Normal: mgl32.Vec3{a / l, b / l, c / l}, D: d / l}
}

// Plane indices. The order is the test order: the side planes reject most
// out-of-view chunks first.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneFar
	PlaneNear
	PlaneTop
	PlaneBottom
)

// Frustum is six inward-facing planes.
type Frustum struct {
	Planes [6]Plane
}

// FromMatrix extracts the frustum planes from a combined projection*view
// matrix (Gribb/Hartmann).
func FromMatrix(clip mgl32.Mat4) *Frustum {
	// mgl32 matrices are column-major
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	f := &Frustum{}
	f.Planes[PlaneLeft] = normalizePlane(m30+m00, m31+m01, m32+m02, m33+m03)
	f.Planes[PlaneRight] = normalizePlane(m30-m00, m31-m01, m32-m02, m33-m03)
	f.Planes[PlaneFar] = normalizePlane(m30-m20, m31-m21, m32-m22, m33-m23)
	f.Planes[PlaneNear] = normalizePlane(m30+m20, m31+m21, m32+m22, m33+m23)
	f.Planes[PlaneTop] = normalizePlane(m30-m10, m31-m11, m32-m12, m33-m13)
	f.Planes[PlaneBottom] = normalizePlane(m30+m10, m31+m11, m32+m12, m33+m13)
	return f
}

// FromCamera builds the frustum for a view and projection pair.
func FromCamera(view, proj mgl32.Mat4) *Frustum {
	return FromMatrix(proj.Mul4(view))
}
