package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-flying eye with yaw/pitch look and a perspective lens.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float64
	Pitch    float64

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	firstMouse bool
	lastX      float64
	lastY      float64
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		Yaw:         -90,
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		firstMouse:  true,
	}
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// Front is the unit look direction.
func (c *Camera) Front() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(c.Yaw))
	pt := mgl32.DegToRad(float32(c.Pitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// Right is the unit strafe direction, always horizontal.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Front().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// HandleMouseMovement turns cursor deltas into yaw and pitch.
func (c *Camera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX, c.lastY = xpos, ypos
		c.firstMouse = false
		return
	}
	xoffset := xpos - c.lastX
	yoffset := c.lastY - ypos
	c.lastX, c.lastY = xpos, ypos

	const sensitivity = 0.1
	c.Yaw += xoffset * sensitivity
	c.Pitch += yoffset * sensitivity

	// Constrain pitch
	c.Pitch = math.Max(-89, math.Min(89, c.Pitch))
}

// ResetMouse drops the stored cursor position, e.g. after the cursor was
// released and recaptured.
func (c *Camera) ResetMouse() {
	c.firstMouse = true
}

// Move flies the camera: forward/right/up in -1..1, scaled by speed*dt.
func (c *Camera) Move(forward, right, up float32, speed float32, dt float64) {
	step := speed * float32(dt)
	delta := c.Front().Mul(forward).Add(c.Right().Mul(right)).Add(mgl32.Vec3{0, up, 0})
	if delta.Len() == 0 {
		return
	}
	c.Position = c.Position.Add(delta.Normalize().Mul(step))
}
