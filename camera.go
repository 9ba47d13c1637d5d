package showcase

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera: a pose, a lens, and the viewport it renders
// into. Only the Choreographer moves a camera owned by a Controller.
type Camera struct {
	// Position is the world-space eye position.
	Position Vec3
	// LookAt is the world-space point the camera faces (the orbit target).
	LookAt Vec3
	// Up is the world up vector, (0, 1, 0) by default.
	Up Vec3
	// FovY is the vertical field of view in degrees.
	FovY float64
	// Near and Far are the clip plane distances.
	Near, Far float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
}

// NewCamera creates a camera with the given lens and viewport, placed at the
// origin looking down -Z.
func NewCamera(fovY, near, far float64, viewport Rect) *Camera {
	return &Camera{
		LookAt:   Vec3{0, 0, -1},
		Up:       Vec3{0, 1, 0},
		FovY:     fovY,
		Near:     near,
		Far:      far,
		Viewport: viewport,
	}
}

// Pose returns the current position and look-at point.
func (c *Camera) Pose() Pose {
	return Pose{Position: c.Position, LookAt: c.LookAt}
}

// SetPose places the camera.
func (c *Camera) SetPose(p Pose) {
	c.Position = p.Position
	c.LookAt = p.LookAt
}

// Aspect returns the viewport width/height ratio, or 1 for an empty viewport.
func (c *Camera) Aspect() float64 {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return 1
	}
	return c.Viewport.Width / c.Viewport.Height
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	up := c.Up
	if up.Len() == 0 {
		up = Vec3{0, 1, 0}
	}
	return mgl64.LookAtV(c.Position, c.LookAt, up)
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect(), c.Near, c.Far)
}

// errSingularView is returned when the view-projection cannot be inverted
// (for example when Position == LookAt).
var errSingularView = errors.New("showcase: camera view-projection is singular")

// ScreenToNDC converts viewport pixel coordinates to normalized device
// coordinates: x in [-1, 1] left to right, y in [-1, 1] bottom to top.
func (c *Camera) ScreenToNDC(sx, sy float64) NDC {
	w, h := c.Viewport.Width, c.Viewport.Height
	if w <= 0 || h <= 0 {
		return NDC{}
	}
	return NDC{
		X: ((sx-c.Viewport.X)/w)*2 - 1,
		Y: -((sy-c.Viewport.Y)/h)*2 + 1,
	}
}

// WorldToScreen projects a world point into viewport pixels. The second
// result is false when the point is behind the camera.
func (c *Camera) WorldToScreen(p Vec3) (sx, sy float64, ok bool) {
	clip := c.ProjectionMatrix().Mul4(c.ViewMatrix()).Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, false
	}
	nx := clip[0] / clip[3]
	ny := clip[1] / clip[3]
	sx = c.Viewport.X + (nx+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + (1-ny)/2*c.Viewport.Height
	return sx, sy, true
}

// RayFromNDC builds a pick ray from the camera position through the given NDC
// point, the way a perspective raycaster does: origin at the eye, direction
// toward the unprojected point.
func (c *Camera) RayFromNDC(ndc NDC) (Ray, error) {
	inv := c.ProjectionMatrix().Mul4(c.ViewMatrix()).Inv()
	if inv == (mgl64.Mat4{}) {
		return Ray{}, errSingularView
	}
	p := inv.Mul4x1(mgl64.Vec4{ndc.X, ndc.Y, 0.5, 1})
	if p[3] == 0 {
		return Ray{}, errSingularView
	}
	target := Vec3{p[0] / p[3], p[1] / p[3], p[2] / p[3]}
	dir := target.Sub(c.Position)
	if l := dir.Len(); l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Ray{}, errSingularView
	}
	return Ray{Origin: c.Position, Direction: dir.Normalize()}, nil
}
