package render

import (
	"math"

	"github.com/polarwander/schwarzviz/pkg/geom"
	"github.com/polarwander/schwarzviz/pkg/spacetime"
)

// Camera is an orbital camera around the black hole at the origin.
//
// The pose is held in Schwarzschild coordinates (r, phi, theta) plus the
// coordinate time t, and the Cartesian eye point is re-derived through the
// spacetime conversion whenever the pose changes.
type Camera struct {
	// Schwarzschild pose of the eye. Theta is measured from the polar
	// (+z) axis, phi is the azimuth.
	R     float64
	Phi   float64
	Theta float64

	// Coordinate time carried with the pose. Display-only; it never
	// affects projection.
	T float64

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	// Cached matrices (computed on demand)
	viewMatrix     geom.Mat4
	projMatrix     geom.Mat4
	viewProjMatrix geom.Mat4
	viewDirty      bool
	projDirty      bool
}

// Keep theta away from the poles so the view matrix's up hint stays
// independent of the forward direction.
const thetaEpsilon = 1e-3

// NewCamera creates a camera on the equatorial plane at radius r.
func NewCamera(r float64) *Camera {
	return &Camera{
		R:           r,
		Phi:         0,
		Theta:       math.Pi / 2,
		FOV:         math.Pi / 3, // 60 degrees
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetPose sets the Schwarzschild pose of the eye.
func (c *Camera) SetPose(r, phi, theta float64) {
	c.R = r
	c.Phi = phi
	c.Theta = clampTheta(theta)
	c.viewDirty = true
}

// Orbit rotates the eye around the hole by the given angle deltas.
func (c *Camera) Orbit(dPhi, dTheta float64) {
	c.Phi += dPhi
	c.Theta = clampTheta(c.Theta + dTheta)
	c.viewDirty = true
}

// Dolly moves the eye radially by dr, keeping it outside the near plane.
func (c *Camera) Dolly(dr float64) {
	c.R += dr
	if c.R < c.Near*2 {
		c.R = c.Near * 2
	}
	c.viewDirty = true
}

// AdvanceTime advances the coordinate time carried with the pose.
func (c *Camera) AdvanceTime(dt float64) {
	c.T += dt
}

// Position returns the eye as a rectangular spacetime vector, derived from
// the Schwarzschild pose.
func (c *Camera) Position() spacetime.Vec4 {
	return spacetime.RectFromSchwarzschild(c.R, c.Phi, c.Theta, c.T)
}

// Eye returns the spatial eye point for the render pipeline.
func (c *Camera) Eye() geom.Vec3 {
	return geom.Spatial(c.Position())
}

// SetFOV sets the vertical field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() geom.Mat4 {
	if c.viewDirty {
		c.computeViewMatrix()
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() geom.Mat4 {
	if c.projDirty {
		c.computeProjectionMatrix()
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() geom.Mat4 {
	if c.viewDirty || c.projDirty {
		_ = c.ViewMatrix()
		_ = c.ProjectionMatrix()
		c.viewProjMatrix = c.projMatrix.Mul(c.viewMatrix)
	}
	return c.viewProjMatrix
}

func (c *Camera) computeViewMatrix() {
	// The camera always looks at the hole. The polar axis serves as the up
	// hint; pose setters keep theta off the poles so the hint never
	// collapses onto the view direction.
	c.viewMatrix = geom.LookAt(c.Eye(), geom.V3(0, 0, 0), geom.V3(0, 0, 1))
}

func (c *Camera) computeProjectionMatrix() {
	c.projMatrix = geom.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos geom.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clip, w := c.ViewProjectionMatrix().ProjectPoint(worldPos)

	// Behind the camera
	if w <= 0 {
		return 0, 0, 0, false
	}

	// Perspective divide to NDC (-1 to 1)
	ndc := clip.Scale(1 / w)

	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	// Convert to screen coordinates
	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	depth = ndc.Z

	return x, y, depth, true
}

func clampTheta(theta float64) float64 {
	if theta < thetaEpsilon {
		return thetaEpsilon
	}
	if theta > math.Pi-thetaEpsilon {
		return math.Pi - thetaEpsilon
	}
	return theta
}
