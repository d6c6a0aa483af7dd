package render

import (
	"github.com/polarwander/schwarzviz/pkg/geom"
)

// Wireframe draws 3D lines and points through an orbital camera.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// DrawLine3D draws a line in 3D space.
func (w *Wireframe) DrawLine3D(p1, p2 geom.Vec3, color Color) {
	// Project both endpoints
	x1, y1, _, vis1 := w.camera.WorldToScreen(p1, w.fb.Width, w.fb.Height)
	x2, y2, _, vis2 := w.camera.WorldToScreen(p2, w.fb.Width, w.fb.Height)

	// Simple clipping: only draw if at least one point is visible
	// (proper line clipping would be more complex)
	if !vis1 && !vis2 {
		return
	}

	// Draw the line
	w.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), color)
}

// DrawPoint3D draws a single pixel at a 3D position.
func (w *Wireframe) DrawPoint3D(pos geom.Vec3, color Color) {
	x, y, _, vis := w.camera.WorldToScreen(pos, w.fb.Width, w.fb.Height)
	if !vis {
		return
	}
	w.fb.SetPixel(int(x), int(y), color)
}

// DrawPolyline draws line segments between consecutive points. If closed is
// true the last point connects back to the first.
func (w *Wireframe) DrawPolyline(points []geom.Vec3, closed bool, color Color) {
	if len(points) < 2 {
		return
	}
	for i := 1; i < len(points); i++ {
		w.DrawLine3D(points[i-1], points[i], color)
	}
	if closed {
		w.DrawLine3D(points[len(points)-1], points[0], color)
	}
}
