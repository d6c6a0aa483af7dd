// Package scene builds the drawable geometry of the schwarzviz toolkit.
//
// Every builder generates its points in Schwarzschild coordinates around the
// hole at the origin and converts them to rectangular coordinates through
// pkg/spacetime before handing them to the renderer.
package scene

import (
	"math"
	"math/rand"

	"github.com/polarwander/schwarzviz/pkg/geom"
	"github.com/polarwander/schwarzviz/pkg/render"
	"github.com/polarwander/schwarzviz/pkg/spacetime"
)

// LineSet is a group of polylines drawn in one color.
type LineSet struct {
	Polylines [][]geom.Vec3
	Closed    bool // connect the last point of each polyline back to the first
	Color     render.Color
}

// PointSet is a group of points drawn in one color.
type PointSet struct {
	Points []geom.Vec3
	Color  render.Color
}

// Scene collects the geometry to draw each frame.
type Scene struct {
	lines  []LineSet
	points []PointSet
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// AddLines adds a line set to the scene.
func (s *Scene) AddLines(l LineSet) {
	s.lines = append(s.lines, l)
}

// AddPoints adds a point set to the scene.
func (s *Scene) AddPoints(p PointSet) {
	s.points = append(s.points, p)
}

// Draw renders the scene through a wireframe renderer.
func (s *Scene) Draw(w *render.Wireframe) {
	for _, ps := range s.points {
		for _, p := range ps.Points {
			w.DrawPoint3D(p, ps.Color)
		}
	}
	for _, ls := range s.lines {
		for _, poly := range ls.Polylines {
			w.DrawPolyline(poly, ls.Closed, ls.Color)
		}
	}
}

// ring samples a circle of constant (r, theta) at n azimuthal steps and
// returns the rectangular points.
func ring(r, theta float64, n int) []geom.Vec3 {
	points := make([]geom.Vec3, n)
	step := 2 * math.Pi / float64(n)
	for i := range n {
		p := spacetime.RectFromSchwarzschild(r, float64(i)*step, theta, 0)
		points[i] = geom.Spatial(p)
	}
	return points
}

// meridian samples a half great circle of constant (r, phi) from pole to
// pole at n polar steps.
func meridian(r, phi float64, n int) []geom.Vec3 {
	points := make([]geom.Vec3, n+1)
	step := math.Pi / float64(n)
	for i := range n + 1 {
		p := spacetime.Vec4{r, phi, float64(i) * step, 0}
		points[i] = geom.Spatial(p.SchwarzschildToRect())
	}
	return points
}

// Horizon builds the event-horizon wireframe sphere at radius rs: nLat
// latitude rings and nLon meridians.
func Horizon(rs float64, nLat, nLon int) LineSet {
	ls := LineSet{Closed: false, Color: render.ColorHorizon}

	// Latitude rings, excluding the degenerate poles.
	for i := 1; i <= nLat; i++ {
		theta := math.Pi * float64(i) / float64(nLat+1)
		ls.Polylines = append(ls.Polylines, closeLoop(ring(rs, theta, 32)))
	}

	// Meridians pole to pole.
	for j := range nLon {
		phi := 2 * math.Pi * float64(j) / float64(nLon)
		ls.Polylines = append(ls.Polylines, meridian(rs, phi, 24))
	}

	return ls
}

// PhotonSphere builds the unstable photon orbit: an equatorial circle at
// r = 1.5 rs.
func PhotonSphere(rs float64, n int) LineSet {
	return LineSet{
		Polylines: [][]geom.Vec3{ring(1.5*rs, math.Pi/2, n)},
		Closed:    true,
		Color:     render.ColorPhoton,
	}
}

// AccretionDisk builds nRings concentric equatorial circles between
// inner*rs and outer*rs, each sampled at nSeg azimuthal steps.
func AccretionDisk(rs, inner, outer float64, nRings, nSeg int) LineSet {
	ls := LineSet{Closed: true, Color: render.ColorDisk}
	for i := range nRings {
		frac := 0.0
		if nRings > 1 {
			frac = float64(i) / float64(nRings-1)
		}
		r := rs * (inner + (outer-inner)*frac)
		ls.Polylines = append(ls.Polylines, ring(r, math.Pi/2, nSeg))
	}
	return ls
}

// Starfield places n background stars on a sphere of radius r, uniformly
// distributed over the sphere. The same seed always yields the same sky.
func Starfield(n int, r float64, seed int64) PointSet {
	rng := rand.New(rand.NewSource(seed))

	// Build the stars in Schwarzschild coordinates, then convert the whole
	// buffer in place.
	stars := make([]spacetime.Vec4, n)
	for i := range stars {
		phi := 2 * math.Pi * rng.Float64()
		theta := math.Acos(2*rng.Float64() - 1) // uniform on the sphere
		stars[i] = spacetime.Vec4{r, phi, theta, 0}
	}
	for i := range stars {
		stars[i].ConvertSchwarzschildToRect()
	}

	ps := PointSet{Points: make([]geom.Vec3, n), Color: render.ColorStar}
	for i, s := range stars {
		ps.Points[i] = geom.Spatial(s)
	}
	return ps
}

// closeLoop appends the first point to the end so an open polyline renders
// as a closed ring.
func closeLoop(points []geom.Vec3) []geom.Vec3 {
	if len(points) == 0 {
		return points
	}
	return append(points, points[0])
}
