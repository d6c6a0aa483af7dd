package scene

import (
	"math"
	"testing"

	"github.com/polarwander/schwarzviz/pkg/geom"
)

func radius(p geom.Vec3) float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

func TestHorizonPointsLieOnTheSphere(t *testing.T) {
	const rs = 2.0
	ls := Horizon(rs, 5, 8)

	if len(ls.Polylines) != 5+8 {
		t.Fatalf("polyline count = %d, want %d", len(ls.Polylines), 5+8)
	}

	for _, poly := range ls.Polylines {
		for _, p := range poly {
			if math.Abs(radius(p)-rs) > 1e-9*rs {
				t.Fatalf("horizon point %v at radius %v, want %v", p, radius(p), rs)
			}
		}
	}
}

func TestHorizonMeridiansSpanPoleToPole(t *testing.T) {
	const rs = 3.0
	ls := Horizon(rs, 1, 4)

	// Meridians follow the latitude rings in the set.
	for _, poly := range ls.Polylines[1:] {
		first, last := poly[0], poly[len(poly)-1]
		if math.Abs(first.Z-rs) > 1e-9 {
			t.Errorf("meridian starts at z = %v, want %v (north pole)", first.Z, rs)
		}
		if math.Abs(last.Z+rs) > 1e-9 {
			t.Errorf("meridian ends at z = %v, want %v (south pole)", last.Z, -rs)
		}
	}
}

func TestPhotonSphereIsEquatorialAtOnePointFiveRs(t *testing.T) {
	const rs = 2.0
	ls := PhotonSphere(rs, 16)

	if len(ls.Polylines) != 1 || !ls.Closed {
		t.Fatalf("photon sphere should be a single closed ring")
	}

	for _, p := range ls.Polylines[0] {
		if math.Abs(p.Z) > 1e-9 {
			t.Errorf("photon ring point off the equator: z = %v", p.Z)
		}
		if math.Abs(radius(p)-1.5*rs) > 1e-9 {
			t.Errorf("photon ring radius = %v, want %v", radius(p), 1.5*rs)
		}
	}
}

func TestAccretionDiskRingRadii(t *testing.T) {
	const (
		rs    = 2.0
		inner = 3.0
		outer = 6.0
	)
	ls := AccretionDisk(rs, inner, outer, 4, 12)

	if len(ls.Polylines) != 4 {
		t.Fatalf("ring count = %d, want 4", len(ls.Polylines))
	}

	// First ring at inner*rs, last at outer*rs, all equatorial.
	for i, poly := range ls.Polylines {
		r := radius(poly[0])
		if r < inner*rs-1e-9 || r > outer*rs+1e-9 {
			t.Errorf("ring %d radius %v outside [%v, %v]", i, r, inner*rs, outer*rs)
		}
		for _, p := range poly {
			if math.Abs(p.Z) > 1e-9 {
				t.Errorf("disk point off the equator: z = %v", p.Z)
			}
		}
	}

	if got := radius(ls.Polylines[0][0]); math.Abs(got-inner*rs) > 1e-9 {
		t.Errorf("innermost ring radius = %v, want %v", got, inner*rs)
	}
	if got := radius(ls.Polylines[3][0]); math.Abs(got-outer*rs) > 1e-9 {
		t.Errorf("outermost ring radius = %v, want %v", got, outer*rs)
	}
}

func TestStarfieldDeterministicAndOnSphere(t *testing.T) {
	const r = 500.0
	a := Starfield(100, r, 42)
	b := Starfield(100, r, 42)

	if len(a.Points) != 100 {
		t.Fatalf("star count = %d, want 100", len(a.Points))
	}

	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatal("same seed produced different skies")
		}
		if got := radius(a.Points[i]); math.Abs(got-r) > 1e-6 {
			t.Errorf("star %d at radius %v, want %v", i, got, r)
		}
	}

	c := Starfield(100, r, 7)
	same := true
	for i := range c.Points {
		if c.Points[i] != a.Points[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical skies")
	}
}

func TestSceneDrawOrder(t *testing.T) {
	s := NewScene()
	s.AddLines(PhotonSphere(2, 8))
	s.AddPoints(Starfield(10, 100, 1))

	if len(s.lines) != 1 || len(s.points) != 1 {
		t.Errorf("scene holds %d line sets and %d point sets, want 1 and 1", len(s.lines), len(s.points))
	}
}

func TestLoadOverlayGLBMissingFile(t *testing.T) {
	if _, err := LoadOverlayGLB("/nonexistent/model.glb", 1); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestOverlayEdgeDeduplication(t *testing.T) {
	// Two triangles sharing an edge: 6 directed half-edges, 5 unique.
	o := &Overlay{}
	seen := make(map[[2]int]struct{})
	for _, tri := range [][3]int{{0, 1, 2}, {2, 1, 3}} {
		o.addEdge(tri[0], tri[1], seen)
		o.addEdge(tri[1], tri[2], seen)
		o.addEdge(tri[2], tri[0], seen)
	}

	if len(o.Edges) != 5 {
		t.Errorf("edge count = %d, want 5", len(o.Edges))
	}
}

func TestOverlayFitScalesToSize(t *testing.T) {
	o := &Overlay{
		Vertices: []geom.Vec3{
			geom.V3(10, 0, 0),
			geom.V3(14, 2, 0),
			geom.V3(12, 1, 1),
		},
	}
	o.fit(2)

	bmin, bmax := o.Vertices[0], o.Vertices[0]
	for _, v := range o.Vertices[1:] {
		bmin = bmin.Min(v)
		bmax = bmax.Max(v)
	}

	dim := bmax.Sub(bmin)
	maxDim := math.Max(dim.X, math.Max(dim.Y, dim.Z))
	if math.Abs(maxDim-2) > 1e-9 {
		t.Errorf("longest dimension = %v, want 2", maxDim)
	}

	center := bmin.Add(bmax).Scale(0.5)
	if center.Len() > 1e-9 {
		t.Errorf("center = %v, want origin", center)
	}
}
