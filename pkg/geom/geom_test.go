package geom

import (
	"math"
	"testing"

	"github.com/polarwander/schwarzviz/pkg/spacetime"
)

func TestSpatialDropsTimeComponent(t *testing.T) {
	v := spacetime.Rect(1, 2, 3, 99)
	p := Spatial(v)
	if p != (Vec3{1, 2, 3}) {
		t.Errorf("Spatial = %v, want {1 2 3}", p)
	}
}

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec3{-3, -3, -3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Cross(b); got != (Vec3{-3, 6, -3}) {
		t.Errorf("Cross = %v, want {-3 6 -3}", got)
	}
	if got := V3(3, 4, 0).Len(); math.Abs(got-5) > 1e-9 {
		t.Errorf("Len = %v, want 5", got)
	}
}

func TestNormalize(t *testing.T) {
	n := V3(0, 3, 4).Normalize()
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Errorf("normalized length = %v, want 1", n.Len())
	}
	if math.Abs(n.Y-0.6) > 1e-9 || math.Abs(n.Z-0.8) > 1e-9 {
		t.Errorf("normalized = %v, want {0 0.6 0.8}", n)
	}

	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector normalize = %v, want zero", got)
	}
}

func TestTranslateTransformPoint(t *testing.T) {
	m := Translate(V3(10, 20, 30))
	got := m.TransformPoint(V3(1, 2, 3))
	if got != (Vec3{11, 22, 33}) {
		t.Errorf("translated point = %v, want {11 22 33}", got)
	}
}

func TestScaleThenTranslateComposition(t *testing.T) {
	// Mul composes right-to-left: scale first, then translate.
	m := Translate(V3(1, 0, 0)).Mul(ScaleUniform(2))
	got := m.TransformPoint(V3(1, 1, 1))
	if got != (Vec3{3, 2, 2}) {
		t.Errorf("composed point = %v, want {3 2 2}", got)
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	m := RotateY(math.Pi / 2)
	got := m.TransformPoint(V3(1, 0, 0))
	want := Vec3{0, 0, -1}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 || math.Abs(got.Z-want.Z) > 1e-9 {
		t.Errorf("rotated point = %v, want %v", got, want)
	}
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	eye := V3(0, 0, 5)
	view := LookAt(eye, V3(0, 0, 0), V3(0, 1, 0))

	got := view.TransformPoint(eye)
	if got.Len() > 1e-9 {
		t.Errorf("eye in view space = %v, want origin", got)
	}

	// The center should sit on the -Z axis in view space.
	center := view.TransformPoint(V3(0, 0, 0))
	if math.Abs(center.X) > 1e-9 || math.Abs(center.Y) > 1e-9 || center.Z >= 0 {
		t.Errorf("center in view space = %v, want on -Z axis", center)
	}
}

func TestProjectPointCenterOfView(t *testing.T) {
	proj := Perspective(math.Pi/3, 1, 0.1, 100)
	view := LookAt(V3(0, 0, 5), V3(0, 0, 0), V3(0, 1, 0))
	vp := proj.Mul(view)

	// A point straight ahead of the camera projects to NDC x=y=0.
	clip, w := vp.ProjectPoint(V3(0, 0, 0))
	if w <= 0 {
		t.Fatalf("w = %v, want positive for point in front of camera", w)
	}
	if math.Abs(clip.X/w) > 1e-9 || math.Abs(clip.Y/w) > 1e-9 {
		t.Errorf("NDC = (%v, %v), want (0, 0)", clip.X/w, clip.Y/w)
	}

	// A point behind the camera yields non-positive w.
	_, wBehind := vp.ProjectPoint(V3(0, 0, 10))
	if wBehind > 0 {
		t.Errorf("w = %v for point behind camera, want <= 0", wBehind)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkProjectPoint(b *testing.B) {
	vp := Perspective(math.Pi/3, 1.333, 0.1, 100).Mul(LookAt(V3(0, 0, 10), V3(0, 0, 0), V3(0, 1, 0)))
	p := V3(1, 2, 3)

	for b.Loop() {
		_, _ = vp.ProjectPoint(p)
	}
}
