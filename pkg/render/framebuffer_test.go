package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferSetGetPixel(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	red := RGB(255, 0, 0)

	fb.SetPixel(3, 4, red)
	if got := fb.GetPixel(3, 4); got != red {
		t.Errorf("GetPixel(3,4) = %v, want %v", got, red)
	}

	// Out-of-bounds writes are dropped, reads return zero
	fb.SetPixel(-1, 0, red)
	fb.SetPixel(10, 0, red)
	if got := fb.GetPixel(-1, 0); got != (color.RGBA{}) {
		t.Errorf("out-of-bounds GetPixel = %v, want zero", got)
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	bg := RGB(10, 20, 30)
	fb.Clear(bg)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := fb.GetPixel(x, y); got != bg {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, bg)
			}
		}
	}
}

func TestDrawLineCoversEndpoints(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	c := RGB(0, 255, 0)

	fb.DrawLine(2, 3, 15, 11, c)

	if fb.GetPixel(2, 3) != c {
		t.Error("start point not set")
	}
	if fb.GetPixel(15, 11) != c {
		t.Error("end point not set")
	}
}

func TestDrawLineSinglePoint(t *testing.T) {
	fb := NewFramebuffer(5, 5)
	c := RGB(1, 2, 3)

	fb.DrawLine(2, 2, 2, 2, c)
	if fb.GetPixel(2, 2) != c {
		t.Error("degenerate line did not set its pixel")
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Clear(RGB(0, 0, 0))
	fb.SetPixel(1, 1, RGB(255, 255, 255))

	path := filepath.Join(t.TempDir(), "snapshot.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat snapshot: %v", err)
	}
	if info.Size() == 0 {
		t.Error("snapshot file is empty")
	}
}
