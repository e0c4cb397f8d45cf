package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/soocke/rect-select-go/domain/selection"
	"github.com/soocke/rect-select-go/ui/images"
)

var _ selection.Canvas = (*Raster)(nil)

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	black = color.RGBA{0, 0, 0, 0xff}
	grey  = color.RGBA{0x33, 0x33, 0x33, 0xff}
)

func TestRaster_ResizeAndFill(t *testing.T) {
	r := New(0, -3)
	if w, h := r.Size(); w != 1 || h != 1 {
		t.Fatalf("expected 1x1, got %dx%d", w, h)
	}
	r.Resize(20, 10)
	before := r.Image()
	r.Resize(20, 10)
	if r.Image() != before {
		t.Fatalf("same-size resize must keep the buffer")
	}
	r.FillRect(image.Rect(-5, -5, 100, 100), grey)
	if got := r.Image().RGBAAt(19, 9); got != grey {
		t.Fatalf("fill not applied: %v", got)
	}
}

func TestRaster_DashPattern(t *testing.T) {
	r := New(60, 40)
	rect := image.Rect(10, 10, 50, 30)
	r.StrokeDashedRect(rect, 8, 0, 1, white)
	img := r.Image()
	for _, c := range []struct {
		x, y int
		on   bool
	}{
		{10, 10, true},
		{17, 10, true},
		{18, 10, false},
		{26, 10, true},
		{50, 10, false}, // s=40, corner
		{50, 18, true},  // s=48
	} {
		if got := img.RGBAAt(c.x, c.y) == white; got != c.on {
			t.Fatalf("pixel %d,%d painted=%v want %v", c.x, c.y, got, c.on)
		}
	}
}

func TestRaster_InterleavedStrokesCoverOutline(t *testing.T) {
	r := New(60, 40)
	rect := image.Rect(10, 10, 50, 30)
	light, dark := selection.AntsPhases(5)
	r.StrokeDashedRect(rect, 8, light, 1, white)
	r.StrokeDashedRect(rect, 8, dark, 1, black)
	img := r.Image()
	for x := 10; x < 50; x++ {
		c := img.RGBAAt(x, 10)
		if c != white && c != black {
			t.Fatalf("gap in outline at x=%d: %v", x, c)
		}
	}
	if img.RGBAAt(30, 20) != (color.RGBA{}) {
		t.Fatalf("interior must stay untouched")
	}
}

func TestRaster_LineWidthCentred(t *testing.T) {
	r := New(20, 20)
	r.StrokeDashedRect(image.Rect(5, 5, 15, 15), 100, 0, 2, white)
	img := r.Image()
	if img.RGBAAt(4, 4) != white || img.RGBAAt(5, 5) != white || img.RGBAAt(6, 6) == white {
		t.Fatalf("2px pen should cover one pixel either side of the path")
	}
}

func TestPerimeterPoint_Corners(t *testing.T) {
	rect := image.Rect(0, 0, 4, 2)
	cases := map[int]image.Point{0: {0, 0}, 4: {4, 0}, 6: {4, 2}, 10: {0, 2}, 11: {0, 1}}
	for s, want := range cases {
		if got := perimeterPoint(rect, s); got != want {
			t.Fatalf("s=%d: got %v want %v", s, got, want)
		}
	}
}

func TestRaster_DrawImageCachesScaled(t *testing.T) {
	src := images.Placeholder(100, 50, white)
	r := New(50, 25)
	r.DrawImage(src, 50, 25)
	first := r.scaled
	r.DrawImage(src, 50, 25)
	if r.scaled != first {
		t.Fatalf("scaled image should be reused for the same source and size")
	}
	r.DrawImage(src, 40, 20)
	if r.scaled == first {
		t.Fatalf("size change must rescale")
	}
	if len(r.PNG()) == 0 {
		t.Fatalf("expected encoded frame")
	}
}
