package rect

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func TestClamp_Table(t *testing.T) {
	cases := []struct {
		name           string
		in             Rect
		spaceW, spaceH int
		want           Rect
	}{
		{"inside", Rect{10, 10, 20, 20}, 100, 100, Rect{10, 10, 20, 20}},
		{"negative origin", Rect{-5, -7, 20, 20}, 100, 100, Rect{0, 0, 20, 20}},
		{"negative size", Rect{10, 10, -4, 0}, 100, 100, Rect{10, 10, 1, 1}},
		{"oversize", Rect{0, 0, 500, 500}, 100, 80, Rect{0, 0, 100, 80}},
		{"overflow right", Rect{90, 70, 50, 50}, 100, 80, Rect{90, 70, 10, 10}},
		{"position outside", Rect{150, 150, 10, 10}, 100, 80, Rect{99, 79, 1, 1}},
		{"degenerate space", Rect{3, 3, 3, 3}, 0, -1, Rect{0, 0, 1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Clamp(tc.in, tc.spaceW, tc.spaceH)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Clamp(%v, %d, %d) mismatch (-want +got):\n%s", tc.in, tc.spaceW, tc.spaceH, diff)
			}
		})
	}
}

func TestClamp_Invariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spaceW := rapid.IntRange(1, 5000).Draw(t, "spaceW")
		spaceH := rapid.IntRange(1, 5000).Draw(t, "spaceH")
		in := Rect{
			X: rapid.IntRange(-10000, 10000).Draw(t, "x"),
			Y: rapid.IntRange(-10000, 10000).Draw(t, "y"),
			W: rapid.IntRange(-10000, 10000).Draw(t, "w"),
			H: rapid.IntRange(-10000, 10000).Draw(t, "h"),
		}
		r := Clamp(in, spaceW, spaceH)
		if r.X < 0 || r.Y < 0 || r.W < 1 || r.H < 1 {
			t.Fatalf("Clamp(%v) = %v violates lower bounds", in, r)
		}
		if r.X+r.W > spaceW || r.Y+r.H > spaceH {
			t.Fatalf("Clamp(%v) = %v exceeds space %dx%d", in, r, spaceW, spaceH)
		}
	})
}

func TestClamp_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spaceW := rapid.IntRange(-3, 4000).Draw(t, "spaceW")
		spaceH := rapid.IntRange(-3, 4000).Draw(t, "spaceH")
		in := Rect{
			X: rapid.Int().Draw(t, "x") % 100000,
			Y: rapid.Int().Draw(t, "y") % 100000,
			W: rapid.Int().Draw(t, "w") % 100000,
			H: rapid.Int().Draw(t, "h") % 100000,
		}
		once := Clamp(in, spaceW, spaceH)
		twice := Clamp(once, spaceW, spaceH)
		if once != twice {
			t.Fatalf("not idempotent: once=%v twice=%v", once, twice)
		}
	})
}

// Canvas sizes are drawn so each axis scale stays in [0.5, 1], which is the
// range where rounding error is bounded by one image pixel.
func TestRoundTrip_WithinOnePixel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		imageW := rapid.IntRange(2, 4000).Draw(t, "imageW")
		imageH := rapid.IntRange(2, 4000).Draw(t, "imageH")
		canvasW := rapid.IntRange((imageW+1)/2, imageW).Draw(t, "canvasW")
		canvasH := rapid.IntRange((imageH+1)/2, imageH).Draw(t, "canvasH")
		x := rapid.IntRange(0, imageW-1).Draw(t, "x")
		y := rapid.IntRange(0, imageH-1).Draw(t, "y")
		r := Rect{
			X: x,
			Y: y,
			W: rapid.IntRange(1, imageW-x).Draw(t, "w"),
			H: rapid.IntRange(1, imageH-y).Draw(t, "h"),
		}
		got := ToImage(ToDisplay(r, imageW, imageH, canvasW, canvasH), imageW, imageH, canvasW, canvasH)
		for _, d := range []int{got.X - r.X, got.Y - r.Y, got.W - r.W, got.H - r.H} {
			if d < -1 || d > 1 {
				t.Fatalf("round trip of %v drifted to %v (canvas %dx%d, image %dx%d)", r, got, canvasW, canvasH, imageW, imageH)
			}
		}
	})
}

func TestNormalize(t *testing.T) {
	got := Normalize(image.Pt(50, 80), image.Pt(10, 20))
	if want := (Rect{10, 20, 40, 60}); got != want {
		t.Fatalf("Normalize = %v, want %v", got, want)
	}
	if r := Normalize(image.Pt(7, 7), image.Pt(7, 7)); !r.Empty() {
		t.Fatalf("equal endpoints should be empty, got %v", r)
	}
	if r := Normalize(image.Pt(7, 7), image.Pt(30, 7)); !r.Empty() {
		t.Fatalf("zero height should be empty, got %v", r)
	}
}

func TestToDisplay_DefaultSelection(t *testing.T) {
	// 1000x500 image shown at half scale with the default half-size selection.
	got := Clamp(ToDisplay(Rect{0, 0, 500, 250}, 1000, 500, 500, 250), 500, 250)
	if want := (Rect{0, 0, 250, 125}); got != want {
		t.Fatalf("display rect = %v, want %v", got, want)
	}
}

func TestToImage_ScalesThenClamps(t *testing.T) {
	got := ToImage(Rect{100, 100, 200, 100}, 1000, 500, 500, 250)
	if want := (Rect{200, 200, 400, 200}); got != want {
		t.Fatalf("image rect = %v, want %v", got, want)
	}
	// dragging past the canvas edge is clamped once mapped back
	got = ToImage(Rect{400, 200, 200, 100}, 1000, 500, 500, 250)
	if want := (Rect{800, 400, 200, 100}); got != want {
		t.Fatalf("edge rect = %v, want %v", got, want)
	}
}

func TestFitTo(t *testing.T) {
	f := FitTo(1000, 500, 500, 400)
	if f.CanvasW != 500 || f.CanvasH != 250 || f.Scale != 0.5 {
		t.Fatalf("unexpected fit %+v", f)
	}
	// never upscales
	f = FitTo(200, 100, 1600, 900)
	if f.Scale != 1 || f.CanvasW != 200 || f.CanvasH != 100 {
		t.Fatalf("expected identity fit, got %+v", f)
	}
	// minimum canvas edge
	f = FitTo(10000, 1, 100, 100)
	if f.CanvasH != 2 {
		t.Fatalf("expected min canvas height 2, got %+v", f)
	}
	if !FitTo(0, 10, 10, 10).Zero() {
		t.Fatalf("zero natural size should yield zero fit")
	}
}

func TestFromImage(t *testing.T) {
	r := FromImage(image.Rect(30, 40, 10, 20))
	if want := (Rect{10, 20, 20, 20}); r != want {
		t.Fatalf("FromImage = %v, want %v", r, want)
	}
	if r.Image() != image.Rect(10, 20, 30, 40) {
		t.Fatalf("Image() round trip failed: %v", r.Image())
	}
}

func TestRound_Saturates(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{2.5, 3},
		{-2.5, -3},
		{1e30, math.MaxInt32},
		{-1e30, math.MinInt32},
		{math.Inf(1), math.MaxInt32},
		{math.Inf(-1), math.MinInt32},
		{math.NaN(), 0},
	}
	for _, c := range cases {
		if got := Round(c.in); got != c.want {
			t.Errorf("Round(%v) = %d, want %d", c.in, got, c.want)
		}
	}
	if got := Clamp(Rect{W: Round(1e30), H: Round(1e30)}, 1000, 500); got != (Rect{0, 0, 1000, 500}) {
		t.Fatalf("oversized rect clamps to %v", got)
	}
}

func TestParse(t *testing.T) {
	for _, in := range []string{"1,2,30,40", " 1, 2 ,30,40 ", "x=1, y=2, w=30, h=40"} {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got != (Rect{1, 2, 30, 40}) {
			t.Fatalf("Parse(%q) = %v", in, got)
		}
	}
	r := Rect{5, 6, 7, 8}
	if got, err := Parse(r.String()); err != nil || got != r {
		t.Fatalf("Parse(String()) = %v, %v", got, err)
	}
	for _, in := range []string{"", "1,2,3", "1,2,3,x", "y=1, x=2, w=3, h=4"} {
		if _, err := Parse(in); !errors.Is(err, ErrSyntax) {
			t.Fatalf("Parse(%q) err = %v, want ErrSyntax", in, err)
		}
	}
}
