package rect

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

// Rect is an axis-aligned rectangle in a single coordinate space
// (image pixels or display canvas pixels). A Rect with W or H <= 0 means
// "no selection".
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Image converts r to an image.Rectangle spanning [X, X+W) x [Y, Y+H).
func (r Rect) Image() image.Rectangle { return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H) }

// FromImage converts an image.Rectangle into a Rect.
func FromImage(ir image.Rectangle) Rect {
	ir = ir.Canon()
	return Rect{X: ir.Min.X, Y: ir.Min.Y, W: ir.Dx(), H: ir.Dy()}
}

func (r Rect) String() string {
	return fmt.Sprintf("x=%d, y=%d, w=%d, h=%d", r.X, r.Y, r.W, r.H)
}

var ErrSyntax = errors.New("expected x,y,w,h")

// Parse reads "x,y,w,h" or the "x=.., y=.., w=.., h=.." form String prints.
func Parse(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	var v [4]int
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if k, val, ok := strings.Cut(p, "="); ok {
			if strings.TrimSpace(k) != [4]string{"x", "y", "w", "h"}[i] {
				return Rect{}, fmt.Errorf("%w: %q", ErrSyntax, s)
			}
			p = strings.TrimSpace(val)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Rect{}, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		v[i] = n
	}
	return Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

// Normalize turns two arbitrary drag endpoints into a rectangle whose origin is
// the top-left corner. Equal coordinates on either axis yield an Empty rect.
func Normalize(a, b image.Point) Rect {
	return Rect{
		X: min(a.X, b.X),
		Y: min(a.Y, b.Y),
		W: absInt(b.X - a.X),
		H: absInt(b.Y - a.Y),
	}
}

// Clamp constrains r to a spaceW x spaceH space. Position is clamped first,
// then size into [1, space], then size is shrunk against the clamped position.
// The result always satisfies x >= 0, y >= 0, w >= 1, h >= 1, x+w <= spaceW and
// y+h <= spaceH. Spaces smaller than 1 are treated as 1.
func Clamp(r Rect, spaceW, spaceH int) Rect {
	spaceW = max(spaceW, 1)
	spaceH = max(spaceH, 1)
	// the last addressable column/row; a 1px rect starting at spaceW would overflow
	x := clampInt(r.X, 0, spaceW-1)
	y := clampInt(r.Y, 0, spaceH-1)
	w := clampInt(r.W, 1, spaceW)
	h := clampInt(r.H, 1, spaceH)
	if x+w > spaceW {
		w = max(1, spaceW-x)
	}
	if y+h > spaceH {
		h = max(1, spaceH-y)
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// ToDisplay scales r from image space to canvas space using independent X/Y
// ratios and rounds each coordinate to the nearest integer. The result is not
// clamped.
func ToDisplay(r Rect, imageW, imageH, canvasW, canvasH int) Rect {
	if imageW <= 0 || imageH <= 0 {
		return Rect{}
	}
	sx := float64(canvasW) / float64(imageW)
	sy := float64(canvasH) / float64(imageH)
	return scale(r, sx, sy)
}

// ToImage maps r from canvas space back to image space and clamps the result to
// the image. Scaling and clamping always compose in that order.
func ToImage(r Rect, imageW, imageH, canvasW, canvasH int) Rect {
	if canvasW <= 0 || canvasH <= 0 {
		return Clamp(Rect{}, imageW, imageH)
	}
	sx := float64(imageW) / float64(canvasW)
	sy := float64(imageH) / float64(canvasH)
	return Clamp(scale(r, sx, sy), imageW, imageH)
}

func scale(r Rect, sx, sy float64) Rect {
	return Rect{
		X: Round(float64(r.X) * sx),
		Y: Round(float64(r.Y) * sy),
		W: Round(float64(r.W) * sx),
		H: Round(float64(r.H) * sy),
	}
}

// Round rounds f to the nearest int. Values beyond the int32 range saturate
// so oversized inputs still clamp in the right direction; NaN rounds to 0.
func Round(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Round(max(min(f, math.MaxInt32), math.MinInt32)))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
