package rectops

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/soocke/rect-select-go/domain/rect"
)

// Combine selects how a new rectangle mask merges with an existing one.
type Combine string

const (
	CombineReplace   Combine = "replace"
	CombineUnion     Combine = "union"
	CombineIntersect Combine = "intersect"
	CombineSubtract  Combine = "subtract"
	CombineMultiply  Combine = "multiply"
)

// MaxFeather bounds the feather radius in pixels.
const MaxFeather = 256

var (
	ErrUnknownCombine = errors.New("unknown combine mode")
	ErrInvalidSize    = errors.New("invalid size")
)

// ParseCombine maps a mode name onto a Combine. The empty string means replace.
func ParseCombine(s string) (Combine, error) {
	switch c := Combine(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CombineReplace, nil
	case CombineReplace, CombineUnion, CombineIntersect, CombineSubtract, CombineMultiply:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCombine, s)
	}
}

// MaskOptions tune Mask.
type MaskOptions struct {
	Feather  int
	Invert   bool
	Combine  Combine
	Existing *image.Gray // optional; resized to the mask size when it differs
}

// Mask builds a w x h mask that is white inside r (clamped) and black
// elsewhere, then applies feather, invert and the combine mode in that order.
func Mask(w, h int, r rect.Rect, opts MaskOptions) (*image.Gray, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("mask %dx%d: %w", w, h, ErrInvalidSize)
	}
	combine := opts.Combine
	if combine == "" {
		combine = CombineReplace
	}
	if _, err := ParseCombine(string(combine)); err != nil {
		return nil, err
	}
	m := image.NewGray(image.Rect(0, 0, w, h))
	fillGray(m, rect.Clamp(r, w, h).Image(), 0xff)
	m = feather(m, opts.Feather)
	if opts.Invert {
		for i, v := range m.Pix {
			m.Pix[i] = 0xff - v
		}
	}
	if opts.Existing == nil || combine == CombineReplace {
		return m, nil
	}
	em := fitGray(opts.Existing, w, h)
	for i, v := range m.Pix {
		m.Pix[i] = combinePixel(combine, em.Pix[i], v)
	}
	return m, nil
}

func combinePixel(c Combine, existing, v uint8) uint8 {
	switch c {
	case CombineUnion:
		return max(existing, v)
	case CombineIntersect:
		return min(existing, v)
	case CombineSubtract:
		if v > existing {
			return 0
		}
		return existing - v
	case CombineMultiply:
		return uint8(math.Round(float64(existing) * float64(v) / 0xff))
	default:
		return v
	}
}

func fillGray(m *image.Gray, r image.Rectangle, v uint8) {
	r = r.Intersect(m.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.Pix[m.PixOffset(r.Min.X, y):m.PixOffset(r.Max.X, y)]
		for i := range row {
			row[i] = v
		}
	}
}

// feather softens m with a Gaussian of sigma max(0.5, radius/2.5).
func feather(m *image.Gray, radius int) *image.Gray {
	radius = min(radius, MaxFeather)
	if radius < 1 {
		return m
	}
	sigma := math.Max(0.5, float64(radius)/2.5)
	blurred := imaging.Blur(m, sigma)
	out := image.NewGray(image.Rect(0, 0, m.Rect.Dx(), m.Rect.Dy()))
	for y := 0; y < out.Rect.Dy(); y++ {
		for x := 0; x < out.Rect.Dx(); x++ {
			out.Pix[y*out.Stride+x] = blurred.Pix[y*blurred.Stride+x*4]
		}
	}
	return out
}

// fitGray returns g at w x h with origin 0,0, resampling bilinearly when the
// sizes differ.
func fitGray(g *image.Gray, w, h int) *image.Gray {
	b := g.Bounds()
	if b.Dx() == w && b.Dy() == h && b.Min == (image.Point{}) {
		return g
	}
	out := image.NewGray(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(out, out.Rect, g, b, draw.Src, nil)
	return out
}
