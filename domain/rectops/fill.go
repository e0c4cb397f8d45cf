package rectops

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/soocke/rect-select-go/domain/rect"
)

// FillMode selects whether Fill paints the whole rectangle or only its border.
type FillMode string

const (
	FillSolid   FillMode = "fill"
	FillOutline FillMode = "outline"
)

const MaxThickness = 1024

var ErrUnknownFillMode = errors.New("unknown fill mode")

// ParseFillMode maps a mode name onto a FillMode. The empty string means fill.
func ParseFillMode(s string) (FillMode, error) {
	switch m := FillMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return FillSolid, nil
	case FillSolid, FillOutline:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFillMode, s)
	}
}

var ErrInvalidColor = errors.New("invalid color")

// ParseColor reads "#rgb", "#rrggbb" or "#rrggbbaa"; the leading # is optional.
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FillOptions tune Fill.
type FillOptions struct {
	Color     color.RGBA
	Opacity   float64
	Mode      FillMode
	Thickness int
	Feather   int
}

// DefaultFillOptions paints an opaque red fill.
func DefaultFillOptions() FillOptions {
	return FillOptions{
		Color:     color.RGBA{R: 0xff, A: 0xff},
		Opacity:   1,
		Mode:      FillSolid,
		Thickness: 4,
	}
}

func (o *FillOptions) validate() error {
	if o.Mode == "" {
		o.Mode = FillSolid
	}
	if _, err := ParseFillMode(string(o.Mode)); err != nil {
		return err
	}
	if math.IsNaN(o.Opacity) {
		o.Opacity = 1
	}
	o.Opacity = math.Min(math.Max(o.Opacity, 0), 1)
	o.Thickness = min(max(o.Thickness, 1), MaxThickness)
	o.Feather = min(max(o.Feather, 0), MaxFeather)
	return nil
}

// Fill blends opts.Color over r (clamped) in a copy of img. In outline mode
// only a border of opts.Thickness pixels is painted.
func Fill(img image.Image, r rect.Rect, opts FillOptions) (*image.NRGBA, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	out := imaging.Clone(img)
	w, h := out.Rect.Dx(), out.Rect.Dy()
	if w == 0 || h == 0 {
		return out, nil
	}
	used := rect.Clamp(r, w, h)

	alpha := image.NewGray(image.Rect(0, 0, w, h))
	fillGray(alpha, used.Image(), 0xff)
	if opts.Mode == FillOutline {
		t := opts.Thickness
		iw, ih := used.W-2*t, used.H-2*t
		if iw > 0 && ih > 0 {
			fillGray(alpha, image.Rect(used.X+t, used.Y+t, used.X+t+iw, used.Y+t+ih), 0)
		}
	}
	alpha = feather(alpha, opts.Feather)

	c := [4]float64{float64(opts.Color.R), float64(opts.Color.G), float64(opts.Color.B), 0xff}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := float64(alpha.Pix[y*alpha.Stride+x]) / 0xff * opts.Opacity
			if a == 0 {
				continue
			}
			px := out.Pix[y*out.Stride+x*4 : y*out.Stride+x*4+4]
			for i := range px {
				px[i] = uint8(math.Round(a*c[i] + (1-a)*float64(px[i])))
			}
		}
	}
	return out, nil
}
