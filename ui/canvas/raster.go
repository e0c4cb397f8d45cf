// Package canvas provides the software drawing surface the selection overlay
// paints into before handing the frame to Tk as a photo image.
package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/soocke/rect-select-go/ui/images"
)

// Raster is an in-memory RGBA canvas. Not safe for concurrent use.
type Raster struct {
	img *image.RGBA

	// last scaled source, reused while the image and target size are unchanged
	src    image.Image
	scaled *image.RGBA
}

// New returns a canvas of w x h (at least 1x1).
func New(w, h int) *Raster {
	r := &Raster{}
	r.Resize(w, h)
	return r
}

// Resize reallocates the backing image when the size changes.
func (r *Raster) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if r.img != nil && r.img.Rect.Dx() == w && r.img.Rect.Dy() == h {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Size returns the canvas dimensions.
func (r *Raster) Size() (w, h int) { return r.img.Rect.Dx(), r.img.Rect.Dy() }

// Image exposes the backing image. It is overwritten by subsequent draws.
func (r *Raster) Image() *image.RGBA { return r.img }

// PNG encodes the current frame.
func (r *Raster) PNG() []byte { return images.EncodePNG(r.img) }

func (r *Raster) FillRect(rect image.Rectangle, c color.Color) {
	draw.Draw(r.img, rect.Intersect(r.img.Rect), image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawImage scales img to w x h and composites it at the origin.
func (r *Raster) DrawImage(img image.Image, w, h int) {
	if img == nil {
		return
	}
	if r.scaled == nil || r.src != img || r.scaled.Rect.Dx() != w || r.scaled.Rect.Dy() != h {
		r.src = img
		r.scaled = images.Scale(img, w, h)
	}
	draw.Draw(r.img, r.scaled.Rect, r.scaled, image.Point{}, draw.Over)
}

// StrokeDashedRect outlines rect clockwise from its top-left corner. A unit
// of path at distance s is painted when (s+phase) mod 2*dash < dash. The pen
// is a lineWidth square centred on the path.
func (r *Raster) StrokeDashedRect(rect image.Rectangle, dash, phase, lineWidth int, c color.Color) {
	rect = rect.Canon()
	w, h := rect.Dx(), rect.Dy()
	if w == 0 && h == 0 {
		return
	}
	dash = max(dash, 1)
	lineWidth = max(lineWidth, 1)
	period := 2 * dash
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	for s := 0; s < 2*(w+h); s++ {
		if mod(s+phase, period) >= dash {
			continue
		}
		p := perimeterPoint(rect, s)
		r.pen(p, lineWidth, rgba)
	}
}

func (r *Raster) pen(p image.Point, lineWidth int, c color.RGBA) {
	tl := p.Sub(image.Pt(lineWidth/2, lineWidth/2))
	box := image.Rectangle{Min: tl, Max: tl.Add(image.Pt(lineWidth, lineWidth))}.Intersect(r.img.Rect)
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			r.img.SetRGBA(x, y, c)
		}
	}
}

// perimeterPoint returns the point at distance s along the clockwise outline.
func perimeterPoint(rect image.Rectangle, s int) image.Point {
	w, h := rect.Dx(), rect.Dy()
	x0, y0, x1, y1 := rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y
	switch {
	case s < w:
		return image.Pt(x0+s, y0)
	case s < w+h:
		return image.Pt(x1, y0+s-w)
	case s < 2*w+h:
		return image.Pt(x1-(s-w-h), y1)
	default:
		return image.Pt(x0, y1-(s-2*w-h))
	}
}

func mod(a, m int) int { return ((a % m) + m) % m }
