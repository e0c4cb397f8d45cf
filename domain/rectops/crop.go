// Package rectops applies a selected rectangle to images: cropping, building
// masks and painting fills or outlines.
package rectops

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"

	"github.com/soocke/rect-select-go/domain/rect"
)

var ErrNilImage = errors.New("nil image")

// Crop cuts r out of img. The rectangle is clamped first so the top-left
// corner lies inside the image and the result is always at least 1x1.
// Returns the cropped pixels and the rectangle actually used.
func Crop(img image.Image, r rect.Rect) (*image.NRGBA, rect.Rect, error) {
	if img == nil {
		return nil, rect.Rect{}, ErrNilImage
	}
	b := img.Bounds()
	used := rect.Clamp(r, b.Dx(), b.Dy())
	return imaging.Crop(img, used.Image().Add(b.Min)), used, nil
}

// WholeImage is the rectangle covering all of img, relative to its origin.
func WholeImage(img image.Image) rect.Rect {
	if img == nil {
		return rect.Rect{}
	}
	b := img.Bounds()
	return rect.FromImage(b.Sub(b.Min))
}
