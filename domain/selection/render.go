package selection

import (
	"image"

	"github.com/soocke/rect-select-go/domain/rect"
)

// AntsPhases returns the dash phases of the light and dark strokes for the
// given ants counter. The dark stroke is offset by one dash so the two
// interleave.
func AntsPhases(ants int) (light, dark int) {
	return mod(-ants, AntsPeriod), mod(AntsDash-ants, AntsPeriod)
}

func mod(a, m int) int {
	return ((a % m) + m) % m
}

// paintFrame draws one frame: background, the image scaled to the canvas and,
// when a rectangle is selected, the two interleaved dashed outlines.
func paintFrame(c Canvas, img image.Image, fit rect.Fit, sel rect.Rect, ants int) {
	c.Resize(fit.CanvasW, fit.CanvasH)
	c.FillRect(image.Rect(0, 0, fit.CanvasW, fit.CanvasH), ColorBackground)
	if img != nil {
		c.DrawImage(img, fit.CanvasW, fit.CanvasH)
	}
	if sel.Empty() {
		return
	}
	light, dark := AntsPhases(ants)
	r := sel.Image()
	c.StrokeDashedRect(r, AntsDash, light, AntsLineWidth, ColorAntsLight)
	c.StrokeDashedRect(r, AntsDash, dark, AntsLineWidth, ColorAntsDark)
}
