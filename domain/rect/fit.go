package rect

import "math"

// Fit is the result of fitting an image into the available viewport.
// Scale never exceeds 1: images are only ever shrunk for display.
type Fit struct {
	Scale   float64
	CanvasW int
	CanvasH int
}

// Zero reports whether no fit has been computed yet.
func (f Fit) Zero() bool { return f.CanvasW == 0 || f.CanvasH == 0 }

// minCanvas is the smallest canvas edge produced by FitTo.
const minCanvas = 2

// FitTo computes s = min(maxW/naturalW, maxH/naturalH, 1) and the resulting
// canvas dimensions floor(natural*s), never smaller than 2px per edge.
func FitTo(naturalW, naturalH int, maxW, maxH float64) Fit {
	if naturalW <= 0 || naturalH <= 0 {
		return Fit{}
	}
	s := math.Min(math.Min(maxW/float64(naturalW), maxH/float64(naturalH)), 1)
	if s <= 0 || math.IsNaN(s) {
		s = 1
	}
	return Fit{
		Scale:   s,
		CanvasW: max(minCanvas, int(math.Floor(float64(naturalW)*s))),
		CanvasH: max(minCanvas, int(math.Floor(float64(naturalH)*s))),
	}
}
