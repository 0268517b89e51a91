package imagepkg

import (
	"image/color"
	"image/draw"
)

// Placement describes where an overlay ended up on the base image.
type Placement struct {
	W, H int
	X, Y int
}

// DrawText measures label, anchors it inside dst and draws it in place.
func DrawText(dst draw.Image, eng TextEngine, f *Font, label string, c color.Color, a Anchor, offX, offY int) (Placement, error) {
	w, h := eng.Measure(f, label)
	b := dst.Bounds()
	x, y, err := Resolve(a, b.Dx(), b.Dy(), w, h, offX, offY)
	if err != nil {
		return Placement{}, err
	}
	eng.Draw(dst, f, label, c, b.Min.X+x, b.Min.Y+y)
	return Placement{W: w, H: h, X: x, Y: y}, nil
}
