package imagepkg

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// LoadOverlay reads an overlay from a local path or URL and converts it to
// NRGBA so its alpha channel can act as the paste mask.
func LoadOverlay(ref string) (*image.NRGBA, error) {
	var (
		img image.Image
		err error
	)
	if IsRemote(ref) {
		img, err = DownloadImage(ref)
	} else {
		img, err = OpenImage(ref)
	}
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// ScaledHeight is the height that keeps the aspect ratio of a srcW x srcH
// image scaled to width w.
func ScaledHeight(srcW, srcH, w int) int {
	if srcW <= 0 {
		return 0
	}
	h := int(math.Round(float64(srcH) * float64(w) / float64(srcW)))
	if h < 1 {
		h = 1
	}
	return h
}

func ScaleToWidth(img image.Image, w int) *image.NRGBA {
	b := img.Bounds()
	return imaging.Resize(img, w, ScaledHeight(b.Dx(), b.Dy(), w), imaging.Lanczos)
}

// DrawImageOverlay scales overlay to width w, anchors it inside dst and
// alpha-composites it. dst is left untouched; the composited copy is returned.
func DrawImageOverlay(dst image.Image, overlay image.Image, w int, a Anchor, offX, offY int) (*image.NRGBA, Placement, error) {
	scaled := ScaleToWidth(overlay, w)
	sw, sh := scaled.Bounds().Dx(), scaled.Bounds().Dy()
	b := dst.Bounds()
	x, y, err := Resolve(a, b.Dx(), b.Dy(), sw, sh, offX, offY)
	if err != nil {
		return nil, Placement{}, err
	}
	out := imaging.Overlay(dst, scaled, image.Pt(x, y), 1.0)
	return out, Placement{W: sw, H: sh, X: x, Y: y}, nil
}
