package imagepkg

import (
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/youruser/overlay/internal/util"
)

const JPEGQuality = 92

// Flatten drops the alpha channel, keeping colour values as they are.
func Flatten(img image.Image) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.A = 0xff
		return c
	})
}

func EncodeJPEG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, Flatten(img), imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
}

// SaveJPEG writes img as a JPEG regardless of the extension of path.
func SaveJPEG(path string, img image.Image) error {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeJPEG(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
