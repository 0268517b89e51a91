package imagepkg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
)

var ErrImageTooLarge = errors.New("image too large")

// CheckPixels reads only the header of an encoded image and rejects it when
// width*height exceeds maxPixels.
func CheckPixels(data []byte, maxPixels int) (image.Config, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return cfg, fmt.Errorf("decode image header: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return cfg, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels)
	}
	return cfg, nil
}

// CheckScaled rejects an overlay of srcW x srcH whose scaled size at width w
// would exceed maxPixels.
func CheckScaled(srcW, srcH, w, maxPixels int) error {
	h := ScaledHeight(srcW, srcH, w)
	if int64(w)*int64(h) > int64(maxPixels) {
		return fmt.Errorf("%w: overlay scaled to %dx%d exceeds %d pixels", ErrImageTooLarge, w, h, maxPixels)
	}
	return nil
}
