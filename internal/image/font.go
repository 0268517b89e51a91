package imagepkg

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

var ErrFontNotFound = errors.New("font not found")

// Font is a parsed TrueType/OpenType font with a face at a fixed size.
// It is not safe for concurrent use.
type Font struct {
	Face font.Face
	Size float64

	sf  *sfnt.Font
	buf sfnt.Buffer
	// covers narrows the cmap lookup when set.
	covers func(rune) bool
}

func LoadFont(path string, size float64) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFontNotFound, path)
		}
		return nil, err
	}
	return ParseFont(data, size)
}

func ParseFont(data []byte, size float64) (*Font, error) {
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(sf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return &Font{Face: face, Size: size, sf: sf}, nil
}

// HasGlyph reports whether the font maps r to a real glyph rather than .notdef.
func (f *Font) HasGlyph(r rune) bool {
	if f.covers != nil && !f.covers(r) {
		return false
	}
	idx, err := f.sf.GlyphIndex(&f.buf, r)
	return err == nil && idx != 0
}

func (f *Font) Close() error {
	if f == nil || f.Face == nil {
		return nil
	}
	return f.Face.Close()
}
