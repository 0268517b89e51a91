package imagepkg

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// TextEngine measures and draws a single line of text. One engine is picked
// at startup depending on whether an emoji font is available.
type TextEngine interface {
	EmojiAware() bool
	Measure(f *Font, label string) (w, h int)
	Draw(dst draw.Image, f *Font, label string, c color.Color, x, y int)
}

// NewTextEngine returns an emoji-aware engine when emoji is non-nil and the
// plain glyph-box engine otherwise.
func NewTextEngine(emoji *Font) TextEngine {
	if emoji == nil {
		return plainEngine{}
	}
	return &emojiEngine{emoji: emoji}
}

type plainEngine struct{}

func (plainEngine) EmojiAware() bool { return false }

func (plainEngine) Measure(f *Font, label string) (int, int) {
	b, _ := font.BoundString(f.Face, label)
	return (b.Max.X - b.Min.X).Ceil(), (b.Max.Y - b.Min.Y).Ceil()
}

// Draw places the ink bounding box, not the pen origin, at (x, y).
func (plainEngine) Draw(dst draw.Image, f *Font, label string, c color.Color, x, y int) {
	b, _ := font.BoundString(f.Face, label)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f.Face,
		Dot:  fixed.P(x-b.Min.X.Floor(), y-b.Min.Y.Floor()),
	}
	d.DrawString(label)
}

// emojiEngine falls back to the emoji font for every rune the primary font
// has no glyph for. Layout uses advances and line metrics so that mixed runs
// share one baseline.
type emojiEngine struct {
	emoji *Font
}

func (e *emojiEngine) EmojiAware() bool { return true }

func (e *emojiEngine) faceFor(f *Font, r rune) font.Face {
	if f.HasGlyph(r) || !e.emoji.HasGlyph(r) {
		return f.Face
	}
	return e.emoji.Face
}

func (e *emojiEngine) lineMetrics(f *Font) (ascent, descent fixed.Int26_6) {
	pm, em := f.Face.Metrics(), e.emoji.Face.Metrics()
	ascent, descent = pm.Ascent, pm.Descent
	if em.Ascent > ascent {
		ascent = em.Ascent
	}
	if em.Descent > descent {
		descent = em.Descent
	}
	return ascent, descent
}

func (e *emojiEngine) Measure(f *Font, label string) (int, int) {
	var width fixed.Int26_6
	for _, r := range label {
		if adv, ok := e.faceFor(f, r).GlyphAdvance(r); ok {
			width += adv
		}
	}
	ascent, descent := e.lineMetrics(f)
	return width.Ceil(), (ascent + descent).Ceil()
}

func (e *emojiEngine) Draw(dst draw.Image, f *Font, label string, c color.Color, x, y int) {
	ascent, _ := e.lineMetrics(f)
	d := &font.Drawer{
		Dst: dst,
		Src: image.NewUniform(c),
		Dot: fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + ascent},
	}
	for _, r := range label {
		d.Face = e.faceFor(f, r)
		d.DrawString(string(r))
	}
}
