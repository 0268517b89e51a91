package batch

import (
	"github.com/youruser/overlay/internal/config"
	imagepkg "github.com/youruser/overlay/internal/image"
	"github.com/youruser/overlay/internal/util"
)

// NewOptions resolves the rendering settings of cfg, loading the configured
// fonts. A font path that does not exist is an error; no font path leaves
// Font nil.
func NewOptions(cfg *config.Config) (Options, error) {
	anchor, err := imagepkg.ParseAnchor(cfg.Position)
	if err != nil {
		return Options{}, err
	}
	c, err := imagepkg.ParseHexColor(cfg.Color)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Color:        c,
		Anchor:       anchor,
		OffsetX:      cfg.X,
		OffsetY:      cfg.Y,
		OverlayWidth: cfg.OverlaySize,
	}

	if cfg.Font != "" {
		if opts.Font, err = imagepkg.LoadFont(util.ExpandUser(cfg.Font), cfg.FontSize); err != nil {
			return Options{}, err
		}
	}

	var emoji *imagepkg.Font
	if cfg.EmojiFont != "" {
		if emoji, err = imagepkg.LoadFont(util.ExpandUser(cfg.EmojiFont), cfg.FontSize); err != nil {
			opts.Close()
			return Options{}, err
		}
	}
	opts.Engine = imagepkg.NewTextEngine(emoji)
	opts.emoji = emoji
	return opts, nil
}

func (o Options) Close() {
	o.Font.Close()
	o.emoji.Close()
}

// ResizeFonts returns a copy of o with the primary and emoji fonts of cfg
// reloaded at size. The copy owns the new faces; close it, not o.
func ResizeFonts(cfg *config.Config, o Options, size float64) (Options, error) {
	sized := *cfg
	sized.FontSize = size
	fresh, err := NewOptions(&sized)
	if err != nil {
		return o, err
	}
	o.Font = fresh.Font
	o.Engine = fresh.Engine
	o.emoji = fresh.emoji
	return o, nil
}
