package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youruser/overlay/internal/config"
	imagepkg "github.com/youruser/overlay/internal/image"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.ParseConfig(config.New())
	require.NoError(t, err)
	return cfg
}

func TestNewOptionsDefaults(t *testing.T) {
	opts, err := NewOptions(defaultConfig(t))
	require.NoError(t, err)
	defer opts.Close()

	assert.Nil(t, opts.Font)
	assert.Equal(t, imagepkg.BottomLeft, opts.Anchor)
	assert.Equal(t, 20, opts.OffsetX)
	assert.Equal(t, 150, opts.OverlayWidth)
	assert.False(t, opts.Engine.EmojiAware())
}

func TestNewOptionsFonts(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "regular.ttf")
	emoji := filepath.Join(dir, "emoji.ttf")
	require.NoError(t, os.WriteFile(regular, goregular.TTF, 0o644))
	require.NoError(t, os.WriteFile(emoji, gomono.TTF, 0o644))

	cfg := defaultConfig(t)
	cfg.Font = regular
	cfg.EmojiFont = emoji
	opts, err := NewOptions(cfg)
	require.NoError(t, err)
	defer opts.Close()

	require.NotNil(t, opts.Font)
	assert.Equal(t, 48.0, opts.Font.Size)
	assert.True(t, opts.Engine.EmojiAware())

	cfg.EmojiFont = filepath.Join(dir, "missing.ttf")
	_, err = NewOptions(cfg)
	assert.ErrorIs(t, err, imagepkg.ErrFontNotFound)
}

func TestNewOptionsMissingFont(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Font = filepath.Join(t.TempDir(), "missing.ttf")
	_, err := NewOptions(cfg)
	assert.ErrorIs(t, err, imagepkg.ErrFontNotFound)
}

func TestResizeFontsReloadsBothFaces(t *testing.T) {
	dir := t.TempDir()
	cfg := defaultConfig(t)
	cfg.Font = filepath.Join(dir, "regular.ttf")
	cfg.EmojiFont = filepath.Join(dir, "emoji.ttf")
	require.NoError(t, os.WriteFile(cfg.Font, goregular.TTF, 0o644))
	require.NoError(t, os.WriteFile(cfg.EmojiFont, gomono.TTF, 0o644))

	opts, err := NewOptions(cfg)
	require.NoError(t, err)
	defer opts.Close()
	opts.OffsetX = 7

	small, err := ResizeFonts(cfg, opts, 12)
	require.NoError(t, err)
	defer small.Close()

	assert.Equal(t, 12.0, small.Font.Size)
	require.NotNil(t, small.emoji)
	assert.Equal(t, 12.0, small.emoji.Size)
	assert.True(t, small.Engine.EmojiAware())
	assert.Equal(t, 7, small.OffsetX)

	_, h := small.Engine.Measure(small.Font, "Hi")
	_, bigH := opts.Engine.Measure(opts.Font, "Hi")
	assert.Less(t, h, bigH/2)

	assert.Equal(t, 48.0, opts.Font.Size)
	assert.Equal(t, 48.0, opts.emoji.Size)
	assert.Equal(t, 48.0, cfg.FontSize)
}
