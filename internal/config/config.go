// Run configuration shared by the batch CLI and the render server
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	imagepkg "github.com/youruser/overlay/internal/image"
)

const EnvPrefix = "OVERLAY"

// MaxOverlaySize bounds the overlay width in pixels.
const MaxOverlaySize = 8192

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Image       string  `mapstructure:"image"`
	CSV         string  `mapstructure:"csv"`
	OutputDir   string  `mapstructure:"output-dir"`
	Font        string  `mapstructure:"font"`
	FontSize    float64 `mapstructure:"font-size"`
	EmojiFont   string  `mapstructure:"emoji-font"`
	Color       string  `mapstructure:"color"`
	Position    string  `mapstructure:"position"`
	X           int     `mapstructure:"x"`
	Y           int     `mapstructure:"y"`
	OverlaySize int     `mapstructure:"overlay-size"`
	LogLevel    string  `mapstructure:"log-level"`
	Addr        string  `mapstructure:"addr"`

	// Render server limits.
	AllowRemote    bool  `mapstructure:"allow-remote"`
	MaxUploadBytes int64 `mapstructure:"max-upload-bytes"`
	MaxPixels      int   `mapstructure:"max-pixels"`
}

// New returns a viper instance with defaults and OVERLAY_* env lookup
// configured. Flags are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func SetDefaults(v *viper.Viper) {
	for _, key := range []string{"image", "csv", "font", "emoji-font"} {
		v.SetDefault(key, "")
	}
	v.SetDefault("output-dir", "output")
	v.SetDefault("font-size", 48)
	v.SetDefault("color", "#333333")
	v.SetDefault("position", string(imagepkg.BottomLeft))
	v.SetDefault("x", 20)
	v.SetDefault("y", 20)
	v.SetDefault("overlay-size", 150)
	v.SetDefault("log-level", "info")
	v.SetDefault("addr", ":8080")
	v.SetDefault("allow-remote", false)
	v.SetDefault("max-upload-bytes", 32<<20)
	v.SetDefault("max-pixels", 40_000_000)
}

// LoadConfig merges a YAML config file into v. An empty path is a no-op.
func LoadConfig(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if _, err := imagepkg.ParseAnchor(c.Position); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := imagepkg.ParseHexColor(c.Color); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("%w: font size must be positive, got %v", ErrInvalidConfig, c.FontSize)
	}
	if c.OverlaySize <= 0 || c.OverlaySize > MaxOverlaySize {
		return fmt.Errorf("%w: overlay size must be in 1..%d, got %d", ErrInvalidConfig, MaxOverlaySize, c.OverlaySize)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: max upload bytes must be positive, got %d", ErrInvalidConfig, c.MaxUploadBytes)
	}
	if c.MaxPixels <= 0 {
		return fmt.Errorf("%w: max pixels must be positive, got %d", ErrInvalidConfig, c.MaxPixels)
	}
	return nil
}
