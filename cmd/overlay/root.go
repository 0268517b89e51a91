package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/youruser/overlay/internal/batch"
	"github.com/youruser/overlay/internal/config"
	imagepkg "github.com/youruser/overlay/internal/image"
	"github.com/youruser/overlay/internal/util"
)

var errCSVRequired = errors.New("--csv is required")

func newRootCmd(logger *logrus.Logger) *cobra.Command {
	v := config.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         appDescription,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := config.LoadConfig(v, cfgFile); err != nil {
				return err
			}
			cfg, err := config.ParseConfig(v)
			if err != nil {
				return err
			}
			if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
				logger.SetLevel(lvl)
			}
			return run(cfg, cmd.OutOrStdout(), logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "YAML config file")
	f.String("image", "", "Base image (Mode 1 only)")
	f.String("csv", "", "CSV file")
	f.String("output-dir", "output", "Output folder")
	f.String("font", "", "Path to .ttf/.otf font")
	f.Float64("font-size", 48, "Font size pt")
	f.String("emoji-font", "", "Fallback font for glyphs missing from --font, e.g. Noto Emoji")
	f.String("color", "#333333", "Text color hex")
	f.String("position", string(imagepkg.BottomLeft), "One of "+imagepkg.AnchorNames())
	f.Int("x", 20, "Horizontal offset px")
	f.Int("y", 20, "Vertical offset px")
	f.Int("overlay-size", 150, "Image overlay width px")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}

func run(cfg *config.Config, out io.Writer, logger *logrus.Logger) error {
	if cfg.CSV == "" {
		return errCSVRequired
	}

	opts, err := batch.NewOptions(cfg)
	if err != nil {
		return err
	}
	defer opts.Close()
	printBanner(out, opts.Engine, cfg.EmojiFont)

	if err := util.EnsureDir(cfg.OutputDir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	dc := batch.DriverConfig{OutputDir: cfg.OutputDir, Out: out, Log: logger}
	if cfg.Image != "" {
		path := util.ExpandUser(cfg.Image)
		base, err := batch.LoadBaseImage(path)
		if err != nil {
			return fmt.Errorf("base image: %w", err)
		}
		b := base.Bounds()
		fmt.Fprintf(out, "%s: single base image: %s (%dx%dpx)\n", batch.ModeShared, path, b.Dx(), b.Dy())
		dc.Base = base
	}

	rows, err := batch.LoadRows(util.ExpandUser(cfg.CSV))
	if err != nil {
		return err
	}

	sum, err := batch.NewDriver(batch.NewProcessor(opts), dc).Run(rows)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"mode":    sum.Mode.String(),
		"rows":    sum.Rows,
		"written": sum.Written,
		"skipped": sum.Skipped,
	}).Debug("batch finished")
	return nil
}

func printBanner(out io.Writer, eng imagepkg.TextEngine, emojiFont string) {
	if eng.EmojiAware() {
		fmt.Fprintf(out, "%s emoji rendering enabled (%s)\n", color.GreenString("✓"), emojiFont)
		return
	}
	fmt.Fprintf(out, "%s emoji font not set, emoji will render as boxes\n", color.YellowString("⚠"))
}
