package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/youruser/overlay/internal/batch"
	"github.com/youruser/overlay/internal/config"
	imagepkg "github.com/youruser/overlay/internal/image"
	"github.com/youruser/overlay/internal/util"
)

// MaxFontSize bounds the font_size override in points.
const MaxFontSize = 1000

var errBadRequest = errors.New("bad request")

// Handler renders single overlays with the server-wide defaults, which each
// request may override.
type Handler struct {
	cfg  *config.Config
	opts batch.Options
	log  logrus.FieldLogger

	// font faces cache glyphs and are not safe for concurrent use
	mu sync.Mutex
}

func NewHandler(cfg *config.Config, opts batch.Options, log logrus.FieldLogger) *Handler {
	return &Handler{cfg: cfg, opts: opts, log: log}
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// overlay accepts a multipart form with the base "image" file, "type",
// "value" and, for image rows, an "overlay" file. When allow-remote is set an
// http(s) URL in "value" is fetched instead, public addresses only. It
// responds with the rendered JPEG.
func (h *Handler) overlay(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("image file is required: %v", err)})
		return
	}
	data, err := readUpload(fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := imagepkg.CheckPixels(data, h.cfg.MaxPixels); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	base, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("decode image: %v", err)})
		return
	}

	opts, closeFont, err := h.requestOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer closeFont()

	job := batch.ParseJob(c.PostForm("type"), c.PostForm("value"))
	if job.Kind == batch.KindImage {
		var cleanup func()
		if job, cleanup, err = h.imageJob(c, job, opts.OverlayWidth); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer cleanup()
	}

	h.mu.Lock()
	img, res, err := batch.NewProcessor(opts).Render(base, job)
	h.mu.Unlock()
	if err != nil {
		h.log.WithError(err).WithField("type", job.RawType).Warn("overlay skipped")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	buf := new(bytes.Buffer)
	if err := imagepkg.EncodeJPEG(buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.log.WithField("placement", res.String()).Debug("overlay rendered")
	c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// imageJob checks the overlay against the pixel budget and stores it in a
// temp dir. Local paths from the request are never read. The returned func
// removes the temp dir.
func (h *Handler) imageJob(c *gin.Context, job batch.Job, width int) (batch.Job, func(), error) {
	noop := func() {}

	var (
		data []byte
		name = "overlay"
	)
	fh, err := c.FormFile("overlay")
	switch {
	case err == nil:
		if data, err = readUpload(fh); err != nil {
			return job, noop, err
		}
		name = filepath.Base(fh.Filename)
	case imagepkg.IsRemote(job.Value) && h.cfg.AllowRemote:
		if data, err = util.GetPublicBytes(job.Value); err != nil {
			return job, noop, fmt.Errorf("fetch overlay: %w", err)
		}
	case imagepkg.IsRemote(job.Value):
		return job, noop, fmt.Errorf("%w: remote overlays are disabled, upload an overlay file", errBadRequest)
	default:
		return job, noop, fmt.Errorf("%w: overlay file is required", errBadRequest)
	}

	cfg, err := imagepkg.CheckPixels(data, h.cfg.MaxPixels)
	if err != nil {
		return job, noop, err
	}
	if err := imagepkg.CheckScaled(cfg.Width, cfg.Height, width, h.cfg.MaxPixels); err != nil {
		return job, noop, err
	}

	dir, err := os.MkdirTemp("", "overlay-")
	if err != nil {
		return job, noop, err
	}
	cleanup := func() { os.RemoveAll(dir) }
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		cleanup()
		return job, noop, err
	}
	return batch.ImageJob(path), cleanup, nil
}

// requestOptions applies form overrides to the server defaults. The returned
// func releases font faces created for a font_size override.
func (h *Handler) requestOptions(c *gin.Context) (batch.Options, func(), error) {
	opts := h.opts
	noop := func() {}

	if v := c.PostForm("position"); v != "" {
		a, err := imagepkg.ParseAnchor(v)
		if err != nil {
			return opts, noop, err
		}
		opts.Anchor = a
	}
	if v := c.PostForm("color"); v != "" {
		col, err := imagepkg.ParseHexColor(v)
		if err != nil {
			return opts, noop, err
		}
		opts.Color = col
	}
	for _, f := range []struct {
		name     string
		dst      *int
		min, max int
	}{
		{"x", &opts.OffsetX, -config.MaxOverlaySize, config.MaxOverlaySize},
		{"y", &opts.OffsetY, -config.MaxOverlaySize, config.MaxOverlaySize},
		{"overlay_size", &opts.OverlayWidth, 1, config.MaxOverlaySize},
	} {
		v := c.PostForm(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < f.min || n > f.max {
			return opts, noop, fmt.Errorf("%w: %s must be an integer in %d..%d, got %q", errBadRequest, f.name, f.min, f.max, v)
		}
		*f.dst = n
	}

	if v := c.PostForm("font_size"); v != "" && h.cfg.Font != "" {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil || size <= 0 || size > MaxFontSize {
			return opts, noop, fmt.Errorf("%w: font_size must be in (0, %d], got %q", errBadRequest, MaxFontSize, v)
		}
		if size != h.cfg.FontSize {
			resized, err := batch.ResizeFonts(h.cfg, opts, size)
			if err != nil {
				return opts, noop, err
			}
			return resized, resized.Close, nil
		}
	}
	return opts, noop, nil
}
