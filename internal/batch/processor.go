package batch

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	imagepkg "github.com/youruser/overlay/internal/image"
	"github.com/youruser/overlay/internal/util"
)

// Options are the rendering settings shared by every row of a run.
type Options struct {
	// Font may be nil, in which case text jobs are skipped.
	Font         *imagepkg.Font
	Engine       imagepkg.TextEngine
	Color        color.Color
	Anchor       imagepkg.Anchor
	OffsetX      int
	OffsetY      int
	OverlayWidth int

	emoji *imagepkg.Font
}

type Result struct {
	Job       Job
	Placement imagepkg.Placement
	Path      string
}

func (r Result) String() string {
	p := r.Placement
	s := fmt.Sprintf("%s '%s' at %d,%d (%dx%dpx)", r.Job.Kind, r.Job.Value, p.X, p.Y, p.W, p.H)
	if r.Path != "" {
		s += " -> " + r.Path
	}
	return s
}

type Processor struct {
	opts Options
}

func NewProcessor(opts Options) *Processor {
	if opts.Engine == nil {
		opts.Engine = imagepkg.NewTextEngine(nil)
	}
	if opts.Color == nil {
		opts.Color = color.Black
	}
	return &Processor{opts: opts}
}

// Render applies job to a copy of base. base itself is never modified.
func (p *Processor) Render(base image.Image, job Job) (*image.NRGBA, Result, error) {
	o := p.opts
	res := Result{Job: job}

	switch job.Kind {
	case KindText:
		if o.Font == nil {
			return nil, res, ErrFontRequired
		}
		img := imaging.Clone(base)
		pl, err := imagepkg.DrawText(img, o.Engine, o.Font, job.Value, o.Color, o.Anchor, o.OffsetX, o.OffsetY)
		if err != nil {
			return nil, res, err
		}
		res.Placement = pl
		return img, res, nil

	case KindImage:
		ref := job.Value
		if !imagepkg.IsRemote(ref) {
			ref = util.ExpandUser(ref)
			if !util.Exists(ref) {
				return nil, res, fmt.Errorf("%w: %s", ErrOverlayNotFound, ref)
			}
		}
		ov, err := imagepkg.LoadOverlay(ref)
		if err != nil {
			return nil, res, err
		}
		img, pl, err := imagepkg.DrawImageOverlay(base, ov, o.OverlayWidth, o.Anchor, o.OffsetX, o.OffsetY)
		if err != nil {
			return nil, res, err
		}
		res.Placement = pl
		return img, res, nil
	}
	return nil, res, job.unknownErr()
}

// Process renders job onto base and writes the flattened JPEG to outPath.
// Nothing is written when rendering fails.
func (p *Processor) Process(base image.Image, job Job, outPath string) (Result, error) {
	img, res, err := p.Render(base, job)
	if err != nil {
		return res, err
	}
	if err := imagepkg.SaveJPEG(outPath, img); err != nil {
		return res, fmt.Errorf("write %s: %w", outPath, err)
	}
	res.Path = outPath
	return res, nil
}
