package batch

import (
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var (
	okTag   = color.New(color.FgGreen).SprintFunc()
	skipTag = color.New(color.FgYellow).SprintFunc()
)

type DriverConfig struct {
	OutputDir string
	// Base is the shared image for ModeShared; nil when --image was not given.
	Base image.Image
	Out  io.Writer
	Log  logrus.FieldLogger
}

type Summary struct {
	Mode    Mode
	Rows    int
	Written int
	Skipped int
}

// Driver walks CSV rows in order and hands each one to a Processor.
type Driver struct {
	proc *Processor
	cfg  DriverConfig

	cache map[string]image.Image
}

func NewDriver(proc *Processor, cfg DriverConfig) *Driver {
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	return &Driver{proc: proc, cfg: cfg, cache: map[string]image.Image{}}
}

// Run processes rows in file order. Only ErrNoRows and ErrBaseImageRequired
// are returned; every per-row failure is reported and skipped.
func (d *Driver) Run(rows [][]string) (Summary, error) {
	if len(rows) == 0 {
		return Summary{}, ErrNoRows
	}

	mode := DetectMode(rows[0])
	if mode == ModePerRow {
		fmt.Fprintf(d.cfg.Out, "%s: image per row\n", mode)
	} else if d.cfg.Base == nil {
		return Summary{Mode: mode}, ErrBaseImageRequired
	}

	fmt.Fprintf(d.cfg.Out, "Processing %d rows...\n\n", len(rows))

	sum := Summary{Mode: mode, Rows: len(rows)}
	for i, fields := range rows {
		num := i + 1
		res, err := d.processRow(mode, num, fields)
		if err != nil {
			sum.Skipped++
			d.cfg.Log.WithFields(logrus.Fields{"row": num, "error": err}).Debug("row skipped")
			fmt.Fprintf(d.cfg.Out, "  [%d] %s: %v\n", num, skipTag("SKIP"), err)
			continue
		}
		sum.Written++
		d.cfg.Log.WithFields(logrus.Fields{"row": num, "path": res.Path}).Debug("row written")
		fmt.Fprintf(d.cfg.Out, "  [%d] %s: %s\n", num, okTag("OK"), res)
	}

	fmt.Fprintf(d.cfg.Out, "\nDone. Output in '%s/'\n", d.cfg.OutputDir)
	return sum, nil
}

func (d *Driver) processRow(mode Mode, num int, fields []string) (Result, error) {
	row, err := ParseRow(mode, num, fields)
	if err != nil {
		return Result{}, err
	}

	base := d.cfg.Base
	if mode == ModePerRow {
		if base, err = d.baseFor(row.Input); err != nil {
			return Result{}, err
		}
	}
	return d.proc.Process(base, row.Job, filepath.Join(d.cfg.OutputDir, row.Output))
}

// baseFor loads a per-row base image on first use and reuses it afterwards.
func (d *Driver) baseFor(path string) (image.Image, error) {
	if img, ok := d.cache[path]; ok {
		return img, nil
	}
	img, err := LoadBaseImage(path)
	if err != nil {
		return nil, err
	}
	d.cache[path] = img
	return img, nil
}
