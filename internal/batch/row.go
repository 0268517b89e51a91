package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/youruser/overlay/internal/util"
)

// Mode is the CSV layout, detected once from the first row.
type Mode int

const (
	// ModeShared rows are type,value,output and share one base image.
	ModeShared Mode = iota + 1
	// ModePerRow rows are input_image,type,value,output.
	ModePerRow
)

func (m Mode) String() string {
	switch m {
	case ModeShared:
		return "Mode 1"
	case ModePerRow:
		return "Mode 2"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
}

func IsImagePath(v string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(v))]
}

// DetectMode picks ModePerRow when the first row has four or more columns or
// its first column looks like an image file name.
func DetectMode(first []string) Mode {
	if len(first) >= 4 || (len(first) >= 1 && IsImagePath(strings.TrimSpace(first[0]))) {
		return ModePerRow
	}
	return ModeShared
}

// Row is one parsed CSV line. Num is 1-based, counted after blank lines are
// dropped.
type Row struct {
	Num    int
	Input  string
	Job    Job
	Output string
}

func ParseRow(mode Mode, num int, fields []string) (Row, error) {
	get := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	r := Row{Num: num}
	switch mode {
	case ModePerRow:
		if len(fields) < 3 {
			return r, ErrTooFewColumns
		}
		r.Input = util.ExpandUser(get(0))
		r.Job = ParseJob(get(1), get(2))
		r.Output = OutputName(get(3), num)
	default:
		if len(fields) < 1 {
			return r, ErrTooFewColumns
		}
		r.Job = ParseJob(get(0), get(1))
		r.Output = OutputName(get(2), num)
	}
	return r, nil
}

// OutputName falls back to image_NNNN.jpg and appends .jpg to names without
// an extension.
func OutputName(name string, num int) string {
	if name == "" {
		name = fmt.Sprintf("image_%04d.jpg", num)
	}
	if filepath.Ext(name) == "" {
		name += ".jpg"
	}
	return name
}
