package batch

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// Job is the overlay a single row asks for. Value is the label for text
// jobs and the overlay path or URL for image jobs; RawType keeps the
// original type column for error messages.
type Job struct {
	Kind    Kind
	Value   string
	RawType string
}

func ParseJob(rowType, value string) Job {
	t := strings.ToLower(strings.TrimSpace(rowType))
	j := Job{Value: strings.TrimSpace(value), RawType: t}
	switch t {
	case "text":
		j.Kind = KindText
	case "image":
		j.Kind = KindImage
	}
	return j
}

func TextJob(label string) Job { return Job{Kind: KindText, Value: label, RawType: "text"} }

func ImageJob(ref string) Job { return Job{Kind: KindImage, Value: ref, RawType: "image"} }

func (j Job) unknownErr() error {
	return fmt.Errorf("%w '%s' (use 'text' or 'image')", ErrUnknownType, j.RawType)
}
