package imagepkg

import (
	"errors"
	"fmt"
	"strings"
)

// Anchor names the edge, corner or center an overlay is placed against.
type Anchor string

const (
	TopLeft     Anchor = "top-left"
	TopRight    Anchor = "top-right"
	BottomLeft  Anchor = "bottom-left"
	BottomRight Anchor = "bottom-right"
	Center      Anchor = "center"
)

var ErrUnknownAnchor = errors.New("unknown position")

// Anchors lists every supported anchor in flag help order.
var Anchors = []Anchor{TopLeft, TopRight, BottomLeft, BottomRight, Center}

func ParseAnchor(s string) (Anchor, error) {
	a := Anchor(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Anchors {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w %q (use one of %s)", ErrUnknownAnchor, s, AnchorNames())
}

func AnchorNames() string {
	names := make([]string, len(Anchors))
	for i, a := range Anchors {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// Resolve returns the top-left point for an object of objW x objH inside a
// container of cw x ch. Offsets are insets from the anchored edges and are
// ignored for Center.
func Resolve(a Anchor, cw, ch, objW, objH, offX, offY int) (int, int, error) {
	switch a {
	case TopLeft:
		return offX, offY, nil
	case TopRight:
		return cw - objW - offX, offY, nil
	case BottomLeft:
		return offX, ch - objH - offY, nil
	case BottomRight:
		return cw - objW - offX, ch - objH - offY, nil
	case Center:
		return floorDiv(cw-objW, 2), floorDiv(ch-objH, 2), nil
	}
	return 0, 0, fmt.Errorf("%w %q", ErrUnknownAnchor, string(a))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
