package batch

import "errors"

// Per-row failures. The driver reports them as SKIP lines and moves on.
var (
	ErrFontRequired    = errors.New("--font required for text rows")
	ErrOverlayNotFound = errors.New("overlay not found")
	ErrUnknownType     = errors.New("unknown type")
	ErrTooFewColumns   = errors.New("not enough columns")
	ErrInputNotFound   = errors.New("input image not found")
)

// Fatal failures, detected before any row is processed.
var (
	ErrBaseImageRequired = errors.New("mode 1 requires --image")
	ErrNoRows            = errors.New("csv has no rows")
)
