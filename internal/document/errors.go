package document

import (
	"errors"
	"fmt"
)

var (
	ErrClosed      = errors.New("document: closed")
	ErrPageRange   = errors.New("document: page out of range")
	ErrEmptySource = errors.New("document: no pages")
)

// OpenError reports a document that could not be opened: missing file,
// network failure or corrupt format.
type OpenError struct {
	Locator string
	Err     error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("document: open %s: %v", e.Locator, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// PageFetchError reports a page that could not be loaded.
type PageFetchError struct {
	Page int
	Err  error
}

func (e *PageFetchError) Error() string {
	return fmt.Sprintf("document: fetch page %d: %v", e.Page, e.Err)
}

func (e *PageFetchError) Unwrap() error { return e.Err }

// RenderError reports a page that could not be rasterized.
type RenderError struct {
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("document: render page %d: %v", e.Page, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// IsOpenError reports whether err is, or wraps, an OpenError.
func IsOpenError(err error) bool {
	var oe *OpenError
	return errors.As(err, &oe)
}
