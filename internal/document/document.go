// Package document defines the boundary to the external PDF rendering
// library: opening a document, fetching pages and rasterizing a page into a
// canvas. Page numbers are 1-based at this boundary.
package document

import (
	"context"
	"image"

	"github.com/ziadkadry99/flipbook/internal/viewport"
)

// DefaultLocator is the document opened when no locator is given.
const DefaultLocator = "Volantino.pdf"

// Source opens documents by locator (a local path or an http(s) URL).
type Source interface {
	Open(ctx context.Context, locator string) (Document, error)
}

// Document is an opened document handle.
type Document interface {
	PageCount() int
	Page(ctx context.Context, number int) (Page, error)
	Close() error
}

// Page is a fetched page.
type Page interface {
	Number() int
	IntrinsicSize() viewport.Size
	RenderInto(ctx context.Context, target Canvas, params RenderParams) error
}

// RenderParams tells the rasterizer what resolution to produce.
type RenderParams struct {
	Width  int
	Height int
	Scale  float64
}

// ParamsFor derives render parameters from a computed render target.
func ParamsFor(t viewport.RenderTarget) RenderParams {
	return RenderParams{Width: t.RenderWidth, Height: t.RenderHeight, Scale: t.Scale}
}

// Canvas is the drawing surface a page is rendered into.
type Canvas interface {
	// Resize sets the raster size and display size before drawing.
	Resize(t viewport.RenderTarget) error
	// Draw replaces the canvas contents with img.
	Draw(img image.Image) error
}
