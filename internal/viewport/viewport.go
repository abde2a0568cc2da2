package viewport

import "math"

// Size is a width/height pair. For a page's intrinsic size the unit is PDF
// points at scale 1.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RenderTarget describes the raster a page should be rendered into and the
// size it should be displayed at.
type RenderTarget struct {
	RenderWidth  int `json:"render_width"`
	RenderHeight int `json:"render_height"`
	CSSWidth     int `json:"css_width"`
	CSSHeight    int `json:"css_height"`

	// Scale is the effective scale applied to the intrinsic size, density included.
	Scale float64 `json:"scale"`
}

// ClampDensity never lets the pixel density drop below 1x.
func ClampDensity(pixelDensity float64) float64 {
	return math.Max(1, pixelDensity)
}

// Compute fits a page to the container width and renders it at the display's
// pixel density. The caller must guard against a non-positive container width.
func Compute(intrinsic Size, containerWidth, pixelDensity float64) RenderTarget {
	density := ClampDensity(pixelDensity)
	scaleCSS := containerWidth / intrinsic.Width
	scale := scaleCSS * density

	renderW := floor(intrinsic.Width * scale)
	renderH := floor(intrinsic.Height * scale)

	return RenderTarget{
		RenderWidth:  int(renderW),
		RenderHeight: int(renderH),
		CSSWidth:     int(floor(renderW / density)),
		CSSHeight:    int(floor(renderH / density)),
		Scale:        scale,
	}
}

// floor truncates toward negative infinity after absorbing float drift, so
// that width*(container/width) lands on container rather than one pixel short.
func floor(v float64) float64 {
	return math.Floor(v + epsilon)
}

const epsilon = 1e-9
