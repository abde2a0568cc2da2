package document

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"sync"

	fitz "github.com/gen2brain/go-fitz"
	xdraw "golang.org/x/image/draw"

	"github.com/ziadkadry99/flipbook/internal/progress"
	"github.com/ziadkadry99/flipbook/internal/viewport"
)

// pointsPerInch is the PDF user-space resolution at scale 1.
const pointsPerInch = 72.0

// FitzSource opens documents with MuPDF through go-fitz. Locators starting
// with http:// or https:// are downloaded into memory first.
type FitzSource struct {
	// Client is used for remote locators. Defaults to http.DefaultClient.
	Client *http.Client

	// Progress, if set, receives download progress for remote locators.
	Progress progress.Reporter
}

// NewFitzSource returns a source backed by go-fitz.
func NewFitzSource() *FitzSource {
	return &FitzSource{}
}

// Open opens the document at locator. Every failure is an *OpenError.
func (s *FitzSource) Open(ctx context.Context, locator string) (Document, error) {
	if locator == "" {
		locator = DefaultLocator
	}

	var (
		doc *fitz.Document
		err error
	)
	if isRemote(locator) {
		var data []byte
		data, err = s.fetch(ctx, locator)
		if err == nil {
			doc, err = fitz.NewFromMemory(data)
		}
	} else {
		doc, err = fitz.New(locator)
	}
	if err != nil {
		return nil, &OpenError{Locator: locator, Err: err}
	}

	n := doc.NumPage()
	if n < 1 {
		doc.Close()
		return nil, &OpenError{Locator: locator, Err: ErrEmptySource}
	}

	return &fitzDocument{doc: doc, pages: n}, nil
}

func (s *FitzSource) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching document: unexpected status %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if s.Progress != nil {
		s.Progress.Start(int(resp.ContentLength))
		defer s.Progress.Finish()
		body = &countingReader{r: resp.Body, report: s.Progress}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading document body: %w", err)
	}
	return data, nil
}

func isRemote(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}

type countingReader struct {
	r      io.Reader
	n      int
	report progress.Reporter
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	c.report.Update(c.n, "")
	return n, err
}

type fitzDocument struct {
	mu     sync.Mutex
	doc    *fitz.Document
	pages  int
	closed bool
}

func (d *fitzDocument) PageCount() int { return d.pages }

func (d *fitzDocument) Page(_ context.Context, number int) (Page, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, &PageFetchError{Page: number, Err: ErrClosed}
	}
	if number < 1 || number > d.pages {
		return nil, &PageFetchError{Page: number, Err: ErrPageRange}
	}

	bound, err := d.doc.Bound(number - 1)
	if err != nil {
		return nil, &PageFetchError{Page: number, Err: err}
	}
	if bound.Dx() <= 0 || bound.Dy() <= 0 {
		return nil, &PageFetchError{Page: number, Err: fmt.Errorf("empty page box %v", bound)}
	}

	return &fitzPage{
		doc:    d,
		number: number,
		size:   viewport.Size{Width: float64(bound.Dx()), Height: float64(bound.Dy())},
	}, nil
}

func (d *fitzDocument) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.doc.Close()
}

func (d *fitzDocument) rasterize(number int, scale float64) (*image.RGBA, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}
	return d.doc.ImageDPI(number-1, pointsPerInch*scale)
}

type fitzPage struct {
	doc    *fitzDocument
	number int
	size   viewport.Size
}

func (p *fitzPage) Number() int                  { return p.number }
func (p *fitzPage) IntrinsicSize() viewport.Size { return p.size }

// RenderInto rasterizes the page at params.Scale and draws it into target.
// MuPDF rounds the pixmap outward, so the result is resampled to exactly
// params.Width x params.Height when they differ.
func (p *fitzPage) RenderInto(ctx context.Context, target Canvas, params RenderParams) error {
	if params.Width <= 0 || params.Height <= 0 || params.Scale <= 0 {
		return &RenderError{Page: p.number, Err: fmt.Errorf("invalid render size %dx%d at scale %v", params.Width, params.Height, params.Scale)}
	}
	if err := ctx.Err(); err != nil {
		return &RenderError{Page: p.number, Err: err}
	}

	img, err := p.doc.rasterize(p.number, params.Scale)
	if err != nil {
		return &RenderError{Page: p.number, Err: err}
	}

	if err := target.Draw(fitTo(img, params.Width, params.Height)); err != nil {
		return &RenderError{Page: p.number, Err: err}
	}
	return nil
}

// fitTo returns src unchanged if it already has the requested size.
func fitTo(src *image.RGBA, width, height int) image.Image {
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
