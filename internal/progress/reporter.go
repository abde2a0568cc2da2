package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while a document is downloaded.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{out: os.Stderr}
	}
	return &TerminalReporter{}
}

// TerminalReporter displays a byte progress bar on stderr. A total of -1
// means the size is unknown and the bar becomes a spinner.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Fetching document"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		if message != "" {
			r.bar.Describe(message)
		}
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints coarse line-by-line progress suitable for CI logs.
type CIReporter struct {
	out   io.Writer
	total int
	last  int
}

func (r *CIReporter) Start(total int) {
	r.total = total
	r.last = 0
	fmt.Fprintf(r.writer(), "Fetching document (%s)\n", formatTotal(total))
}

// Update prints at most once per 10% step.
func (r *CIReporter) Update(current int, message string) {
	if r.total <= 0 {
		return
	}
	pct := current * 100 / r.total
	if pct/10 <= r.last/10 {
		return
	}
	r.last = pct
	fmt.Fprintf(r.writer(), "[%d%%] %d/%d bytes\n", pct, current, r.total)
}

func (r *CIReporter) Finish() {
	fmt.Fprintln(r.writer(), "Document fetched")
}

func (r *CIReporter) writer() io.Writer {
	if r.out == nil {
		return os.Stderr
	}
	return r.out
}

func formatTotal(total int) string {
	if total < 0 {
		return "unknown size"
	}
	return fmt.Sprintf("%d bytes", total)
}
