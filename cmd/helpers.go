package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ziadkadry99/flipbook/internal/config"
	"github.com/ziadkadry99/flipbook/internal/document"
	"github.com/ziadkadry99/flipbook/internal/progress"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `flipbook init` to create a config file", err)
	}
	if verbose {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// locatorFrom picks the document: the positional argument wins over the
// config file.
func locatorFrom(args []string, cfg *config.Config) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return cfg.Document
}

// newSource builds the document source. Remote documents report download
// progress on stderr when report is set.
func newSource(report bool) *document.FitzSource {
	src := document.NewFitzSource()
	if report {
		src.Progress = progress.NewReporter()
	}
	return src
}

// preflight opens the document once so problems show up in the terminal
// before the first browser connects. Failure is only a warning: the viewer
// shows the same error to the reader.
func preflight(ctx context.Context, locator string) {
	doc, err := newSource(true).Open(ctx, locator)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	defer doc.Close()
	fmt.Fprintf(os.Stderr, "  Pages: %d\n", doc.PageCount())
}
