package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/flipbook/internal/document"
	"github.com/ziadkadry99/flipbook/internal/frame"
	"github.com/ziadkadry99/flipbook/internal/navigator"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Options configures the headless viewer behind the MCP tools.
type Options struct {
	ContainerWidth float64
	PixelDensity   float64
	FlipDuration   time.Duration
	Debug          bool
}

// Server wraps an MCP server that lets an agent page through a document.
// There is no browser: the controller renders into an in-memory canvas and
// each tool call returns the resulting page image.
type Server struct {
	ctrl   *navigator.Controller
	view   *recordingView
	layout *layout
	canvas *frame.Canvas
	mcp    *server.MCPServer
}

// NewServer creates an MCP server with an unloaded controller.
func NewServer(opts Options) *Server {
	s := &Server{
		view:   &recordingView{},
		layout: &layout{width: opts.ContainerWidth, density: opts.PixelDensity},
		canvas: frame.NewCanvas(nil),
	}

	ctrlOpts := []navigator.Option{navigator.WithDebug(opts.Debug)}
	if opts.FlipDuration > 0 {
		ctrlOpts = append(ctrlOpts, navigator.WithFlipDuration(opts.FlipDuration))
	}
	s.ctrl = navigator.New(s.view, s.canvas, s.layout, ctrlOpts...)

	s.mcp = server.NewMCPServer(
		"flipbook",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// Load opens the document and waits for the first page to render.
func (s *Server) Load(ctx context.Context, src document.Source, locator string) error {
	done, err := s.ctrl.Load(ctx, src, locator)
	if err != nil {
		return err
	}
	if err := done.Wait(ctx); err != nil {
		return fmt.Errorf("rendering first page: %w", err)
	}
	return nil
}

// Close releases the document.
func (s *Server) Close() error {
	return s.ctrl.Close()
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(nextPageTool, s.handleNextPage)
	s.mcp.AddTool(previousPageTool, s.handlePreviousPage)
	s.mcp.AddTool(goToPageTool, s.handleGoToPage)
	s.mcp.AddTool(resizeViewportTool, s.handleResizeViewport)
	s.mcp.AddTool(viewerStatusTool, s.handleViewerStatus)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
