package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/flipbook/internal/navigator"
)

// handleNextPage turns one page forward.
func (s *Server) handleNextPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	done, ok := s.ctrl.Step(1)
	return s.navigated(ctx, done, ok, s.ctrl.State().CurrentPage+1)
}

// handlePreviousPage turns one page back.
func (s *Server) handlePreviousPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	done, ok := s.ctrl.Step(-1)
	return s.navigated(ctx, done, ok, s.ctrl.State().CurrentPage-1)
}

// handleGoToPage jumps to the requested page.
func (s *Server) handleGoToPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := request.RequireInt("page")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: page"), nil
	}

	done, ok := s.ctrl.RequestGoTo(page)
	return s.navigated(ctx, done, ok, page)
}

// handleResizeViewport updates the layout and re-renders the current page.
func (s *Server) handleResizeViewport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	width := request.GetFloat("width", 0)
	density := request.GetFloat("density", 0)
	if width < 0 {
		return mcp.NewToolResultError("width must be positive"), nil
	}
	s.layout.set(width, density)

	st := s.ctrl.State()
	if !st.Loaded() || !st.Sized {
		return mcp.NewToolResultText("Layout updated. No page has been rendered yet."), nil
	}

	done, ok := s.ctrl.RequestRerender()
	return s.navigated(ctx, done, ok, st.CurrentPage)
}

// handleViewerStatus reports the navigation state without rendering.
func (s *Server) handleViewerStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatStatus()), nil
}

// navigated waits for an accepted request and returns the rendered page, or
// explains why the request was dropped.
func (s *Server) navigated(ctx context.Context, done *navigator.Completion, accepted bool, target int) (*mcp.CallToolResult, error) {
	if !accepted {
		return mcp.NewToolResultError(s.rejection(target)), nil
	}

	if err := done.Wait(ctx); err != nil {
		if msg := s.view.errorMessage(); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	f, ok := s.canvas.Last()
	if !ok {
		return mcp.NewToolResultError("no frame has been rendered"), nil
	}

	st := s.ctrl.State()
	text := fmt.Sprintf("Page %d of %d (%dx%d px)", st.CurrentPage, st.TotalPages, f.Target.RenderWidth, f.Target.RenderHeight)
	return mcp.NewToolResultImage(text, base64.StdEncoding.EncodeToString(f.PNG), "image/png"), nil
}

func (s *Server) rejection(target int) string {
	st := s.ctrl.State()
	switch {
	case !st.Loaded():
		if msg := s.view.errorMessage(); msg != "" {
			return msg
		}
		return "No document is loaded."
	case st.RenderInFlight:
		return "A page is still rendering. Try again when it has finished."
	case target < 1 || target > st.TotalPages:
		return fmt.Sprintf("Page %d is out of range (1-%d).", target, st.TotalPages)
	default:
		return "Request was not accepted."
	}
}

// formatStatus renders the viewer state as plain text for agents.
func (s *Server) formatStatus() string {
	st := s.ctrl.State()
	nav := s.view.affordances()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Document: %s\n", s.ctrl.Locator()))
	sb.WriteString(fmt.Sprintf("State: %s\n", st.Phase))
	if st.Loaded() {
		sb.WriteString(fmt.Sprintf("Page: %d of %d\n", st.CurrentPage, st.TotalPages))
		sb.WriteString(fmt.Sprintf("Previous available: %v\n", nav.Previous))
		sb.WriteString(fmt.Sprintf("Next available: %v\n", nav.Next))
	}
	sb.WriteString(fmt.Sprintf("Viewport: %.0fpx @ %gx\n", s.layout.ContainerWidth(), s.layout.PixelDensity()))
	if f, ok := s.canvas.Last(); ok {
		sb.WriteString(fmt.Sprintf("Last render: %dx%d px, displayed at %dx%d\n",
			f.Target.RenderWidth, f.Target.RenderHeight, f.Target.CSSWidth, f.Target.CSSHeight))
	}
	if msg := s.view.errorMessage(); msg != "" {
		sb.WriteString(fmt.Sprintf("Error: %s\n", msg))
	}
	return sb.String()
}
