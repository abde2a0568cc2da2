package mcp

import "github.com/mark3labs/mcp-go/mcp"

// nextPageTool defines the next_page MCP tool.
var nextPageTool = mcp.NewTool("next_page",
	mcp.WithDescription("Turn to the next page of the document. Returns the rendered page as a PNG image."),
)

// previousPageTool defines the previous_page MCP tool.
var previousPageTool = mcp.NewTool("previous_page",
	mcp.WithDescription("Turn back to the previous page of the document. Returns the rendered page as a PNG image."),
)

// goToPageTool defines the go_to_page MCP tool.
var goToPageTool = mcp.NewTool("go_to_page",
	mcp.WithDescription("Jump to a page by number (1-based). Returns the rendered page as a PNG image."),
	mcp.WithNumber("page",
		mcp.Required(),
		mcp.Description("Page number, from 1 to the page count"),
	),
)

// resizeViewportTool defines the resize_viewport MCP tool.
var resizeViewportTool = mcp.NewTool("resize_viewport",
	mcp.WithDescription("Change the container width and pixel density, then re-render the current page."),
	mcp.WithNumber("width",
		mcp.Description("Container width in CSS pixels (default: unchanged)"),
	),
	mcp.WithNumber("density",
		mcp.Description("Device pixel ratio; values below 1 render at 1 (default: unchanged)"),
	),
)

// viewerStatusTool defines the viewer_status MCP tool.
var viewerStatusTool = mcp.NewTool("viewer_status",
	mcp.WithDescription("Report the current page, page count, navigation availability and last render size."),
)
