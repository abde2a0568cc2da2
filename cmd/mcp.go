package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/flipbook/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [document]",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio. Agents can turn
pages, jump to a page and resize the viewport; each navigation returns the
rendered page as an image.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		locator := locatorFrom(args, cfg)

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		srv := mcpserver.NewServer(mcpserver.Options{
			ContainerWidth: cfg.ContainerWidth,
			PixelDensity:   cfg.PixelDensity,
			FlipDuration:   cfg.FlipDuration(),
			Debug:          cfg.Debug,
		})
		defer srv.Close()

		// An unopenable document is not fatal: the tools report it.
		if err := srv.Load(context.Background(), newSource(true), locator); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		fmt.Fprintf(os.Stderr, "flipbook MCP server started on stdio (document=%s)\n", locator)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
