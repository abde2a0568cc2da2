package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flipbook/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "flipbook",
	Short: "Single-page PDF viewer with page-turn navigation",
	Long: `Flipbook shows a PDF one page at a time, fitted to the width of the
viewer, with previous/next buttons, arrow keys, swipe gestures and a
page-turn animation. Pages are rendered on the server and streamed to the
browser; the same navigation is available to AI agents over MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
