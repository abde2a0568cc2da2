package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flipbook/internal/server"
	"github.com/ziadkadry99/flipbook/internal/viewer"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve [document]",
	Short: "Start the browser viewer",
	Long: `Starts an HTTP server with the viewer page. Each browser tab opens the
document (a local path or an http(s) URL) and pages through it. The
document defaults to the one in the config file, then Volantino.pdf.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Port = servePort
		}
		locator := locatorFrom(args, cfg)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		})

		v := viewer.New(viewer.Options{
			Locator:        locator,
			Source:         newSource(false),
			Swipe:          cfg.SwipeRules(),
			ResizeDebounce: cfg.ResizeDebounce(),
			FlipDuration:   cfg.FlipDuration(),
			Debug:          cfg.Debug,
		})
		v.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "flipbook v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Document: %s\n", locator)
		preflight(ctx, locator)
		fmt.Fprintf(os.Stderr, "  Open http://localhost:%d/ in a browser\n", cfg.Port)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}
