package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/jordyvandomselaar/novela"
	"github.com/jordyvandomselaar/novela/config"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	Long: `The serve command loads the content into its index and serves the blog.
With --watch (the default) changes under the content directories are picked
up without a restart.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		site, err := loadSite(logger, func(cfg *config.Config) {
			if serveAddr != "" {
				cfg.Server.Addr = serveAddr
			}
		})
		if err != nil {
			return err
		}
		app := novela.New(site)
		defer app.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if serveWatch {
			go func() {
				if err := site.Watch(ctx, configPath()); err != nil {
					logger.Error("watcher stopped", "error", err)
				}
			}()
		}

		errc := make(chan error, 1)
		go func() { errc <- app.Start() }()
		logger.Info("serving", "addr", site.Config.Server.Addr)

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		if err := app.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errc
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "reload content when files change")
	rootCmd.AddCommand(serveCmd)
}
