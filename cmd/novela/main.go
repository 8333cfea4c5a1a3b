package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jordyvandomselaar/novela"
	"github.com/jordyvandomselaar/novela/config"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "novela",
	Short: "A blog engine with the Novela theme",
	Long: `novela reads a site configuration and markdown posts, then either serves
the blog over HTTP or exports it as static files.

Examples:
  novela new myblog
  novela serve --config myblog/config.yaml
  novela build --out public`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the novela version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "novela %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "config.yaml"
}

func loadSite(logger *slog.Logger, override func(*config.Config)) (*novela.Site, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	logger.Debug("config loaded", "path", configPath(), "plugins", len(cfg.Plugins))
	return novela.NewSite(cfg, novela.DefaultViews(), logger)
}
