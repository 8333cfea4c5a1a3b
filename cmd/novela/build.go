package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	outDir   string
	cleanOut bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Long: `The build command renders every listing page, post and author page, and
writes them next to the RSS feed, sitemap, robots.txt, the web manifest with
its icons, the CMS admin files and the static directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		site, err := loadSite(logger, nil)
		if err != nil {
			return err
		}
		defer site.Close()

		if cleanOut {
			if err := cleanDir(outDir); err != nil {
				return err
			}
		}
		report, err := site.Build(cmd.Context(), outDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages (%d files) into %s\n", report.Pages, report.Files, outDir)
		return nil
	},
}

// cleanDir empties dir, refusing the working directory and its parents.
func cleanDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	if rel, err := filepath.Rel(abs, wd); err == nil && filepath.IsLocal(rel) {
		return fmt.Errorf("refusing to clean %s: it contains the working directory", dir)
	}
	return os.RemoveAll(abs)
}

func init() {
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "public", "output directory")
	buildCmd.Flags().BoolVar(&cleanOut, "clean", false, "remove the output directory before building")
	rootCmd.AddCommand(buildCmd)
}
