package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/kabar/internal/progress"
	"github.com/ziadkadry99/kabar/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the catalog as a static site",
	Long:  `Loads the catalog and writes a self-contained static site: a list page per topic, a page per article and a search index.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "override output directory (defaults to site.output_dir)")
	buildCmd.Flags().Int("workers", 4, "number of pages written concurrently")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.Site.OutputDir
	}
	workers, _ := cmd.Flags().GetInt("workers")

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	generator := site.NewSiteGenerator(newLoader(cfg, store.Cache), outputDir, cfg.SiteTitle)
	generator.WordsPerMinute = cfg.Render.WordsPerMinute
	generator.MatchExcerpt = cfg.Search.MatchExcerpt
	generator.Workers = workers
	generator.Reporter = progress.NewReporter("Exporting pages")
	generator.Logger = slog.Default()

	result, err := generator.Generate(context.Background())
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages, %d articles)\n", outputDir, result.Pages, result.Articles)
	for _, id := range result.Skipped {
		fmt.Printf("  skipped article with unusable id %q\n", id)
	}
	return nil
}
