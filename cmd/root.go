package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/kabar/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kabar",
	Short: "Serve and export a searchable article catalog",
	Long: `Kabar loads a JSON article catalog, caches it locally, and presents it
as a filterable list and article pages. It can serve the catalog with live
search over a websocket or export it as a static site.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
