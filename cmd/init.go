package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/kabar/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize kabar configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the article source, cache and outputs, and writes a .kabar.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
