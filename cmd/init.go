package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wellbot/wellbot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a wellbot config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("config file %s already exists", cfgFile)
		}

		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return fmt.Errorf("running setup wizard: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Wrote %s\n", cfgFile)
		fmt.Fprintf(os.Stderr, "Start the server with: wellbot serve --config %s (port %d)\n", cfgFile, cfg.Port)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
