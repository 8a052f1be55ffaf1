package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wellbot",
	Short: "Rule-based wellness-advice chat service",
	Long: `WellBot is a small wellness-advice chat service. Users register, log in
and chat with a rule-based responder that matches symptoms against a
curated knowledge base; administrators manage the knowledge base and
review usage and feedback statistics.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "wellbot.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
