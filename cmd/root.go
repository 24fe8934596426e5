package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ymatsuda/trackboard/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "trackboard",
	Short: "Self-hosted web UI for the daily activity tracker",
	Long: `Trackboard serves the daily activity tracker UI: log your day, run
the AI analysis, browse history, weekly reports and improvement
suggestions. Backend reads are cached locally so the UI keeps working
while the tracker backend is unreachable.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
}
