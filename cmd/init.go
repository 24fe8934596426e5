package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ymatsuda/trackboard/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize trackboard configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure trackboard and generates a .trackboard.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
