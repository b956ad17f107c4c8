package cmd

import (
	"github.com/spf13/cobra"

	"github.com/omarzayed/supportdesk/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize supportdesk configuration with an interactive wizard",
	Long:  `Runs an interactive wizard and generates a .supportdesk.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
