package main

import (
	"claimsview/internal/config"

	"github.com/spf13/cobra"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Print the effective resource schemas as YAML",
	Long: `Prints the resource schemas the service would run with, defaults
applied. The output is a valid schemas file and a starting point for
customizing one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		schemas, err := config.LoadSchemas(settings.SchemaFile)
		if err != nil {
			return err
		}
		out, err := config.MarshalSchemas(schemas)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
