package theme

import (
	"github.com/spf13/cobra"

	"github.com/octave-ivi/octave/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import a custom theme from a JSON file",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registry := loadRegistry()

		theme, err := registry.Import(args[0])
		if err != nil {
			ui.FatalWithoutStacktrace("Unable to import theme: %v", err)
		}
		ui.Success("Imported custom theme '%s'", theme.Name)
	},
}

func init() {
	Command.AddCommand(importCmd)
}
