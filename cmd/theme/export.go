package theme

import (
	"github.com/spf13/cobra"

	"github.com/octave-ivi/octave/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export [name] [path]",
	Short: "Export a theme to a JSON file",
	Long:  ``,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		registry := loadRegistry()

		if err := registry.Export(args[0], args[1]); err != nil {
			ui.FatalWithoutStacktrace("Unable to export theme: %v", err)
		}
		ui.Success("Exported '%s' to %s", args[0], args[1])
	},
}

func init() {
	Command.AddCommand(exportCmd)
}
