package setting

import (
	"github.com/spf13/cobra"

	"github.com/octave-ivi/octave/internal/ui"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all settings to their defaults",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		store := loadStore()
		defer store.Close()

		store.ResetToDefaults()
		ui.Success("Settings reset to defaults")
	},
}

func init() {
	Command.AddCommand(resetCmd)
}
