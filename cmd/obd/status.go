package obd

import (
	"github.com/spf13/cobra"

	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/obd"
	"github.com/octave-ivi/octave/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the adapter connection status",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		store := loadSettings()
		defer store.Close()

		adapter, err := obd.NewAdapter(configuration.CurrentConfig.Obd.Adapter)
		if err != nil {
			ui.Fatal("Unable to create OBD adapter: %v", err)
		}
		defer adapter.Close()

		port := store.ObdAdapterPort()
		if err := adapter.Connect(port, store.ObdFastMode()); err != nil {
			ui.FatalWithoutStacktrace("Unable to connect on %s: %v", port, err)
		}

		status, err := adapter.Status()
		if err != nil {
			ui.FatalWithoutStacktrace("Unable to read adapter status: %v", err)
		}
		ui.Printfln("%s: %s", port, status)
	},
}

func init() {
	Command.AddCommand(statusCmd)
}
