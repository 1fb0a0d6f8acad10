package setting

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/octave-ivi/octave/internal/ui"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current settings document",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		store := loadStore()
		defer store.Close()

		data, err := json.MarshalIndent(store.Document(), "", "  ")
		if err != nil {
			ui.Fatal("Unable to serialize settings: %v", err)
		}
		ui.Printfln("%s", string(data))
	},
}

func init() {
	Command.AddCommand(getCmd)
}
