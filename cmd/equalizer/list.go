package equalizer

import (
	"bytes"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/octave-ivi/octave/cmd/global"
	"github.com/octave-ivi/octave/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available equalizer presets",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		manager := loadManager()

		var rows [][]string
		for _, name := range manager.BuiltinPresetNames() {
			rows = append(rows, []string{name, "built-in"})
		}
		for _, name := range manager.CustomPresetNames() {
			rows = append(rows, []string{name, "custom"})
		}

		tab := table.Table{
			Headers: []string{"Name", "Kind"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			ui.Fatal("Error printing preset table: %v", tableErr)
		}
		ui.Printfln(buf.String())
	},
}

func init() {
	Command.AddCommand(listCmd)
}
