package theme

import (
	"bytes"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/octave-ivi/octave/cmd/global"
	"github.com/octave-ivi/octave/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print the color palette of a theme",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registry := loadRegistry()

		theme, err := registry.Resolve(args[0])
		if err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}
		theme = theme.WithFallbacks()

		rows := [][]string{
			{"Base Background", theme.BaseBackground},
			{"Alt Background", theme.AltBackground},
			{"Accent", theme.Accent},
			{"Primary Text", theme.PrimaryText},
			{"Secondary Text", theme.SecondaryText},
			{"Slider Track", theme.SliderTrack},
			{"Slider Fill", theme.SliderFill},
			{"Slider Handle", theme.SliderHandle},
			{"Success", theme.Success},
			{"Warning", theme.Warning},
			{"Error", theme.Error},
			{"Home Button", theme.HomeButton},
			{"OBD Button", theme.ObdButton},
			{"Media Button", theme.MediaButton},
			{"Settings Button", theme.SettingsButton},
		}

		ui.Printfln(theme.Name)
		tab := table.Table{
			Headers: []string{"Role", "Color"},
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
			ui.Fatal("Error printing theme table: %v", tableErr)
		}
		ui.Printfln(buf.String())
	},
}

func init() {
	Command.AddCommand(showCmd)
}
