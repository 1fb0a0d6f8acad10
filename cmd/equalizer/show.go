package equalizer

import (
	"bytes"
	"fmt"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/octave-ivi/octave/cmd/global"
	"github.com/octave-ivi/octave/internal/equalizer"
	"github.com/octave-ivi/octave/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print the band curve of an equalizer preset",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manager := loadManager()

		curve, err := manager.Resolve(args[0])
		if err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}

		var rows [][]string
		for i, frequency := range equalizer.Frequencies {
			rows = append(rows, []string{
				fmt.Sprintf("%d Hz", frequency),
				fmt.Sprintf("%+.1f dB", curve[i]),
			})
		}

		ui.Printfln(args[0])
		tab := table.Table{
			Headers: []string{"Band", "Gain"},
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
	Command.AddCommand(showCmd)
}
